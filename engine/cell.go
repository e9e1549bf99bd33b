package engine

import (
	"context"

	"github.com/utkarsh5026/matmul/matrix"
)

// Cell is the unit of work sent to a worker: the destination index in the
// output buffer and owned copies of the row and column whose dot product
// fills it.
type Cell[T matrix.Numeric] struct {
	Index int
	Row   matrix.Vector[T]
	Col   matrix.Vector[T]
}

// newCell copies row i of a and gathers column j of b.
func newCell[T matrix.Numeric](a, b *matrix.Matrix[T], i, j int) (Cell[T], error) {
	row, err := a.Row(i)
	if err != nil {
		return Cell[T]{}, err
	}
	col, err := b.Col(j)
	if err != nil {
		return Cell[T]{}, err
	}
	return Cell[T]{Index: i*b.Cols() + j, Row: row, Col: col}, nil
}

// computeCell is the worker's process function.
func computeCell[T matrix.Numeric](_ context.Context, c Cell[T]) (T, error) {
	return matrix.DotProduct(c.Row, c.Col)
}
