package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a dense row-major matrix. Element (i, j) lives at data[i*cols+j].
//
// A Matrix exclusively owns its buffer and is immutable after construction,
// so it can be shared between goroutines without locking.
type Matrix[T Numeric] struct {
	data []T
	rows int
	cols int
}

// New creates a rows×cols Matrix from a flat row-major slice.
// The slice is copied.
//
// Returns:
//   - ErrBadShape if rows or cols is negative, or rows*cols overflows int
//   - ErrBufferLength if len(data) != rows*cols
//
// Example:
//
//	m, err := matrix.New([]float64{1, 2, 3, 4}, 2, 2)
func New[T Numeric](data []T, rows, cols int) (*Matrix[T], error) {
	size, err := checkShape(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, err)
	}
	if len(data) != size {
		return nil, fmt.Errorf("New(%d,%d): %w: got %d elements, want %d",
			rows, cols, ErrBufferLength, len(data), size)
	}

	owned := make([]T, len(data))
	copy(owned, data)
	return &Matrix[T]{data: owned, rows: rows, cols: cols}, nil
}

// MustNew is like New but panics on error. Intended for literals in tests and examples.
func MustNew[T Numeric](data []T, rows, cols int) *Matrix[T] {
	m, err := New(data, rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// Zeros returns a rows×cols matrix of zero values.
func Zeros[T Numeric](rows, cols int) (*Matrix[T], error) {
	size, err := checkShape(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("Zeros(%d,%d): %w", rows, cols, err)
	}
	return &Matrix[T]{data: make([]T, size), rows: rows, cols: cols}, nil
}

// checkShape returns rows*cols, rejecting negative dimensions and products
// that do not fit in an int.
func checkShape(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, ErrBadShape
	}
	if cols != 0 && rows > math.MaxInt/cols {
		return 0, fmt.Errorf("%w: %d×%d elements overflow int", ErrBadShape, rows, cols)
	}
	return rows * cols, nil
}

// Identity returns the n×n identity matrix.
func Identity[T Numeric](n int) (*Matrix[T], error) {
	m, err := Zeros[T](n, n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.data[i*n+i] = T(1)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// At returns the element at (i, j) or ErrOutOfRange.
func (m *Matrix[T]) At(i, j int) (T, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		var zero T
		return zero, fmt.Errorf("Matrix.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	return m.data[i*m.cols+j], nil
}

// Data returns a copy of the row-major buffer.
func (m *Matrix[T]) Data() []T {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// Row returns an owned copy of row i, i.e. data[i*cols : (i+1)*cols].
func (m *Matrix[T]) Row(i int) (Vector[T], error) {
	if i < 0 || i >= m.rows {
		return Vector[T]{}, fmt.Errorf("Matrix.Row(%d): %w", i, ErrOutOfRange)
	}
	return NewVector(m.data[i*m.cols : (i+1)*m.cols]), nil
}

// Col gathers column j into an owned Vector. The column is not contiguous in
// the row-major buffer: its elements sit at j, j+cols, j+2*cols, ... for rows
// elements.
func (m *Matrix[T]) Col(j int) (Vector[T], error) {
	if j < 0 || j >= m.cols {
		return Vector[T]{}, fmt.Errorf("Matrix.Col(%d): %w", j, ErrOutOfRange)
	}

	gathered := make([]T, m.rows)
	for i := range m.rows {
		gathered[i] = m.data[i*m.cols+j]
	}
	return Vector[T]{data: gathered}, nil
}

// Equal reports whether m and other have the same shape and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// String renders the matrix as "{e00 e01 .., e10 e11 .., ...}": elements of a
// row separated by one space, rows separated by ", ". A 2×3 matrix renders as
// "{1 2 3, 4 5 6}".
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := range m.rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		for j := range m.cols {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", m.data[i*m.cols+j])
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// GoString implements fmt.GoStringer so %#v shows the shape alongside the data.
func (m *Matrix[T]) GoString() string {
	return fmt.Sprintf("Matrix { rows: %d, cols: %d, data: %s }", m.rows, m.cols, m.String())
}
