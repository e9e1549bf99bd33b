package matrix

import "fmt"

// Vector is an owned, flat sequence of numeric elements. It is the unit a
// worker receives: one row of the left operand or one gathered column of the
// right operand.
type Vector[T Numeric] struct {
	data []T
}

// NewVector copies data into a new Vector.
func NewVector[T Numeric](data []T) Vector[T] {
	owned := make([]T, len(data))
	copy(owned, data)
	return Vector[T]{data: owned}
}

// Len returns the number of elements.
func (v Vector[T]) Len() int {
	return len(v.data)
}

// At returns the element at index i or ErrOutOfRange.
func (v Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= len(v.data) {
		var zero T
		return zero, fmt.Errorf("Vector.At(%d): %w", i, ErrOutOfRange)
	}
	return v.data[i], nil
}

// Data returns a copy of the elements.
func (v Vector[T]) Data() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)
	return out
}

// DotProduct returns the sum of element-wise products of a and b, starting
// from the zero value of T.
//
// Unequal lengths signal a partitioning bug upstream. They are reported as
// ErrLengthMismatch rather than a panic so the caller keeps control.
//
// Example:
//
//	a := matrix.NewVector([]int{1, 2, 3})
//	b := matrix.NewVector([]int{10, 20, 30})
//	sum, _ := matrix.DotProduct(a, b) // 140
func DotProduct[T Numeric](a, b Vector[T]) (T, error) {
	var sum T
	if len(a.data) != len(b.data) {
		return sum, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a.data), len(b.data))
	}

	for i := range a.data {
		sum += a.data[i] * b.data[i]
	}
	return sum, nil
}
