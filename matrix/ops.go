package matrix

import "fmt"

// MultiplyNaive computes a·b with the sequential triple loop
// C[i][j] = Σ_t A[i][t]*B[t][j]. It is the reference the concurrent engine is
// checked against.
func MultiplyNaive[T Numeric](a, b *Matrix[T]) (*Matrix[T], error) {
	if err := CheckProduct(a, b); err != nil {
		return nil, err
	}

	out := make([]T, a.rows*b.cols)
	for i := range a.rows {
		for j := range b.cols {
			var sum T
			for t := range a.cols {
				sum += a.data[i*a.cols+t] * b.data[t*b.cols+j]
			}
			out[i*b.cols+j] = sum
		}
	}
	return &Matrix[T]{data: out, rows: a.rows, cols: b.cols}, nil
}

// CheckProduct validates that a·b is defined: both operands are non-nil,
// a.Cols() == b.Rows() and the a.Rows()×b.Cols() result is addressable.
func CheckProduct[T Numeric](a, b *Matrix[T]) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.cols != b.rows {
		return fmt.Errorf("%w: %dx%d · %dx%d", ErrInvalidDimensions, a.rows, a.cols, b.rows, b.cols)
	}
	if _, err := checkShape(a.rows, b.cols); err != nil {
		return fmt.Errorf("product %dx%d: %w", a.rows, b.cols, err)
	}
	return nil
}
