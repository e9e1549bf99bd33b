package matrix

import "errors"

// Every message carries the "matrix: " prefix. Callers wrap with
// fmt.Errorf("ctx: %w", ErrX) and match with errors.Is.
var (
	// ErrInvalidDimensions is returned when A.Cols() != B.Rows() in a product.
	// It is always reported before any work is dispatched.
	ErrInvalidDimensions = errors.New("matrix: invalid matrix dimensions")

	// ErrLengthMismatch is returned by DotProduct for vectors of unequal length.
	ErrLengthMismatch = errors.New("matrix: vector length mismatch")

	// ErrChannelFailure reports that a partial result could not be delivered or
	// received: a worker panicked, the pool stopped, or the caller's context ended.
	ErrChannelFailure = errors.New("matrix: result channel failure")

	// ErrBufferLength is returned by New when len(data) != rows*cols.
	ErrBufferLength = errors.New("matrix: buffer length does not match shape")

	// ErrBadShape is returned for negative row or column counts, or shapes
	// whose element count overflows int.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNilMatrix indicates that a nil *Matrix was passed as an operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrBadFormat is returned by Parse for input that is not in the rendering format.
	ErrBadFormat = errors.New("matrix: malformed matrix literal")
)
