// Package matrix provides the owned, row-major dense matrix and vector types
// that the multiplication engine operates on.
//
// The primary type is Matrix[T], a flat row-major buffer plus its shape. The
// element type is bounded by Numeric, a single reusable constraint covering the
// integer, floating point and complex kinds.
//
// # Construction
//
// New validates the buffer against the shape and copies it, so a Matrix never
// aliases caller memory:
//
//	a, err := matrix.New([]int{1, 2, 3, 4, 5, 6}, 2, 3)
//	if err != nil {
//	    // errors.Is(err, matrix.ErrBufferLength) when len(data) != rows*cols
//	}
//
// # Rendering
//
// A Matrix renders rows joined by ", " and elements joined by a single space,
// wrapped in braces:
//
//	fmt.Println(a) // {1 2 3, 4 5 6}
//
// Parse reads the same format back.
//
// # Vectors
//
// Row and Col extract owned Vector copies: a row is a contiguous slice copy, a
// column is a strided gather of every cols-th element. DotProduct combines two
// vectors and reports ErrLengthMismatch instead of panicking.
//
// # Errors
//
// All failures are reported through the sentinel errors in errors.go and are
// meant to be matched with errors.Is.
package matrix
