package matrix_test

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/matmul/matrix"
)

// TestNewValidatesBufferLength ensures the len(data) == rows*cols invariant is enforced.
func TestNewValidatesBufferLength(t *testing.T) {
	_, err := matrix.New([]int{1, 2, 3, 4, 5}, 2, 3)
	require.ErrorIs(t, err, matrix.ErrBufferLength)

	_, err = matrix.New([]int{1, 2, 3, 4, 5, 6, 7}, 2, 3)
	require.ErrorIs(t, err, matrix.ErrBufferLength)

	_, err = matrix.New([]int{}, -1, 0)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

// TestShapeOverflowRejected checks that a rows*cols product wrapping around
// int cannot sneak an undersized buffer past validation.
func TestShapeOverflowRejected(t *testing.T) {
	// 1<<32 on 64-bit platforms: the square wraps to exactly zero.
	half := 1 << (strconv.IntSize / 2)
	shapes := []struct{ rows, cols int }{
		{half, half},
		{math.MaxInt/2 + 1, 2},
		{2, math.MaxInt/2 + 1},
		{math.MaxInt, math.MaxInt},
	}

	for _, s := range shapes {
		t.Run(fmt.Sprintf("%dx%d", s.rows, s.cols), func(t *testing.T) {
			m, err := matrix.New[int](nil, s.rows, s.cols)
			require.ErrorIs(t, err, matrix.ErrBadShape)
			require.Nil(t, m)

			_, err = matrix.Zeros[int](s.rows, s.cols)
			require.ErrorIs(t, err, matrix.ErrBadShape)
		})
	}

	_, err := matrix.Identity[int](math.MaxInt/2 + 1)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

// TestNewCopiesInput verifies the matrix does not alias the caller's slice.
func TestNewCopiesInput(t *testing.T) {
	data := []int{1, 2, 3, 4}
	m, err := matrix.New(data, 2, 2)
	require.NoError(t, err)

	data[0] = 99
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	out := m.Data()
	out[1] = 42
	v, _ = m.At(0, 1)
	require.Equal(t, 2, v)
}

func TestMustNewPanics(t *testing.T) {
	require.Panics(t, func() { matrix.MustNew([]int{1}, 2, 2) })
	require.NotPanics(t, func() { matrix.MustNew([]int{1, 2, 3, 4}, 2, 2) })
}

// TestString checks the exact rendering format.
func TestString(t *testing.T) {
	cases := []struct {
		name string
		m    *matrix.Matrix[int]
		want string
	}{
		{"2x3", matrix.MustNew([]int{1, 2, 3, 4, 5, 6}, 2, 3), "{1 2 3, 4 5 6}"},
		{"3x2", matrix.MustNew([]int{1, 2, 3, 4, 5, 6}, 3, 2), "{1 2, 3 4, 5 6}"},
		{"1x1", matrix.MustNew([]int{7}, 1, 1), "{7}"},
		{"column", matrix.MustNew([]int{1, 2, 3}, 3, 1), "{1, 2, 3}"},
		{"empty", matrix.MustNew([]int{}, 0, 0), "{}"},
		{"negative", matrix.MustNew([]int{-1, 0, 1, -2}, 2, 2), "{-1 0, 1 -2}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.m.String())
			assert.Equal(t, tc.want, fmt.Sprint(tc.m))
		})
	}
}

func TestGoString(t *testing.T) {
	m := matrix.MustNew([]int{140, 146, 320, 335}, 2, 2)
	require.Equal(t, "Matrix { rows: 2, cols: 2, data: {140 146, 320 335} }", fmt.Sprintf("%#v", m))
}

// TestRowAndColExtraction verifies contiguous row copies and strided column gathers.
func TestRowAndColExtraction(t *testing.T) {
	b := matrix.MustNew([]int{10, 11, 20, 21, 30, 31}, 3, 2)

	row, err := b.Row(1)
	require.NoError(t, err)
	require.Equal(t, []int{20, 21}, row.Data())

	col, err := b.Col(1)
	require.NoError(t, err)
	require.Equal(t, []int{11, 21, 31}, col.Data())

	col, err = b.Col(0)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20, 30}, col.Data())

	_, err = b.Row(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = b.Col(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestAtOutOfRange(t *testing.T) {
	m := matrix.MustNew([]float64{1, 2, 3, 4}, 2, 2)

	_, err := m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}

func TestIdentityAndZeros(t *testing.T) {
	id, err := matrix.Identity[int](3)
	require.NoError(t, err)
	require.Equal(t, "{1 0 0, 0 1 0, 0 0 1}", id.String())

	z, err := matrix.Zeros[float64](2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, z.Rows())
	require.Equal(t, 3, z.Cols())
	require.Equal(t, make([]float64, 6), z.Data())

	_, err = matrix.Identity[int](-1)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestEqual(t *testing.T) {
	a := matrix.MustNew([]int{1, 2, 3, 4}, 2, 2)
	b := matrix.MustNew([]int{1, 2, 3, 4}, 2, 2)
	c := matrix.MustNew([]int{1, 2, 3, 4}, 1, 4)
	d := matrix.MustNew([]int{1, 2, 3, 5}, 2, 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

// TestMultiplyNaive covers the reference product, including the worked example.
func TestMultiplyNaive(t *testing.T) {
	a := matrix.MustNew([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	b := matrix.MustNew([]int{10, 11, 20, 21, 30, 31}, 3, 2)

	c, err := matrix.MultiplyNaive(a, b)
	require.NoError(t, err)
	require.Equal(t, []int{140, 146, 320, 335}, c.Data())
	require.Equal(t, "{140 146, 320 335}", c.String())

	bad := matrix.MustNew([]int{10, 11, 20, 21}, 2, 2)
	c, err = matrix.MultiplyNaive(a, bad)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	require.Nil(t, c)

	_, err = matrix.MultiplyNaive(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMultiplyNaiveEmptyInner(t *testing.T) {
	a := matrix.MustNew([]int{}, 2, 0)
	b := matrix.MustNew([]int{}, 0, 3)

	c, err := matrix.MultiplyNaive(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, c.Rows())
	require.Equal(t, 3, c.Cols())
	require.Equal(t, make([]int, 6), c.Data())
}

func TestCheckProduct(t *testing.T) {
	a := matrix.MustNew([]int{1, 2, 3, 4, 5, 6}, 2, 3)

	require.NoError(t, matrix.CheckProduct(a, matrix.MustNew(make([]int, 6), 3, 2)))

	err := matrix.CheckProduct(a, a)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	assert.Contains(t, err.Error(), "2x3")

	require.ErrorIs(t, matrix.CheckProduct(nil, a), matrix.ErrNilMatrix)

	// Both operands are empty but the product would not fit in memory.
	half := 1 << (strconv.IntSize / 2)
	tall := matrix.MustNew[int](nil, half, 0)
	wide := matrix.MustNew[int](nil, 0, half)
	require.ErrorIs(t, matrix.CheckProduct(tall, wide), matrix.ErrBadShape)
	_, err = matrix.MultiplyNaive(tall, wide)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}
