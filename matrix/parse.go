package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a matrix written in the String format, e.g. "{1 2 3, 4 5 6}".
// parseElem converts one whitespace-separated token into an element.
//
// "{}" parses as a 0×0 matrix. A 0×n matrix also renders as "{}", so its
// column count does not survive a String/Parse round trip.
//
// Rows of different lengths, missing braces and tokens rejected by parseElem
// all yield ErrBadFormat.
func Parse[T Numeric](s string, parseElem func(string) (T, error)) (*Matrix[T], error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("%w: %q is not wrapped in braces", ErrBadFormat, s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return New[T](nil, 0, 0)
	}

	rowTexts := strings.Split(inner, ",")
	cols := -1
	data := make([]T, 0, len(rowTexts))

	for i, rowText := range rowTexts {
		tokens := strings.Fields(rowText)
		if cols == -1 {
			cols = len(tokens)
		} else if len(tokens) != cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", ErrBadFormat, i, len(tokens), cols)
		}

		for _, tok := range tokens {
			v, err := parseElem(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadFormat, i, err)
			}
			data = append(data, v)
		}
	}

	return New(data, len(rowTexts), cols)
}

// ParseInt parses an int matrix literal.
func ParseInt(s string) (*Matrix[int], error) {
	return Parse(s, strconv.Atoi)
}

// ParseFloat parses a float64 matrix literal.
func ParseFloat(s string) (*Matrix[float64], error) {
	return Parse(s, func(tok string) (float64, error) {
		return strconv.ParseFloat(tok, 64)
	})
}
