package matrix

// Integer is satisfied by every signed and unsigned integer kind.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is satisfied by the floating point kinds.
type Float interface {
	~float32 | ~float64
}

// Complex is satisfied by the complex kinds.
type Complex interface {
	~complex64 | ~complex128
}

// Numeric is the element constraint shared by Vector, Matrix and the engine.
// Every member has a zero value, is copied by value, and supports +, += and *.
type Numeric interface {
	Integer | Float | Complex
}
