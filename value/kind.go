package value

//go:generate go tool stringer -type=Kind -output=kind_string.go

type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindNull
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindList
	KindSet
	KindMap
	KindPair
	KindArray
	KindInt32Array
	KindInt8Array
	KindInt16Array
	KindInt64Array
	KindFloat32Array
	KindFloat64Array
	KindBoolArray
	KindCharArray

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k Kind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k Kind) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k Kind) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsScalar reports whether values of the kind hold no nested values.
func (k Kind) IsScalar() bool {
	return k >= KindNull && k <= KindString
}

// IsPrimitiveArray reports whether the kind is one of the unboxed array kinds.
func (k Kind) IsPrimitiveArray() bool {
	return k >= KindInt32Array && k <= KindCharArray
}

// IsConstant reports whether a property of this kind may be declared
// `const val` in Kotlin. UByte and UShort are written as conversion calls,
// which are not constant expressions.
func (k Kind) IsConstant() bool {
	return k.IsScalar() && k != KindNull && k != KindUint8 && k != KindUint16
}

func (k Kind) Bits() int {
	switch k {
	default:
		panic("only numeric kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}
