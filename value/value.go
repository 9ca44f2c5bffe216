package value

// Value is a typed value with a Kotlin literal form. The set of
// implementations is closed: only the types declared in this package satisfy
// it.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	// Null is the absence of a value.
	Null struct{}
	// Bool is a Kotlin Boolean.
	Bool bool
	// Int8 is a Kotlin Byte.
	Int8 int8
	// Int16 is a Kotlin Short.
	Int16 int16
	// Int32 is a Kotlin Int.
	Int32 int32
	// Int64 is a Kotlin Long.
	Int64 int64
	// Uint8 is a Kotlin UByte.
	Uint8 uint8
	// Uint16 is a Kotlin UShort.
	Uint16 uint16
	// Uint32 is a Kotlin UInt.
	Uint32 uint32
	// Uint64 is a Kotlin ULong.
	Uint64 uint64
	// Float32 is a Kotlin Float.
	Float32 float32
	// Float64 is a Kotlin Double.
	Float64 float64
	// Char is a Kotlin Char: a single UTF-16 code unit.
	Char uint16
	// String is a Kotlin String. Invalid UTF-8 sequences are rendered as U+FFFD.
	String string
)

type (
	// List is an ordered sequence (listOf).
	List []Value
	// Set is a sequence of unique values kept in insertion order (setOf).
	Set []Value
	// Map is a sequence of key/value entries kept in insertion order (mapOf).
	Map []Entry
	// Array is a generic object array (arrayOf).
	Array []Value
)

// Entry is a single Map entry.
type Entry struct {
	Key   Value
	Value Value
}

// Pair is a 2-tuple (first to second).
type Pair struct {
	First  Value
	Second Value
}

// Primitive arrays, rendered with the dedicated Kotlin constructors.
type (
	Int32Array   []int32
	Int8Array    []int8
	Int16Array   []int16
	Int64Array   []int64
	Float32Array []float32
	Float64Array []float64
	BoolArray    []bool
	CharArray    []uint16
)

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Int8) Kind() Kind    { return KindInt8 }
func (Int16) Kind() Kind   { return KindInt16 }
func (Int32) Kind() Kind   { return KindInt32 }
func (Int64) Kind() Kind   { return KindInt64 }
func (Uint8) Kind() Kind   { return KindUint8 }
func (Uint16) Kind() Kind  { return KindUint16 }
func (Uint32) Kind() Kind  { return KindUint32 }
func (Uint64) Kind() Kind  { return KindUint64 }
func (Float32) Kind() Kind { return KindFloat32 }
func (Float64) Kind() Kind { return KindFloat64 }
func (Char) Kind() Kind    { return KindChar }
func (String) Kind() Kind  { return KindString }
func (List) Kind() Kind    { return KindList }
func (Set) Kind() Kind     { return KindSet }
func (Map) Kind() Kind     { return KindMap }
func (Pair) Kind() Kind    { return KindPair }
func (Array) Kind() Kind   { return KindArray }

func (Int32Array) Kind() Kind   { return KindInt32Array }
func (Int8Array) Kind() Kind    { return KindInt8Array }
func (Int16Array) Kind() Kind   { return KindInt16Array }
func (Int64Array) Kind() Kind   { return KindInt64Array }
func (Float32Array) Kind() Kind { return KindFloat32Array }
func (Float64Array) Kind() Kind { return KindFloat64Array }
func (BoolArray) Kind() Kind    { return KindBoolArray }
func (CharArray) Kind() Kind    { return KindCharArray }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Int8) isValue()    {}
func (Int16) isValue()   {}
func (Int32) isValue()   {}
func (Int64) isValue()   {}
func (Uint8) isValue()   {}
func (Uint16) isValue()  {}
func (Uint32) isValue()  {}
func (Uint64) isValue()  {}
func (Float32) isValue() {}
func (Float64) isValue() {}
func (Char) isValue()    {}
func (String) isValue()  {}
func (List) isValue()    {}
func (Set) isValue()     {}
func (Map) isValue()     {}
func (Pair) isValue()    {}
func (Array) isValue()   {}

func (Int32Array) isValue()   {}
func (Int8Array) isValue()    {}
func (Int16Array) isValue()   {}
func (Int64Array) isValue()   {}
func (Float32Array) isValue() {}
func (Float64Array) isValue() {}
func (BoolArray) isValue()    {}
func (CharArray) isValue()    {}

// KindOf returns the kind of v, treating a nil Value as KindNull.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}

	return v.Kind()
}

// Elements returns the nested values of a container value in order. For a
// Map the keys and values are interleaved; for a Pair it is {First, Second}.
// Scalars and primitive arrays have no nested values.
func Elements(v Value) []Value {
	switch v := v.(type) {
	case List:
		return v
	case Set:
		return v
	case Array:
		return v
	case Pair:
		return []Value{v.First, v.Second}
	case Map:
		res := make([]Value, 0, 2*len(v))
		for _, e := range v {
			res = append(res, e.Key, e.Value)
		}

		return res
	default:
		return nil
	}
}
