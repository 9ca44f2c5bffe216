package value

import (
	"math"
	"slices"
)

// Equal reports whether a and b are equal the way Kotlin's equals compares
// the boxed values: same kind, same contents in the same order. Floating
// point values compare by bits, except that any two NaNs are equal. A nil
// Value equals Null.
func Equal(a, b Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}

	switch a := a.(type) {
	case nil, Null:
		return true
	case Float32:
		return sameFloat32(float32(a), float32(b.(Float32)))
	case Float64:
		return sameFloat64(float64(a), float64(b.(Float64)))
	case List:
		return slices.EqualFunc(a, b.(List), Equal)
	case Set:
		return slices.EqualFunc(a, b.(Set), Equal)
	case Array:
		return slices.EqualFunc(a, b.(Array), Equal)
	case Map:
		return slices.EqualFunc(a, b.(Map), func(x, y Entry) bool {
			return Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
		})
	case Pair:
		bp := b.(Pair)
		return Equal(a.First, bp.First) && Equal(a.Second, bp.Second)
	case Int32Array:
		return slices.Equal(a, b.(Int32Array))
	case Int8Array:
		return slices.Equal(a, b.(Int8Array))
	case Int16Array:
		return slices.Equal(a, b.(Int16Array))
	case Int64Array:
		return slices.Equal(a, b.(Int64Array))
	case Float32Array:
		return slices.EqualFunc(a, b.(Float32Array), sameFloat32)
	case Float64Array:
		return slices.EqualFunc(a, b.(Float64Array), sameFloat64)
	case BoolArray:
		return slices.Equal(a, b.(BoolArray))
	case CharArray:
		return slices.Equal(a, b.(CharArray))
	default:
		// remaining kinds are comparable scalars
		return a == b
	}
}

func sameFloat32(a, b float32) bool {
	if a != a && b != b {
		return true
	}

	return math.Float32bits(a) == math.Float32bits(b)
}

func sameFloat64(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}

	return math.Float64bits(a) == math.Float64bits(b)
}

// Widen replaces every Int8 and Int16 inside v with the equal Int32, which is
// what evaluating the Kotlin literal of v produces.
func Widen(v Value) Value {
	switch v := v.(type) {
	case nil:
		return Null{}
	case Int8:
		return Int32(v)
	case Int16:
		return Int32(v)
	case List:
		return List(widenAll(v))
	case Set:
		return Set(widenAll(v))
	case Array:
		return Array(widenAll(v))
	case Pair:
		return Pair{First: Widen(v.First), Second: Widen(v.Second)}
	case Map:
		res := make(Map, len(v))
		for i, e := range v {
			res[i] = Entry{Key: Widen(e.Key), Value: Widen(e.Value)}
		}

		return res
	default:
		return v
	}
}

func widenAll(vs []Value) []Value {
	res := make([]Value, len(vs))
	for i, v := range vs {
		res[i] = Widen(v)
	}

	return res
}
