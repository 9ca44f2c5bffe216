package literal

import (
	"fmt"
	"math"

	"buildmark/value"
)

type builder func(p *parser, args []arg) (value.Value, error)

var builders = map[string]builder{
	"listOf":  func(_ *parser, args []arg) (value.Value, error) { return value.List(vals(args)), nil },
	"setOf":   func(_ *parser, args []arg) (value.Value, error) { return value.Set(vals(args)), nil },
	"arrayOf": func(_ *parser, args []arg) (value.Value, error) { return value.Array(vals(args)), nil },
	"mapOf":   buildMap,

	"intArrayOf": primitiveArray[value.Int32Array]("intArrayOf", func(v value.Value) (int32, bool) {
		n, ok := v.(value.Int32)
		return int32(n), ok
	}),
	"byteArrayOf":  primitiveArray[value.Int8Array]("byteArrayOf", narrowInt[int8](math.MinInt8, math.MaxInt8)),
	"shortArrayOf": primitiveArray[value.Int16Array]("shortArrayOf", narrowInt[int16](math.MinInt16, math.MaxInt16)),
	"longArrayOf": primitiveArray[value.Int64Array]("longArrayOf", func(v value.Value) (int64, bool) {
		switch n := v.(type) {
		case value.Int64:
			return int64(n), true
		case value.Int32:
			return int64(n), true
		}

		return 0, false
	}),
	"floatArrayOf": primitiveArray[value.Float32Array]("floatArrayOf", func(v value.Value) (float32, bool) {
		f, ok := v.(value.Float32)
		return float32(f), ok
	}),
	"doubleArrayOf": primitiveArray[value.Float64Array]("doubleArrayOf", func(v value.Value) (float64, bool) {
		f, ok := v.(value.Float64)
		return float64(f), ok
	}),
	"booleanArrayOf": primitiveArray[value.BoolArray]("booleanArrayOf", func(v value.Value) (bool, bool) {
		b, ok := v.(value.Bool)
		return bool(b), ok
	}),
	"charArrayOf": primitiveArray[value.CharArray]("charArrayOf", func(v value.Value) (uint16, bool) {
		c, ok := v.(value.Char)
		return uint16(c), ok
	}),
}

func vals(args []arg) []value.Value {
	res := make([]value.Value, len(args))
	for i, a := range args {
		res[i] = a.val
	}

	return res
}

func buildMap(_ *parser, args []arg) (value.Value, error) {
	res := make(value.Map, 0, len(args))

	for _, a := range args {
		pair, ok := a.val.(value.Pair)
		if !ok {
			return nil, &SyntaxError{Offset: a.pos, Msg: fmt.Sprintf("mapOf argument is %s, not a pair", value.KindOf(a.val))}
		}

		res = append(res, value.Entry{Key: pair.First, Value: pair.Second})
	}

	return res, nil
}

// primitiveArray builds an unboxed array, rejecting elements kotlinc would
// not accept for the element type.
func primitiveArray[S ~[]E, E any](name string, elem func(value.Value) (E, bool)) builder {
	return func(_ *parser, args []arg) (value.Value, error) {
		res := make(S, 0, len(args))

		for _, a := range args {
			e, ok := elem(a.val)
			if !ok {
				return nil, &SyntaxError{Offset: a.pos, Msg: fmt.Sprintf("%s does not accept %s", name, value.KindOf(a.val))}
			}

			res = append(res, e)
		}

		return any(res).(value.Value), nil
	}
}

// narrowInt accepts Int literals in range of a smaller integer type.
func narrowInt[T int8 | int16](lo, hi int32) func(value.Value) (T, bool) {
	return func(v value.Value) (T, bool) {
		n, ok := v.(value.Int32)
		if !ok || int32(n) < lo || int32(n) > hi {
			return 0, false
		}

		return T(n), true
	}
}
