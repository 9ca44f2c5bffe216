package literal

import (
	"strconv"
	"strings"

	"buildmark/value"
)

// Convert renders any supported Go value as a Kotlin literal. Values of
// unsupported types fail with a *value.UnsupportedTypeError.
func Convert(v any) (string, error) {
	val, err := value.FromGo(v)
	if err != nil {
		return "", err
	}

	return Format(val), nil
}

// Format renders v as a Kotlin literal. A nil v renders as null.
func Format(v value.Value) string {
	var b strings.Builder
	write(&b, v)

	return b.String()
}

func write(b *strings.Builder, v value.Value) {
	switch v := v.(type) {
	case nil, value.Null:
		b.WriteString("null")
	case value.Bool:
		b.WriteString(strconv.FormatBool(bool(v)))
	case value.Int8:
		b.WriteString(formatInt32(int32(v)))
	case value.Int16:
		b.WriteString(formatInt32(int32(v)))
	case value.Int32:
		b.WriteString(formatInt32(int32(v)))
	case value.Int64:
		b.WriteString(formatInt64(int64(v)))
	case value.Uint8:
		b.WriteString(formatUint(uint64(v), "u.toUByte()"))
	case value.Uint16:
		b.WriteString(formatUint(uint64(v), "u.toUShort()"))
	case value.Uint32:
		b.WriteString(formatUint(uint64(v), "u"))
	case value.Uint64:
		b.WriteString(formatUint(uint64(v), "uL"))
	case value.Float32:
		b.WriteString(formatFloat32(float32(v)))
	case value.Float64:
		b.WriteString(formatFloat64(float64(v)))
	case value.Char:
		b.WriteString(quoteChar(uint16(v)))
	case value.String:
		b.WriteString(quoteString(string(v)))
	case value.List:
		writeCall(b, "listOf", "<Any?>", v)
	case value.Set:
		writeCall(b, "setOf", "<Any?>", v)
	case value.Array:
		writeCall(b, "arrayOf", "<Any?>", v)
	case value.Map:
		writeMap(b, v)
	case value.Pair:
		writePair(b, v.First, v.Second)
	case value.Int32Array:
		writePrimitiveArray(b, "intArrayOf", v, formatInt32)
	case value.Int8Array:
		writePrimitiveArray(b, "byteArrayOf", v, func(x int8) string { return strconv.Itoa(int(x)) })
	case value.Int16Array:
		writePrimitiveArray(b, "shortArrayOf", v, func(x int16) string { return strconv.Itoa(int(x)) })
	case value.Int64Array:
		writePrimitiveArray(b, "longArrayOf", v, formatInt64)
	case value.Float32Array:
		writePrimitiveArray(b, "floatArrayOf", v, formatFloat32)
	case value.Float64Array:
		writePrimitiveArray(b, "doubleArrayOf", v, formatFloat64)
	case value.BoolArray:
		writePrimitiveArray(b, "booleanArrayOf", v, strconv.FormatBool)
	case value.CharArray:
		writePrimitiveArray(b, "charArrayOf", v, quoteChar)
	default:
		// unreachable: value.Value is closed
		panic("literal: unhandled kind " + v.Kind().String())
	}
}

// writeCall writes a builder call. An empty call carries explicit type
// arguments since kotlinc cannot infer them from nothing.
func writeCall(b *strings.Builder, name, emptyTypeArgs string, elems []value.Value) {
	b.WriteString(name)

	if len(elems) == 0 {
		b.WriteString(emptyTypeArgs)
		b.WriteString("()")

		return
	}

	b.WriteByte('(')

	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}

		write(b, e)
	}

	b.WriteByte(')')
}

func writeMap(b *strings.Builder, m value.Map) {
	if len(m) == 0 {
		b.WriteString("mapOf<Any?, Any?>()")
		return
	}

	b.WriteString("mapOf(")

	for i, e := range m {
		if i > 0 {
			b.WriteString(", ")
		}

		writePair(b, e.Key, e.Value)
	}

	b.WriteByte(')')
}

func writePair(b *strings.Builder, first, second value.Value) {
	writePairOperand(b, first)
	b.WriteString(" to ")
	writePairOperand(b, second)
}

// writePairOperand parenthesises nested pairs; `to` is left-associative.
func writePairOperand(b *strings.Builder, v value.Value) {
	if value.KindOf(v) != value.KindPair {
		write(b, v)
		return
	}

	b.WriteByte('(')
	write(b, v)
	b.WriteByte(')')
}

func writePrimitiveArray[S ~[]E, E any](b *strings.Builder, name string, elems S, format func(E) string) {
	b.WriteString(name)
	b.WriteByte('(')

	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(format(e))
	}

	b.WriteByte(')')
}
