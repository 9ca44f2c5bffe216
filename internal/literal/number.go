package literal

import (
	"math"
	"strconv"
	"strings"
)

// formatInt32 renders an Int. -2^31 has no literal: the digits would be read
// as a Long before negation.
func formatInt32(n int32) string {
	if n == math.MinInt32 {
		return "Int.MIN_VALUE"
	}

	return strconv.FormatInt(int64(n), 10)
}

// formatInt64 renders a Long; -2^63 exceeds the range of a Long literal.
func formatInt64(n int64) string {
	if n == math.MinInt64 {
		return "Long.MIN_VALUE"
	}

	return strconv.FormatInt(n, 10) + "L"
}

func formatUint(n uint64, suffix string) string {
	return strconv.FormatUint(n, 10) + suffix
}

func formatFloat32(f float32) string {
	switch {
	case f != f:
		return "Float.NaN"
	case math.IsInf(float64(f), 1):
		return "Float.POSITIVE_INFINITY"
	case math.IsInf(float64(f), -1):
		return "Float.NEGATIVE_INFINITY"
	}

	return formatDecimal(float64(f), 32) + "f"
}

func formatFloat64(f float64) string {
	switch {
	case math.IsNaN(f):
		return "Double.NaN"
	case math.IsInf(f, 1):
		return "Double.POSITIVE_INFINITY"
	case math.IsInf(f, -1):
		return "Double.NEGATIVE_INFINITY"
	}

	return formatDecimal(f, 64)
}

// formatDecimal returns the shortest decimal that parses back to the same
// float of the given size. Integral values keep a fraction so kotlinc does
// not read them as integers.
func formatDecimal(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
