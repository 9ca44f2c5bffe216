package config

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"buildmark/value"
)

type nodeKind int

const (
	nodeNull nodeKind = iota
	nodeBool
	nodeInt
	nodeFloat
	nodeString
	// nodeScalar is scalar text whose type only the tag decides.
	nodeScalar
	// nodeBinary is base64 text.
	nodeBinary
	nodeSeq
	nodeMap
)

// node is a parsed option value, before typing. Every format is read into
// this tree so that all of them share the typing rules below.
type node struct {
	kind nodeKind
	tag  string // kind selector, without the leading '!' or '$'
	text string // scalar text
	// items holds sequence elements, or mapping keys and values interleaved.
	items []node
	pos   string
	// directives enables {"$tag": value} objects.
	directives bool
}

func (n node) entries() int {
	return len(n.items) / 2
}

func (n node) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n.pos != "" {
		msg = n.pos + ": " + msg
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

// directive unwraps a single key object whose key starts with '$'.
func (n node) directive() (node, bool) {
	if !n.directives || n.tag != "" || n.kind != nodeMap || n.entries() != 1 {
		return n, false
	}

	key := n.items[0]
	if key.kind != nodeString || !strings.HasPrefix(key.text, "$") {
		return n, false
	}

	inner := n.items[1]
	if inner.tag != "" {
		return n, false
	}

	inner.tag = key.text[1:]
	if inner.pos == "" {
		inner.pos = n.pos
	}

	return inner, true
}

type tagRule struct {
	kind value.Kind
	// elem is the element tag of primitive arrays.
	elem string
}

var tags = map[string]tagRule{
	"null":   {kind: value.KindNull},
	"bool":   {kind: value.KindBool},
	"byte":   {kind: value.KindInt8},
	"short":  {kind: value.KindInt16},
	"int":    {kind: value.KindInt32},
	"long":   {kind: value.KindInt64},
	"ubyte":  {kind: value.KindUint8},
	"ushort": {kind: value.KindUint16},
	"uint":   {kind: value.KindUint32},
	"ulong":  {kind: value.KindUint64},
	"float":  {kind: value.KindFloat32},
	"double": {kind: value.KindFloat64},
	"char":   {kind: value.KindChar},
	"string": {kind: value.KindString},
	"list":   {kind: value.KindList},
	"set":    {kind: value.KindSet},
	"map":    {kind: value.KindMap},
	"pair":   {kind: value.KindPair},
	"array":  {kind: value.KindArray},

	"intArray":     {kind: value.KindInt32Array, elem: "int"},
	"byteArray":    {kind: value.KindInt8Array, elem: "byte"},
	"shortArray":   {kind: value.KindInt16Array, elem: "short"},
	"longArray":    {kind: value.KindInt64Array, elem: "long"},
	"floatArray":   {kind: value.KindFloat32Array, elem: "float"},
	"doubleArray":  {kind: value.KindFloat64Array, elem: "double"},
	"booleanArray": {kind: value.KindBoolArray, elem: "bool"},
	"charArray":    {kind: value.KindCharArray, elem: "char"},

	"int8":    {kind: value.KindInt8},
	"int16":   {kind: value.KindInt16},
	"int32":   {kind: value.KindInt32},
	"int64":   {kind: value.KindInt64},
	"uint8":   {kind: value.KindUint8},
	"uint16":  {kind: value.KindUint16},
	"uint32":  {kind: value.KindUint32},
	"uint64":  {kind: value.KindUint64},
	"float32": {kind: value.KindFloat32},
	"float64": {kind: value.KindFloat64},
	"boolean": {kind: value.KindBool},
}

// tagNames is the preferred tag of every kind, used when encoding.
var tagNames = map[value.Kind]string{}

func init() {
	for _, name := range []string{
		"null", "bool", "byte", "short", "int", "long", "ubyte", "ushort", "uint", "ulong",
		"float", "double", "char", "string", "list", "set", "map", "pair", "array",
		"intArray", "byteArray", "shortArray", "longArray", "floatArray", "doubleArray",
		"booleanArray", "charArray",
	} {
		tagNames[tags[name].kind] = name
	}
}

// build types n. Untagged scalars follow the YAML core schema: integers are
// Int when they fit and Long otherwise, floats are Double.
func build(n node) (value.Value, error) {
	if d, ok := n.directive(); ok {
		n = d
	}

	if n.tag == "" {
		return buildUntagged(n)
	}

	rule, ok := tags[n.tag]
	if !ok {
		return nil, n.errorf("unknown tag %q", n.tag)
	}

	return buildTagged(n, rule)
}

func buildUntagged(n node) (value.Value, error) {
	switch n.kind {
	case nodeNull:
		return value.Null{}, nil
	case nodeBool:
		return parseBool(n)
	case nodeInt:
		i, err := parseInt(n, 64)
		if err != nil {
			return nil, err
		}

		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return value.Int32(i), nil
		}

		return value.Int64(i), nil
	case nodeFloat:
		f, err := parseFloat(n, 64)
		return value.Float64(f), err
	case nodeString, nodeScalar:
		return value.String(n.text), nil
	case nodeBinary:
		return buildBinary(n)
	case nodeSeq:
		items, err := buildItems(n.items)
		return value.List(items), err
	case nodeMap:
		return buildMap(n)
	}

	return nil, n.errorf("unexpected value")
}

func buildTagged(n node, rule tagRule) (value.Value, error) {
	if rule.elem != "" {
		return buildPrimitiveArray(n, rule)
	}

	switch rule.kind {
	case value.KindList, value.KindSet, value.KindArray, value.KindPair:
		if n.kind != nodeSeq {
			return nil, n.errorf("!%s needs a sequence", n.tag)
		}

		items, err := buildItems(n.items)
		if err != nil {
			return nil, err
		}

		switch rule.kind {
		case value.KindSet:
			return value.Set(items), nil
		case value.KindArray:
			return value.Array(items), nil
		case value.KindPair:
			if len(items) != 2 {
				return nil, n.errorf("!pair needs exactly two elements, got %d", len(items))
			}

			return value.Pair{First: items[0], Second: items[1]}, nil
		}

		return value.List(items), nil
	case value.KindMap:
		if n.kind != nodeMap {
			return nil, n.errorf("!map needs a mapping")
		}

		return buildMap(n)
	}

	if n.kind == nodeSeq || n.kind == nodeMap {
		return nil, n.errorf("!%s needs a scalar", n.tag)
	}

	return buildScalar(n, rule.kind)
}

func buildScalar(n node, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindNull:
		if n.kind != nodeNull && n.text != "null" && n.text != "~" && n.text != "" {
			return nil, n.errorf("!null cannot hold %q", n.text)
		}

		return value.Null{}, nil
	case value.KindBool:
		return parseBool(n)
	case value.KindString:
		return value.String(n.text), nil
	case value.KindChar:
		// lone surrogates are written as 0xd800
		if strings.HasPrefix(n.text, "0x") && len(n.text) > 2 {
			u, err := strconv.ParseUint(n.text[2:], 16, 16)
			if err != nil {
				return nil, n.errorf("invalid char code %q", n.text)
			}

			return value.Char(u), nil
		}

		units := utf16.Encode([]rune(n.text))
		if len(units) != 1 {
			return nil, n.errorf("!char needs exactly one UTF-16 code unit, got %q", n.text)
		}

		return value.Char(units[0]), nil
	}

	if kind.IsFloat() {
		f, err := parseFloat(n, kind.Bits())
		if err != nil {
			return nil, err
		}

		if kind == value.KindFloat32 {
			return value.Float32(f), nil
		}

		return value.Float64(f), nil
	}

	if kind.IsUnsigned() {
		u, err := parseUint(n, kind.Bits())
		if err != nil {
			return nil, err
		}

		switch kind {
		case value.KindUint8:
			return value.Uint8(u), nil
		case value.KindUint16:
			return value.Uint16(u), nil
		case value.KindUint32:
			return value.Uint32(u), nil
		}

		return value.Uint64(u), nil
	}

	i, err := parseInt(n, kind.Bits())
	if err != nil {
		return nil, err
	}

	switch kind {
	case value.KindInt8:
		return value.Int8(i), nil
	case value.KindInt16:
		return value.Int16(i), nil
	case value.KindInt32:
		return value.Int32(i), nil
	}

	return value.Int64(i), nil
}

func buildItems(items []node) ([]value.Value, error) {
	res := make([]value.Value, 0, len(items))

	for _, item := range items {
		v, err := build(item)
		if err != nil {
			return nil, err
		}

		res = append(res, v)
	}

	return res, nil
}

func buildMap(n node) (value.Value, error) {
	res := make(value.Map, 0, n.entries())

	for i := 0; i+1 < len(n.items); i += 2 {
		k, err := build(n.items[i])
		if err != nil {
			return nil, err
		}

		v, err := build(n.items[i+1])
		if err != nil {
			return nil, err
		}

		res = append(res, value.Entry{Key: k, Value: v})
	}

	return res, nil
}

func buildPrimitiveArray(n node, rule tagRule) (value.Value, error) {
	if n.kind == nodeBinary && rule.kind == value.KindInt8Array {
		return buildBinary(n)
	}

	if n.kind != nodeSeq {
		return nil, n.errorf("!%s needs a sequence", n.tag)
	}

	elems := make([]value.Value, 0, len(n.items))

	for _, item := range n.items {
		if item.tag == "" {
			item.tag = rule.elem
		}

		v, err := build(item)
		if err != nil {
			return nil, err
		}

		if v.Kind() != tags[rule.elem].kind {
			return nil, item.errorf("!%s cannot hold %s", n.tag, v.Kind())
		}

		elems = append(elems, v)
	}

	switch rule.kind {
	case value.KindInt32Array:
		return collect[value.Int32Array](elems, func(v value.Value) int32 { return int32(v.(value.Int32)) }), nil
	case value.KindInt8Array:
		return collect[value.Int8Array](elems, func(v value.Value) int8 { return int8(v.(value.Int8)) }), nil
	case value.KindInt16Array:
		return collect[value.Int16Array](elems, func(v value.Value) int16 { return int16(v.(value.Int16)) }), nil
	case value.KindInt64Array:
		return collect[value.Int64Array](elems, func(v value.Value) int64 { return int64(v.(value.Int64)) }), nil
	case value.KindFloat32Array:
		return collect[value.Float32Array](elems, func(v value.Value) float32 { return float32(v.(value.Float32)) }), nil
	case value.KindFloat64Array:
		return collect[value.Float64Array](elems, func(v value.Value) float64 { return float64(v.(value.Float64)) }), nil
	case value.KindBoolArray:
		return collect[value.BoolArray](elems, func(v value.Value) bool { return bool(v.(value.Bool)) }), nil
	case value.KindCharArray:
		return collect[value.CharArray](elems, func(v value.Value) uint16 { return uint16(v.(value.Char)) }), nil
	}

	return nil, n.errorf("!%s is not an array tag", n.tag)
}

func collect[S ~[]E, E any](elems []value.Value, conv func(value.Value) E) value.Value {
	res := make(S, len(elems))
	for i, v := range elems {
		res[i] = conv(v)
	}

	return any(res).(value.Value)
}

func buildBinary(n node) (value.Value, error) {
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.text), ""))
	if err != nil {
		return nil, n.errorf("invalid binary: %v", err)
	}

	res := make(value.Int8Array, len(data))
	for i, b := range data {
		res[i] = int8(b)
	}

	return res, nil
}

func parseBool(n node) (value.Value, error) {
	switch n.text {
	case "true", "True", "TRUE":
		return value.Bool(true), nil
	case "false", "False", "FALSE":
		return value.Bool(false), nil
	}

	return nil, n.errorf("invalid bool %q", n.text)
}

// parseInt accepts decimal, 0x, 0o and 0b forms with optional underscores.
func parseInt(n node, bits int) (int64, error) {
	if n.kind != nodeInt && n.kind != nodeScalar && n.kind != nodeString {
		return 0, n.errorf("!%s cannot hold %q", n.tag, n.text)
	}

	i, err := strconv.ParseInt(n.text, 0, bits)
	if err != nil {
		return 0, n.errorf("invalid %d-bit integer %q", bits, n.text)
	}

	return i, nil
}

func parseUint(n node, bits int) (uint64, error) {
	if n.kind != nodeInt && n.kind != nodeScalar && n.kind != nodeString {
		return 0, n.errorf("!%s cannot hold %q", n.tag, n.text)
	}

	u, err := strconv.ParseUint(strings.TrimPrefix(n.text, "+"), 0, bits)
	if err != nil {
		return 0, n.errorf("invalid %d-bit unsigned integer %q", bits, n.text)
	}

	return u, nil
}

func parseFloat(n node, bits int) (float64, error) {
	if n.kind != nodeInt && n.kind != nodeFloat && n.kind != nodeScalar && n.kind != nodeString {
		return 0, n.errorf("!%s cannot hold %q", n.tag, n.text)
	}

	switch n.text {
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	}

	f, err := strconv.ParseFloat(n.text, bits)
	if err != nil {
		return 0, n.errorf("invalid %d-bit float %q", bits, n.text)
	}

	return f, nil
}
