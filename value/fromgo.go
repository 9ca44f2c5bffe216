package value

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// FromGo adapts a native Go value to a Value.
//
// Lookup proceeds by exact type first (the builtin scalars, the primitive
// slices that have an unboxed Kotlin array, Value implementations), then falls
// back to the underlying reflect kind, so a single rule covers every named
// type, slice type or map type:
//   - int and uint become Int32/Uint32 when the value fits, else Int64/Uint64
//   - []byte becomes Int8Array (bytes are reinterpreted as signed)
//   - slices become List, fixed-size arrays become Array
//   - map[K]struct{} becomes Set, any other map becomes Map
//   - non-nil pointers are dereferenced, nil pointers become Null
//
// Go maps have no order, so their keys are sorted: numbers and strings by
// natural order, anything else by its printed form.
//
// Values with no rule, such as structs, funcs and channels, fail with an
// *UnsupportedTypeError.
func FromGo(v any) (Value, error) {
	c := adapter{seen: map[ref]struct{}{}}
	return c.adapt(reflect.ValueOf(v), Path{})
}

// MustFromGo is like FromGo but panics on error.
func MustFromGo(v any) Value {
	res, err := FromGo(v)
	if err != nil {
		panic(err)
	}

	return res
}

var (
	valueType    = reflect.TypeFor[Value]()
	emptyStruct  = reflect.TypeFor[struct{}]()
	bytesType    = reflect.TypeFor[[]byte]()
	int8sType    = reflect.TypeFor[[]int8]()
	int16sType   = reflect.TypeFor[[]int16]()
	int32sType   = reflect.TypeFor[[]int32]()
	int64sType   = reflect.TypeFor[[]int64]()
	float32sType = reflect.TypeFor[[]float32]()
	float64sType = reflect.TypeFor[[]float64]()
	boolsType    = reflect.TypeFor[[]bool]()
)

type adapter struct {
	// seen holds the reference values on the current descent path.
	seen map[ref]struct{}
}

// ref identifies a reference value. Slices also need their length, so that
// a prefix of the slice being visited is not taken for the slice itself.
type ref struct {
	ptr uintptr
	len int
	typ reflect.Type
}

func (c adapter) adapt(rv reflect.Value, path Path) (Value, error) {
	if !rv.IsValid() {
		return Null{}, nil
	}

	if rv.Kind() != reflect.Pointer && rv.Type().Implements(valueType) {
		if rv.Kind() == reflect.Interface && rv.IsNil() {
			return Null{}, nil
		}

		return rv.Interface().(Value), nil
	}

	// check if exact type
	switch rv.Type() {
	case bytesType:
		b := rv.Bytes()
		res := make(Int8Array, len(b))
		for i, x := range b {
			res[i] = int8(x)
		}

		return res, nil
	case int8sType:
		return Int8Array(slices.Clone(rv.Interface().([]int8))), nil
	case int16sType:
		return Int16Array(slices.Clone(rv.Interface().([]int16))), nil
	case int32sType:
		return Int32Array(slices.Clone(rv.Interface().([]int32))), nil
	case int64sType:
		return Int64Array(slices.Clone(rv.Interface().([]int64))), nil
	case float32sType:
		return Float32Array(slices.Clone(rv.Interface().([]float32))), nil
	case float64sType:
		return Float64Array(slices.Clone(rv.Interface().([]float64))), nil
	case boolsType:
		return BoolArray(slices.Clone(rv.Interface().([]bool))), nil
	}

	// fall back to the underlying kind
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int8:
		return Int8(rv.Int()), nil
	case reflect.Int16:
		return Int16(rv.Int()), nil
	case reflect.Int32:
		return Int32(rv.Int()), nil
	case reflect.Int64:
		return Int64(rv.Int()), nil
	case reflect.Int:
		n := rv.Int()
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return Int32(n), nil
		}

		return Int64(n), nil
	case reflect.Uint8:
		return Uint8(rv.Uint()), nil
	case reflect.Uint16:
		return Uint16(rv.Uint()), nil
	case reflect.Uint32:
		return Uint32(rv.Uint()), nil
	case reflect.Uint64, reflect.Uintptr:
		return Uint64(rv.Uint()), nil
	case reflect.Uint:
		n := rv.Uint()
		if n <= math.MaxUint32 {
			return Uint32(n), nil
		}

		return Uint64(n), nil
	case reflect.Float32:
		return Float32(rv.Float()), nil
	case reflect.Float64:
		return Float64(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}

		return c.adapt(rv.Elem(), path)
	case reflect.Pointer:
		if rv.IsNil() {
			return Null{}, nil
		}

		return c.enter(rv, path, func() (Value, error) { return c.adapt(rv.Elem(), path) })
	case reflect.Slice:
		if rv.IsNil() {
			return List{}, nil
		}

		return c.enter(rv, path, func() (Value, error) {
			elems, err := c.elements(rv, path)
			return List(elems), err
		})
	case reflect.Array:
		elems, err := c.elements(rv, path)
		if err != nil {
			return nil, err
		}

		return Array(elems), nil
	case reflect.Map:
		return c.enter(rv, path, func() (Value, error) { return c.mapping(rv, path) })
	}

	return nil, &UnsupportedTypeError{Type: rv.Type(), Path: path.String()}
}

// enter guards the descent into a reference value against cycles.
func (c adapter) enter(rv reflect.Value, path Path, fn func() (Value, error)) (Value, error) {
	key := ref{ptr: rv.Pointer(), typ: rv.Type()}
	if key.ptr == 0 {
		return fn()
	}

	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}

	if _, ok := c.seen[key]; ok {
		return nil, fmt.Errorf("%w at %s", ErrCycle, path)
	}

	c.seen[key] = struct{}{}
	defer delete(c.seen, key)

	return fn()
}

func (c adapter) elements(rv reflect.Value, path Path) ([]Value, error) {
	res := make([]Value, 0, rv.Len())

	for i := range rv.Len() {
		elem, err := c.adapt(rv.Index(i), path.Index(i))
		if err != nil {
			return nil, err
		}

		res = append(res, elem)
	}

	return res, nil
}

func (c adapter) mapping(rv reflect.Value, path Path) (Value, error) {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)

	if rv.Type().Elem() == emptyStruct {
		res := make(Set, 0, len(keys))

		for i, k := range keys {
			key, err := c.adapt(k, path.Index(i))
			if err != nil {
				return nil, err
			}

			res = append(res, key)
		}

		return res, nil
	}

	res := make(Map, 0, len(keys))

	for _, k := range keys {
		key, err := c.adapt(k, path.Key(k.Interface()).Field("key"))
		if err != nil {
			return nil, err
		}

		val, err := c.adapt(rv.MapIndex(k), path.Key(k.Interface()))
		if err != nil {
			return nil, err
		}

		res = append(res, Entry{Key: key, Value: val})
	}

	return res, nil
}

// compareKeys orders map keys deterministically.
func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}

	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}

	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankBool:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	case rankInt:
		return cmp.Compare(a.Int(), b.Int())
	case rankUint:
		return cmp.Compare(a.Uint(), b.Uint())
	case rankFloat:
		return cmp.Compare(a.Float(), b.Float())
	case rankString:
		return cmp.Compare(a.String(), b.String())
	}

	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

const (
	rankNil = iota
	rankBool
	rankInt
	rankUint
	rankFloat
	rankString
	rankOther
)

func keyRank(v reflect.Value) int {
	if !v.IsValid() {
		return rankNil
	}

	switch v.Kind() {
	case reflect.Interface:
		return rankNil
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rankInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rankUint
	case reflect.Float32, reflect.Float64:
		return rankFloat
	case reflect.String:
		return rankString
	default:
		return rankOther
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
