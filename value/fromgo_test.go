package value_test

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmark/value"
)

type Version string

type Level uint8

func TestFromGo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Null{}},
		{"bool", true, value.Bool(true)},
		{"int8", int8(-3), value.Int8(-3)},
		{"int16", int16(300), value.Int16(300)},
		{"int32", int32(7), value.Int32(7)},
		{"int64", int64(7), value.Int64(7)},
		{"small int", 42, value.Int32(42)},
		{"large int", math.MaxInt32 + 1, value.Int64(math.MaxInt32 + 1)},
		{"uint8", uint8(255), value.Uint8(255)},
		{"uint16", uint16(1), value.Uint16(1)},
		{"uint32", uint32(1), value.Uint32(1)},
		{"uint64", uint64(math.MaxUint64), value.Uint64(math.MaxUint64)},
		{"small uint", uint(5), value.Uint32(5)},
		{"float32", float32(2.5), value.Float32(2.5)},
		{"float64", 3.14, value.Float64(3.14)},
		{"string", "hello", value.String("hello")},
		{"named string", Version("1.0.2"), value.String("1.0.2")},
		{"named uint8", Level(2), value.Uint8(2)},
		{"duration", time.Second, value.Int64(int64(time.Second))},
		{"value passthrough", value.Char('x'), value.Char('x')},
		{"bytes", []byte{1, 0xff}, value.Int8Array{1, -1}},
		{"int32 slice", []int32{1, 2}, value.Int32Array{1, 2}},
		{"int8 slice", []int8{1}, value.Int8Array{1}},
		{"int16 slice", []int16{1}, value.Int16Array{1}},
		{"int64 slice", []int64{1}, value.Int64Array{1}},
		{"float32 slice", []float32{1}, value.Float32Array{1}},
		{"float64 slice", []float64{1}, value.Float64Array{1}},
		{"bool slice", []bool{true}, value.BoolArray{true}},
		{"string slice", []string{"a", "b"}, value.List{value.String("a"), value.String("b")}},
		{"nil slice", []string(nil), value.List{}},
		{"mixed slice", []any{1, "a", nil}, value.List{value.Int32(1), value.String("a"), value.Null{}}},
		{"array", [2]int{1, 2}, value.Array{value.Int32(1), value.Int32(2)}},
		{"set", map[string]struct{}{"b": {}, "a": {}}, value.Set{value.String("a"), value.String("b")}},
		{"map sorted", map[int]string{2: "two", 1: "one"}, value.Map{
			{Key: value.Int32(1), Value: value.String("one")},
			{Key: value.Int32(2), Value: value.String("two")},
		}},
		{"nested values", []value.Value{value.Pair{First: value.Int32(1), Second: value.Null{}}, nil},
			value.List{value.Pair{First: value.Int32(1), Second: value.Null{}}, value.Null{}}},
		{"pointer", ptr("x"), value.String("x")},
		{"nil pointer", (*string)(nil), value.Null{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := value.FromGo(tt.in)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "want %s\ngot %s", spew.Sdump(tt.want), spew.Sdump(got))
		})
	}
}

func TestFromGo_MixedMapKeys(t *testing.T) {
	t.Parallel()

	got, err := value.FromGo(map[any]int{"b": 1, 2: 2, "a": 3, true: 4})
	require.NoError(t, err)

	m, ok := got.(value.Map)
	require.True(t, ok)
	require.Len(t, m, 4)

	keys := make([]value.Value, 0, len(m))
	for _, e := range m {
		keys = append(keys, e.Key)
	}

	assert.Equal(t, []value.Value{value.Bool(true), value.Int32(2), value.String("a"), value.String("b")}, keys)
}

func TestFromGo_Unsupported(t *testing.T) {
	t.Parallel()

	t.Run("anonymous struct", func(t *testing.T) {
		t.Parallel()

		_, err := value.FromGo(struct{}{})
		require.Error(t, err)
		assert.ErrorIs(t, err, value.ErrUnsupportedType)

		var ute *value.UnsupportedTypeError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, reflect.TypeFor[struct{}](), ute.Type)
	})

	t.Run("nested func reports path", func(t *testing.T) {
		t.Parallel()

		_, err := value.FromGo(map[string]any{"hooks": []any{1, func() {}}})
		require.Error(t, err)

		var ute *value.UnsupportedTypeError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, `["hooks"][1]`, ute.Path)
		assert.Contains(t, err.Error(), "func()")
	})

	t.Run("complex", func(t *testing.T) {
		t.Parallel()

		_, err := value.FromGo(complex(1, 2))
		assert.ErrorIs(t, err, value.ErrUnsupportedType)
	})

	t.Run("channel", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { value.MustFromGo(make(chan int)) })
	})
}

func TestFromGo_Cycle(t *testing.T) {
	t.Parallel()

	s := []any{nil}
	s[0] = s

	_, err := value.FromGo(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, value.ErrCycle)
}

func TestFromGo_SharedIsNotCycle(t *testing.T) {
	t.Parallel()

	shared := []string{"x"}

	got, err := value.FromGo([]any{shared, shared})
	require.NoError(t, err)
	assert.Len(t, got.(value.List), 2)
}

func TestFromGo_PrefixIsNotCycle(t *testing.T) {
	t.Parallel()

	s := []any{"x", nil}
	s[1] = s[:1]

	got, err := value.FromGo(s)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.List{value.String("x"), value.List{value.String("x")}}, got), "%v", got)

	// a prefix that holds itself still cycles
	c := []any{nil, nil}
	c[0] = c[:1]

	_, err = value.FromGo(c)
	assert.ErrorIs(t, err, value.ErrCycle)
}

func ptr[T any](v T) *T { return &v }
