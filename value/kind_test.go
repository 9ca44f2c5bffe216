package value_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"buildmark/value"
)

func Example() {
	fmt.Println(value.KindOf(value.Int32(1)))
	fmt.Println(value.KindOf(value.List{}))
	fmt.Println(value.KindOf(value.CharArray{'a'}))
	fmt.Println(value.KindOf(nil))
	fmt.Println(value.Kind(0))
	// Output:
	// KindInt32
	// KindList
	// KindCharArray
	// KindNull
	// Kind(0)
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	for k := value.Kind(1); int(k) < value.KindTotal; k++ {
		assert.NotContains(t, k.String(), "Kind(", "missing name for %d", int(k))

		if k.IsInteger() {
			assert.True(t, k.IsSigned() != k.IsUnsigned(), k.String())
			assert.Contains(t, []int{8, 16, 32, 64}, k.Bits())
		}

		if k.IsPrimitiveArray() {
			assert.False(t, k.IsScalar(), k.String())
		}
	}

	assert.True(t, value.KindString.IsConstant())
	assert.True(t, value.KindUint64.IsConstant())
	assert.False(t, value.KindNull.IsConstant())
	assert.False(t, value.KindUint8.IsConstant())
	assert.False(t, value.KindUint16.IsConstant())
	assert.False(t, value.KindList.IsConstant())
	assert.Equal(t, 32, value.KindFloat32.Bits())
	assert.Panics(t, func() { value.KindString.Bits() })
}

func TestElements(t *testing.T) {
	t.Parallel()

	m := value.Map{{Key: value.String("a"), Value: value.Int32(1)}}
	assert.Equal(t, []value.Value{value.String("a"), value.Int32(1)}, value.Elements(m))
	assert.Equal(t, []value.Value{value.Null{}, value.Bool(true)},
		value.Elements(value.Pair{First: value.Null{}, Second: value.Bool(true)}))
	assert.Nil(t, value.Elements(value.Int32Array{1}))
}
