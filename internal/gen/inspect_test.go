package gen

import (
	"fmt"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmark/internal/config"
	"buildmark/value"
)

func TestParseModule_RoundTrip(t *testing.T) {
	t.Parallel()

	opts := []config.Option{
		{Name: "VERSION", Value: value.String("1.0.2 \"beta\" $x\n")},
		{Name: "in", Value: value.Int64(math.MinInt64)},
		{Name: "SMALL", Value: value.Uint8(255)},
		{Name: "RATIO", Value: value.Float64(math.NaN())},
		{Name: "CH", Value: value.Char(0xD800)},
		{Name: "TAGS", Value: value.Set{value.String("}"), value.String("{")}},
		{Name: "ORIGIN", Value: value.Pair{First: value.Pair{First: value.Int32(1), Second: value.Int32(2)}, Second: value.Null{}}},
		{Name: "LIMITS", Value: value.Map{{Key: value.String("a"), Value: value.List{}}}},
		{Name: "PIXELS", Value: value.Int16Array{-1, 2}},
	}

	for _, pkg := range []string{"", "com.example", "org.is.x"} {
		t.Run(fmt.Sprintf("package %q", pkg), func(t *testing.T) {
			t.Parallel()

			cfg := DefaultGeneratorConfig()
			cfg.Package = pkg
			cfg.Const = true

			file, err := NewGenerator(cfg).Generate(opts)
			require.NoError(t, err)

			got, err := ParseModule(file.Content, file.Path)
			require.NoError(t, err, string(file.Content))

			assert.Equal(t, cfg.Package, got.Package)
			assert.Equal(t, cfg.Object, got.Object)
			assert.True(t, got.Const)
			require.Len(t, got.Options, len(opts))

			for i, opt := range opts {
				assert.Equal(t, opt.Name, got.Options[i].Name)
				assert.True(t, value.Equal(value.Widen(opt.Value), got.Options[i].Value),
					"%s\n%s", opt.Name, spew.Sdump(got.Options[i].Value))
			}

			// the options reproduce the file
			again, err := NewGenerator(ConfigFrom(got)).Generate(got.Options)
			require.NoError(t, err)
			assert.Equal(t, string(file.Content), string(again.Content))
		})
	}
}

func TestParseModule_Lenient(t *testing.T) {
	t.Parallel()

	src := "// header\n\nobject `object` {\n  val A = 1\n\n  const val B = \"b\"\n}\n\n"

	got, err := ParseModule([]byte(src), "x.kt")
	require.NoError(t, err)

	assert.Equal(t, "object", got.Object)
	assert.Empty(t, got.Package)
	assert.True(t, got.Const)
	require.Len(t, got.Options, 2)
	assert.Equal(t, "x.kt:4", got.Options[0].Source)
	assert.Equal(t, value.String("b"), got.Options[1].Value)
}

func TestParseModule_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "x.kt: unterminated object"},
		{"no object", "package a\nclass A\n", "x.kt:2: expected an object declaration"},
		{"no brace", "object A\nval B = 1\n", "x.kt:2: expected {"},
		{"bad property", "object A\n{\n    var B = 1\n}\n", "x.kt:3: expected a val declaration"},
		{"bad literal", "object A\n{\n    val B = listOf(\n}\n", "x.kt:3: B:"},
		{"unterminated", "object A\n{\n    val B = 1\n", "x.kt: unterminated object"},
		{"trailing", "object A\n{\n}\nobject B\n", "x.kt:4: unexpected text after the object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseModule([]byte(tt.src), "x.kt")
			require.ErrorIs(t, err, ErrMalformedSource)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func ExampleParseModule() {
	src := `package com.example

object BuildMark
{
    val VERSION = "1.0.2"
    val PORTS = intArrayOf(80, 443)
}
`

	cfg, err := ParseModule([]byte(src), "BuildMark.kt")
	if err != nil {
		panic(err)
	}

	for _, opt := range cfg.Options {
		fmt.Println(opt.Name, opt.Value.Kind())
	}

	// Output:
	// VERSION KindString
	// PORTS KindInt32Array
}
