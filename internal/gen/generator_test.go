package gen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildmark/internal/config"
	"buildmark/value"
)

func options(t *testing.T, kv ...any) []config.Option {
	t.Helper()
	require.Zero(t, len(kv)%2)

	res := make([]config.Option, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		opt, err := config.NewOption(kv[i].(string), kv[i+1])
		require.NoError(t, err)

		res = append(res, opt)
	}

	return res
}

func TestGenerator_Generate_Example(t *testing.T) {
	t.Parallel()

	cfg := DefaultGeneratorConfig()
	cfg.Package = "com.example"

	file, err := NewGenerator(cfg).Generate(options(t, "VERSION", "1.0.2"))
	require.NoError(t, err)

	assert.Equal(t, "com/example/BuildMark.kt", file.Path)
	assert.Equal(t, `package com.example

object BuildMark
{
    val VERSION = "1.0.2"
}
`, string(file.Content))
}

func TestGenerator_Generate_DefaultPackage(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(options(t, "A", 1))
	require.NoError(t, err)

	assert.Equal(t, "BuildMark.kt", file.Path)
	assert.Equal(t, "object BuildMark\n{\n    val A = 1\n}\n", string(file.Content))
}

func TestGenerator_Generate_NoOptions(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(nil)
	require.NoError(t, err)

	assert.Equal(t, "object BuildMark\n{\n}\n", string(file.Content))
}

func TestGenerator_Generate_Order(t *testing.T) {
	t.Parallel()

	opts := options(t,
		"Z", "last first",
		"A", int64(5),
		"M", []string{"x", "y"},
		"B", map[string]int{"b": 2, "a": 1},
	)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, `object BuildMark
{
    val Z = "last first"
    val A = 5L
    val M = listOf("x", "y")
    val B = mapOf("a" to 1, "b" to 2)
}
`, string(file.Content))
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	t.Parallel()

	opts := options(t,
		"SET", map[string]struct{}{"c": {}, "a": {}, "b": {}},
		"NESTED", map[int][]float64{3: {1.5}, 1: nil},
	)

	g := NewGenerator(DefaultGeneratorConfig())

	first, err := g.Generate(opts)
	require.NoError(t, err)

	for range 10 {
		again, err := g.Generate(opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerator_Generate_Keywords(t *testing.T) {
	t.Parallel()

	cfg := DefaultGeneratorConfig()
	cfg.Package = "com.in.app"
	cfg.Object = "object"

	file, err := NewGenerator(cfg).Generate(options(t, "in", 1, "value", 2))
	require.NoError(t, err)

	assert.Equal(t, "com/in/app/object.kt", file.Path)
	assert.Equal(t, "package com.`in`.app\n\nobject `object`\n{\n    val `in` = 1\n    val value = 2\n}\n",
		string(file.Content))
}

func TestGenerator_Generate_Const(t *testing.T) {
	t.Parallel()

	cfg := DefaultGeneratorConfig()
	cfg.Const = true

	opts := []config.Option{
		{Name: "S", Value: value.String("s")},
		{Name: "U", Value: value.Uint8(7)},
		{Name: "C", Value: value.Char('c')},
		{Name: "F", Value: value.Float32(0.5)},
		{Name: "N", Value: value.Null{}},
		{Name: "L", Value: value.List{value.Int32(1)}},
		{Name: "P", Value: value.Pair{First: value.Int32(1), Second: value.Int32(2)}},
	}

	file, err := NewGenerator(cfg).Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, `object BuildMark
{
    const val S = "s"
    val U = 7u.toUByte()
    const val C = 'c'
    const val F = 0.5f
    val N = null
    val L = listOf(1)
    val P = 1 to 2
}
`, string(file.Content))
}

func TestGenerator_Generate_DuplicateName(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(options(t, "A", 1, "B", 2, "A", 3))
	require.ErrorIs(t, err, ErrDuplicateName)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "A", dup.Name)
}

func TestGenerator_Generate_InvalidNames(t *testing.T) {
	t.Parallel()

	cfg := DefaultGeneratorConfig()
	cfg.Object = "1Object"
	cfg.Package = "com..example"

	_, err := NewGenerator(cfg).Generate(options(t, "bad-name", 1, "ok", 2, "ok", 3, "__", 4))
	require.ErrorIs(t, err, ErrInvalidName)
	require.ErrorIs(t, err, ErrDuplicateName)

	var names []string

	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var invalid *InvalidNameError
		if errors.As(e, &invalid) {
			names = append(names, invalid.What+" "+invalid.Name)
		}
	}

	assert.Equal(t, []string{
		"object 1Object",
		"package com..example",
		"option bad-name",
		"option __",
	}, names, spew.Sdump(err))
	assert.ErrorContains(t, err, `invalid package name "com..example": empty segment`)
}

func TestGenerator_Run(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "generated")
	cfg := DefaultGeneratorConfig()
	cfg.Package = "com.example"
	cfg.OutputDir = out

	g := NewGenerator(cfg)
	opts := options(t, "VERSION", "1.0.2")

	changed, err := g.Run(opts)
	require.NoError(t, err)
	assert.True(t, changed)

	target := filepath.Join(out, "com", "example", "BuildMark.kt")
	before, err := os.Stat(target)
	require.NoError(t, err)

	// same input: nothing is rewritten
	changed, err = g.Run(opts)
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after))

	// a new package moves the file; the old tree is gone
	cfg.Package = "org.other"
	changed, err = NewGenerator(cfg).Run(opts)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.NoFileExists(t, target)
	assert.FileExists(t, filepath.Join(out, "org", "other", "BuildMark.kt"))
	assert.NoDirExists(t, filepath.Join(out, "com"))
}

func TestGenerator_Run_ErrorKeepsOutput(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = out

	_, err := NewGenerator(cfg).Run(options(t, "A", 1))
	require.NoError(t, err)

	previous, err := os.ReadFile(filepath.Join(out, "BuildMark.kt"))
	require.NoError(t, err)

	changed, err := NewGenerator(cfg).Run(options(t, "A", 2, "A", 3))
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.False(t, changed)

	current, err := os.ReadFile(filepath.Join(out, "BuildMark.kt"))
	require.NoError(t, err)
	assert.Equal(t, previous, current)
}

func TestGenerator_Run_RemovesStaleFiles(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "Old.kt"), []byte("object Old\n{\n}\n"), 0o644))

	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = out

	changed, err := NewGenerator(cfg).Run(nil)
	require.NoError(t, err)
	assert.True(t, changed)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "BuildMark.kt", entries[0].Name())
}

func TestGenerator_Check(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = filepath.Join(out, "gen")

	g := NewGenerator(cfg)
	opts := options(t, "VERSION", "1.0.2")

	res, err := g.Check(opts)
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Contains(t, res.Diff, "val VERSION")

	_, err = g.Run(opts)
	require.NoError(t, err)

	res, err = g.Check(opts)
	require.NoError(t, err)
	assert.False(t, res.Stale)
	assert.Empty(t, res.Diff)

	res, err = g.Check(options(t, "VERSION", "1.0.3"))
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Contains(t, res.Diff, `1.0.2`)
	assert.Contains(t, res.Diff, `1.0.3`)

	// an extra file makes the tree stale without a content diff
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "extra.txt"), nil, 0o644))

	res, err = g.Check(opts)
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Empty(t, res.Diff)
}
