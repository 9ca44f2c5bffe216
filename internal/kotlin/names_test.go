package kotlin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		valid bool
	}{
		{"VERSION", true},
		{"buildNumber", true},
		{"_private", true},
		{"x1", true},
		{"größe", true},
		{"val", true},
		{"", false},
		{"_", false},
		{"__", false},
		{"1abc", false},
		{"with-dash", false},
		{"with space", false},
		{"a.b", false},
		{"`quoted`", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckIdentifier(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}

			assert.Equal(t, tt.valid, IsIdentifier(tt.name))
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "VERSION", Quote("VERSION"))
	assert.Equal(t, "`object`", Quote("object"))
	assert.Equal(t, "`in`", Quote("in"))
	assert.Equal(t, "value", Quote("value"), "soft keywords need no quoting")
	assert.Equal(t, "object", Unquote("`object`"))
	assert.Equal(t, "plain", Unquote("plain"))
	assert.Equal(t, "`", Unquote("`"))
}

func TestParsePackage(t *testing.T) {
	t.Parallel()

	segments, err := ParsePackage("com.example")
	require.NoError(t, err)
	assert.Equal(t, []string{"com", "example"}, segments)

	segments, err = ParsePackage("")
	require.NoError(t, err)
	assert.Empty(t, segments)

	segments, err = ParsePackage("org.is.fun")
	require.NoError(t, err)
	assert.Equal(t, "org.`is`.`fun`", QuotePackage(segments))

	for _, bad := range []string{".", "com.", ".com", "com..example", "com.1x", "com/example"} {
		_, err := ParsePackage(bad)
		assert.Error(t, err, bad)
	}
}
