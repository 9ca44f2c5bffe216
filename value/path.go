package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Path builds a readable location of a nested value, used in errors.
// Examples:
//   - "FEATURES" for an option value
//   - "FEATURES[2]" for a list element
//   - "LIMITS[\"max\"]" for a map value
//   - "LIMITS[\"max\"].key" for the key of that entry
type Path struct {
	parts []string
}

// NewPath creates a new Path from a root name.
func NewPath(root string) Path {
	return Path{parts: []string{root}}
}

// Index appends an element index to the path.
func (p Path) Index(i int) Path {
	return p.suffix("[" + strconv.Itoa(i) + "]")
}

// Key appends a map key to the path.
func (p Path) Key(k any) Path {
	var s string

	switch k := k.(type) {
	case string:
		s = strconv.Quote(k)
	case String:
		s = strconv.Quote(string(k))
	default:
		s = strings.TrimSpace(strings.ReplaceAll(fmt.Sprint(k), "\n", " "))
	}

	return p.suffix("[" + s + "]")
}

// Field appends a named member (e.g. "first" of a pair) to the path.
func (p Path) Field(name string) Path {
	return Path{parts: append(append([]string{}, p.parts...), name)}
}

func (p Path) suffix(s string) Path {
	if len(p.parts) == 0 {
		return Path{parts: []string{s}}
	}

	parts := make([]string, len(p.parts))
	copy(parts, p.parts)
	parts[len(parts)-1] += s

	return Path{parts: parts}
}

// String returns the full path string.
func (p Path) String() string {
	return strings.Join(p.parts, ".")
}
