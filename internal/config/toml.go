package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type tomlFile struct {
	Object  *string        `toml:"object"`
	Package *string        `toml:"package"`
	Output  *string        `toml:"output"`
	Version *string        `toml:"version"`
	Const   *bool          `toml:"const"`
	Options map[string]any `toml:"options"`
}

func parseTOML(data []byte, name string) (*partial, error) {
	var f tomlFile

	md, err := toml.Decode(string(data), &f)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %s:%d: %s", ErrInvalidConfig, name, perr.Position.Line, tomlMessage(perr))
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}

	// keys below options are decoded into any and reported as undecoded;
	// the node walk checks them
	for _, k := range md.Undecoded() {
		if k[0] != "options" {
			return nil, fmt.Errorf("%w: %s: unknown field %q", ErrInvalidConfig, name, k.String())
		}
	}

	p := &partial{
		Object:  f.Object,
		Package: f.Package,
		Output:  f.Output,
		Version: f.Version,
		Const:   f.Const,
	}

	if md.IsDefined("options") {
		t := tomlTree{keys: md.Keys(), name: name}

		n, err := t.node(f.Options, toml.Key{"options"})
		if err != nil {
			return nil, err
		}

		p.Options = &n
	}

	return p, nil
}

// tomlMessage is the text of perr without the "toml: line N" prefix. Lexer
// errors leave Message empty and keep the text in the wrapped error.
func tomlMessage(perr toml.ParseError) string {
	if perr.Message != "" {
		return perr.Message
	}

	msg, ok := strings.CutPrefix(perr.Error(), "toml: line "+strconv.Itoa(perr.Position.Line))
	if !ok {
		return perr.Error()
	}

	if perr.LastKey != "" {
		msg = strings.TrimPrefix(msg, fmt.Sprintf(" (last key %q)", perr.LastKey))
	}

	return strings.TrimPrefix(msg, ": ")
}

// tomlTree rebuilds document order, which the decoded maps lose, from the
// key metadata.
type tomlTree struct {
	keys []toml.Key
	name string
}

// order lists the keys of the table at prefix: first as they appear in the
// document, then any the metadata does not cover, sorted.
func (t tomlTree) order(m map[string]any, prefix toml.Key) []string {
	res := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))

	for _, k := range t.keys {
		if len(k) != len(prefix)+1 || !slices.Equal(k[:len(prefix)], prefix) {
			continue
		}

		last := k[len(k)-1]
		if _, ok := m[last]; !ok {
			continue
		}

		if _, dup := seen[last]; dup {
			continue
		}

		seen[last] = struct{}{}
		res = append(res, last)
	}

	var rest []string
	for k := range m {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}

	slices.Sort(rest)

	return append(res, rest...)
}

func (t tomlTree) node(v any, key toml.Key) (node, error) {
	n := node{pos: t.name + ": " + key.String(), directives: true}

	switch v := v.(type) {
	case map[string]any:
		n.kind = nodeMap

		for _, k := range t.order(v, key) {
			child, err := t.node(v[k], append(slices.Clone(key), k))
			if err != nil {
				return n, err
			}

			n.items = append(n.items, node{kind: nodeString, text: k, pos: child.pos}, child)
		}
	case []map[string]any:
		n.kind = nodeSeq

		for _, item := range v {
			child, err := t.node(item, key)
			if err != nil {
				return n, err
			}

			n.items = append(n.items, child)
		}
	case []any:
		n.kind = nodeSeq

		for _, item := range v {
			child, err := t.node(item, key)
			if err != nil {
				return n, err
			}

			n.items = append(n.items, child)
		}
	case string:
		n.kind, n.text = nodeString, v
	case bool:
		n.kind, n.text = nodeBool, strconv.FormatBool(v)
	case int64:
		n.kind, n.text = nodeInt, strconv.FormatInt(v, 10)
	case float64:
		n.kind, n.text = nodeFloat, strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		n.kind, n.text = nodeString, v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		// local dates and times
		n.kind, n.text = nodeString, v.String()
	default:
		return n, n.errorf("unsupported TOML value %T", v)
	}

	return n, nil
}
