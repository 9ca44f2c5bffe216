package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"gopkg.in/yaml.v3"

	"buildmark/internal/literal"
	"buildmark/value"
)

type yamlFile struct {
	Object  *string   `yaml:"object"`
	Package *string   `yaml:"package"`
	Output  *string   `yaml:"output"`
	Version *string   `yaml:"version"`
	Const   *bool     `yaml:"const"`
	Options yaml.Node `yaml:"options"`
}

func parseYAML(data []byte, name string) (*partial, error) {
	var f yamlFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}

	p := &partial{
		Object:  f.Object,
		Package: f.Package,
		Output:  f.Output,
		Version: f.Version,
		Const:   f.Const,
	}

	if f.Options.Kind != 0 {
		n, err := fromYAML(&f.Options, name)
		if err != nil {
			return nil, err
		}

		p.Options = &n
	}

	return p, nil
}

// maxAliasNodes caps the nodes reached through aliases in one document.
const maxAliasNodes = 10_000

// fromYAML converts a YAML node. Implicitly typed scalars keep the kind the
// core schema resolved; explicit local tags select a value kind.
func fromYAML(y *yaml.Node, name string) (node, error) {
	w := yamlWalker{name: name, active: map[*yaml.Node]struct{}{}}
	return w.node(y)
}

type yamlWalker struct {
	name string

	// active holds the anchors being expanded on the current path.
	active   map[*yaml.Node]struct{}
	depth    int
	expanded int
}

func (w *yamlWalker) node(y *yaml.Node) (node, error) {
	n := node{text: y.Value}
	if w.name != "" {
		n.pos = w.name + ":" + strconv.Itoa(y.Line)
	} else if y.Line > 0 {
		n.pos = "line " + strconv.Itoa(y.Line)
	}

	if w.depth > 0 {
		w.expanded++
		if w.expanded > maxAliasNodes {
			return node{}, n.errorf("aliases expand to more than %d nodes", maxAliasNodes)
		}
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return node{kind: nodeNull, pos: n.pos}, nil
		}

		return w.node(y.Content[0])
	case yaml.AliasNode:
		if _, ok := w.active[y.Alias]; ok {
			return node{}, n.errorf("alias *%s refers to itself", y.Value)
		}

		w.active[y.Alias] = struct{}{}
		w.depth++

		defer func() {
			delete(w.active, y.Alias)
			w.depth--
		}()

		return w.node(y.Alias)
	}

	tag := y.ShortTag()
	if strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
		n.tag = tag[1:]
		tag = ""
	}

	switch y.Kind {
	case yaml.SequenceNode:
		n.kind = nodeSeq
	case yaml.MappingNode:
		n.kind = nodeMap
	case yaml.ScalarNode:
		switch tag {
		case "":
			n.kind = nodeScalar
		case "!!null":
			n.kind = nodeNull
		case "!!bool":
			n.kind = nodeBool
		case "!!int":
			n.kind = nodeInt
		case "!!float":
			n.kind = nodeFloat
		case "!!binary":
			n.kind = nodeBinary
		default:
			// !!str, !!timestamp and unknown global tags stay text
			n.kind = nodeString
		}
	default:
		return node{}, n.errorf("unsupported YAML node")
	}

	for _, c := range y.Content {
		if c.Kind == yaml.ScalarNode && c.ShortTag() == "!!merge" {
			return node{}, n.errorf("merge keys are not supported")
		}

		child, err := w.node(c)
		if err != nil {
			return node{}, err
		}

		n.items = append(n.items, child)
	}

	return n, nil
}

// ParseValue reads one YAML value, such as the right side of --set.
func ParseValue(src string) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// an empty value is the empty string, not null
	if len(doc.Content) == 0 {
		return value.String(""), nil
	}

	n, err := fromYAML(&doc, "")
	if err != nil {
		return nil, err
	}

	return build(n)
}

// EncodeYAML renders cfg as a configuration file that loads back to the same
// options, tagging every value whose kind the untagged form would not give.
func EncodeYAML(cfg *Config) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, val *yaml.Node) {
		root.Content = append(root.Content, str(key), val)
	}

	add("object", str(cfg.Object))

	if cfg.Package != "" {
		add("package", str(cfg.Package))
	}

	if cfg.Output != "" && cfg.Output != DefaultOutput {
		add("output", str(cfg.Output))
	}

	if cfg.Version != "" && cfg.Version != DefaultVersion {
		add("version", str(cfg.Version))
	}

	if cfg.Const {
		add("const", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}

	opts := &yaml.Node{Kind: yaml.MappingNode, Style: flowIfEmpty(len(cfg.Options))}
	for _, o := range cfg.Options {
		opts.Content = append(opts.Content, str(o.Name), encode(o.Value, ""))
	}

	add("options", opts)

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return buf.Bytes(), nil
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func local(kind value.Kind) string {
	return "!" + tagNames[kind]
}

// encode converts v; implied is the tag the enclosing array gives v.
func encode(v value.Value, implied string) *yaml.Node {
	tagged := func(text string) *yaml.Node {
		tag := local(value.KindOf(v))
		if tag == implied {
			// the array tag types untagged elements, yet they must not
			// resolve as strings
			switch {
			case value.KindOf(v).IsFloat():
				return scalar("!!float", text)
			case value.KindOf(v).IsInteger():
				return scalar("!!int", text)
			}

			return scalar("!!str", text)
		}

		return scalar(tag, text)
	}

	switch v := v.(type) {
	case nil, value.Null:
		return scalar("!!null", "null")
	case value.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(v)))
	case value.Int32:
		if implied != "" {
			return tagged(strconv.FormatInt(int64(v), 10))
		}

		return scalar("!!int", strconv.FormatInt(int64(v), 10))
	case value.Int64:
		if implied == "" && (v < math.MinInt32 || v > math.MaxInt32) {
			return scalar("!!int", strconv.FormatInt(int64(v), 10))
		}

		return tagged(strconv.FormatInt(int64(v), 10))
	case value.Int8:
		return tagged(strconv.FormatInt(int64(v), 10))
	case value.Int16:
		return tagged(strconv.FormatInt(int64(v), 10))
	case value.Uint8:
		return tagged(strconv.FormatUint(uint64(v), 10))
	case value.Uint16:
		return tagged(strconv.FormatUint(uint64(v), 10))
	case value.Uint32:
		return tagged(strconv.FormatUint(uint64(v), 10))
	case value.Uint64:
		return tagged(strconv.FormatUint(uint64(v), 10))
	case value.Float64:
		if implied != "" {
			return tagged(formatFloat(float64(v), 64))
		}

		return scalar("!!float", formatFloat(float64(v), 64))
	case value.Float32:
		return tagged(formatFloat(float64(v), 32))
	case value.Char:
		if utf16.IsSurrogate(rune(v)) {
			return tagged(fmt.Sprintf("0x%04x", uint16(v)))
		}

		return tagged(string(rune(v)))
	case value.String:
		return str(string(v))
	case value.List:
		return sequence("", v, "")
	case value.Set:
		return sequence(local(value.KindSet), v, "")
	case value.Array:
		return sequence(local(value.KindArray), v, "")
	case value.Pair:
		return sequence(local(value.KindPair), []value.Value{v.First, v.Second}, "")
	case value.Map:
		m := &yaml.Node{Kind: yaml.MappingNode, Style: flowIfEmpty(len(v))}
		for _, e := range v {
			m.Content = append(m.Content, encode(e.Key, ""), encode(e.Value, ""))
		}

		return m
	default:
		if value.KindOf(v).IsPrimitiveArray() {
			return sequence(local(v.Kind()), boxed(v), "!"+tags[tagNames[v.Kind()]].elem)
		}
	}

	// every kind is handled above
	return scalar("!!str", literal.Format(v))
}

// boxed returns the elements of a primitive array as values.
func boxed(v value.Value) []value.Value {
	switch v := v.(type) {
	case value.Int32Array:
		return box(v, func(e int32) value.Value { return value.Int32(e) })
	case value.Int8Array:
		return box(v, func(e int8) value.Value { return value.Int8(e) })
	case value.Int16Array:
		return box(v, func(e int16) value.Value { return value.Int16(e) })
	case value.Int64Array:
		return box(v, func(e int64) value.Value { return value.Int64(e) })
	case value.Float32Array:
		return box(v, func(e float32) value.Value { return value.Float32(e) })
	case value.Float64Array:
		return box(v, func(e float64) value.Value { return value.Float64(e) })
	case value.BoolArray:
		return box(v, func(e bool) value.Value { return value.Bool(e) })
	case value.CharArray:
		return box(v, func(e uint16) value.Value { return value.Char(e) })
	}

	return nil
}

func box[S ~[]E, E any](s S, conv func(E) value.Value) []value.Value {
	res := make([]value.Value, len(s))
	for i, e := range s {
		res[i] = conv(e)
	}

	return res
}

func sequence(tag string, items []value.Value, implied string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag, Style: yaml.FlowStyle}
	for _, item := range items {
		child := encode(item, implied)
		if child.Kind != yaml.ScalarNode {
			seq.Style = 0
		}

		seq.Content = append(seq.Content, child)
	}

	return seq
}

func flowIfEmpty(n int) yaml.Style {
	if n == 0 {
		return yaml.FlowStyle
	}

	return 0
}

// formatFloat writes f so that YAML resolves the untagged text as a float.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
