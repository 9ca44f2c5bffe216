package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"buildmark/internal/diagnostic"
	"buildmark/value"
)

// ErrInvalidConfig is wrapped by every error about the configuration content.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults.
const (
	DefaultFile    = "buildmark.yaml"
	DefaultObject  = "BuildMark"
	DefaultOutput  = "build/generated/buildmark"
	DefaultVersion = "unspecified"
	// VersionOption names the option generated when none are configured.
	VersionOption = "VERSION"
)

// Config is a loaded and validated project configuration.
type Config struct {
	// Object is the name of the generated Kotlin object.
	Object string `validate:"required,kotlin_ident"`
	// Package is the dotted Kotlin package, empty for the default package.
	Package string `validate:"omitempty,kotlin_package"`
	// Output is the directory owned by the generator.
	Output  string `validate:"required"`
	Version string
	// Const declares scalar options as `const val`.
	Const   bool
	Options []Option `validate:"dive"`
	// Path is the file the configuration was read from, if any.
	Path string `validate:"-"`
}

// Option is one property of the generated object.
type Option struct {
	Name  string `validate:"kotlin_ident"`
	Value value.Value
	// Source locates the option in its file.
	Source string
}

// NewOption adapts a Go value into an option.
func NewOption(name string, v any) (Option, error) {
	val, err := value.FromGo(v)
	if err != nil {
		return Option{}, fmt.Errorf("option %s: %w", name, err)
	}

	return Option{Name: name, Value: val}, nil
}

// Format of a configuration file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf selects the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}

	return 0, fmt.Errorf("%w: unsupported config file extension %q", ErrInvalidConfig, filepath.Ext(path))
}

// Overrides replace file settings, typically from the command line. Nil
// fields keep the file value.
type Overrides struct {
	Object  *string
	Package *string
	Output  *string
	Version *string
	Const   *bool
	// Set holds NAME=VALUE assignments; VALUE is read as a YAML scalar or
	// flow collection and may carry a tag.
	Set []string
}

// partial is what a file sets; nil means absent.
type partial struct {
	Object  *string
	Package *string
	Output  *string
	Version *string
	Const   *bool
	// Options is nil when the file has no options key.
	Options *node
}

// Load reads, completes and validates the configuration file at path.
func Load(path string, ov Overrides) (*Config, diagnostic.Diagnostics, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data, format, path, ov)
}

// Parse is Load for content already in memory; name is used in messages.
func Parse(data []byte, format Format, name string, ov Overrides) (*Config, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	var (
		p   *partial
		err error
	)

	switch format {
	case FormatYAML:
		p, err = parseYAML(data, name)
	case FormatJSON:
		p, err = parseJSON(data, name)
	case FormatTOML:
		p, err = parseTOML(data, name)
	default:
		err = fmt.Errorf("%w: unknown format %s", ErrInvalidConfig, format)
	}

	if err != nil {
		return nil, diags, err
	}

	cfg, err := complete(p, ov, &diags)
	if err != nil {
		return nil, diags, err
	}

	cfg.Path = name

	if err := Validate(cfg, &diags); err != nil {
		return nil, diags, err
	}

	return cfg, diags, nil
}

func complete(p *partial, ov Overrides, diags *diagnostic.Diagnostics) (*Config, error) {
	cfg := &Config{
		Object:  pick(ov.Object, p.Object, DefaultObject),
		Package: pick(ov.Package, p.Package, ""),
		Output:  pick(ov.Output, p.Output, DefaultOutput),
		Version: pick(ov.Version, p.Version, DefaultVersion),
		Const:   pick(ov.Const, p.Const, false),
	}

	if p.Options == nil {
		cfg.Options = []Option{{Name: VersionOption, Value: value.String(cfg.Version)}}
	} else {
		opts, err := buildOptions(*p.Options)
		if err != nil {
			return nil, err
		}

		cfg.Options = opts
	}

	for _, assignment := range ov.Set {
		if err := cfg.Set(assignment, diags); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func pick[T any](override, file *T, def T) T {
	switch {
	case override != nil:
		return *override
	case file != nil:
		return *file
	default:
		return def
	}
}

// buildOptions types every value of the options mapping, keeping file order.
func buildOptions(n node) ([]Option, error) {
	if n.kind == nodeNull {
		return nil, nil
	}

	if n.kind != nodeMap || n.tag != "" {
		return nil, n.errorf("options must be a mapping")
	}

	opts := make([]Option, 0, n.entries())

	for i := 0; i+1 < len(n.items); i += 2 {
		key := n.items[i]
		if key.kind != nodeString && key.kind != nodeScalar {
			return nil, key.errorf("option name must be a string, got %q", key.text)
		}

		v, err := build(n.items[i+1])
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", key.text, err)
		}

		opts = append(opts, Option{Name: key.text, Value: v, Source: key.pos})
	}

	return opts, nil
}

// Set applies one NAME=VALUE assignment, replacing the option in place or
// appending it.
func (c *Config) Set(assignment string, diags *diagnostic.Diagnostics) error {
	name, raw, ok := strings.Cut(assignment, "=")
	if !ok || name == "" {
		return fmt.Errorf("%w: --set %q: want NAME=VALUE", ErrInvalidConfig, assignment)
	}

	v, err := ParseValue(raw)
	if err != nil {
		return fmt.Errorf("--set %s: %w", name, err)
	}

	for i := range c.Options {
		if c.Options[i].Name == name {
			c.Options[i].Value = v
			c.Options[i].Source = "--set"

			diags.AddInfo("override", "value replaced from the command line", "", name)

			return nil
		}
	}

	c.Options = append(c.Options, Option{Name: name, Value: v, Source: "--set"})

	return nil
}
