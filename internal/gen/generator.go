package gen

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"

	"buildmark/internal/config"
	"buildmark/internal/kotlin"
	"buildmark/internal/literal"
	"buildmark/value"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Package is the dotted Kotlin package; empty means the default package.
	Package string
	// Object is the name of the generated object.
	Object string
	// OutputDir is the directory owned by the generator. Run replaces its
	// whole contents.
	OutputDir string
	// Const declares properties of constant kinds as `const val`.
	Const bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Object:    config.DefaultObject,
		OutputDir: config.DefaultOutput,
	}
}

// ConfigFrom returns the generator configuration a loaded project asks for.
func ConfigFrom(cfg *config.Config) GeneratorConfig {
	return GeneratorConfig{
		Package:   cfg.Package,
		Object:    cfg.Object,
		OutputDir: cfg.Output,
		Const:     cfg.Const,
	}
}

// Generator renders options into a Kotlin object. It keeps no state between
// calls.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// Config returns the configuration g was created with.
func (g *Generator) Config() GeneratorConfig {
	return g.config
}

// GeneratedFile represents a generated Kotlin source file.
type GeneratedFile struct {
	// Path is slash separated and relative to the output directory, e.g.
	// "com/example/BuildMark.kt".
	Path    string
	Content []byte
}

// Module is the declaration about to be rendered. Names are in source form,
// hard keywords already back-ticked.
type Module struct {
	Package    string
	Object     string
	Properties []Property
}

// Property is one `val` of the object.
type Property struct {
	Name    string
	Literal string
	Const   bool
}

// Build validates the names and converts every option value, in option
// order. Every name problem is reported, joined into one error.
func (g *Generator) Build(opts []config.Option) (*Module, error) {
	var errs []error

	if err := kotlin.CheckIdentifier(g.config.Object); err != nil {
		errs = append(errs, &InvalidNameError{What: "object", Name: g.config.Object, Err: err})
	}

	segments, err := packageSegments(g.config.Package)
	if err != nil {
		errs = append(errs, &InvalidNameError{What: "package", Name: g.config.Package, Err: err})
	}

	seen := make(map[string]struct{}, len(opts))

	for _, opt := range opts {
		if err := kotlin.CheckIdentifier(opt.Name); err != nil {
			errs = append(errs, &InvalidNameError{What: "option", Name: opt.Name, Err: err})
			continue
		}

		if _, dup := seen[opt.Name]; dup {
			errs = append(errs, &DuplicateNameError{Name: opt.Name})
			continue
		}

		seen[opt.Name] = struct{}{}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	m := &Module{
		Package:    kotlin.QuotePackage(segments),
		Object:     kotlin.Quote(g.config.Object),
		Properties: make([]Property, 0, len(opts)),
	}

	for _, opt := range opts {
		lit, err := literal.Convert(opt.Value)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", opt.Name, err)
		}

		m.Properties = append(m.Properties, Property{
			Name:    kotlin.Quote(opt.Name),
			Literal: lit,
			Const:   g.config.Const && value.KindOf(opt.Value).IsConstant(),
		})
	}

	return m, nil
}

// packageSegments splits name, rejecting empty and invalid segments.
func packageSegments(name string) ([]string, error) {
	if name == "" {
		return nil, nil
	}

	segments := strings.Split(name, ".")
	for _, s := range segments {
		if s == "" {
			return nil, errors.New("empty segment")
		}

		if err := kotlin.CheckIdentifier(s); err != nil {
			return nil, err
		}
	}

	return segments, nil
}

// Path returns where the object lands relative to the output directory.
func (g *Generator) Path() string {
	segments, _ := packageSegments(g.config.Package)
	return path.Join(append(segments, g.config.Object+".kt")...)
}

// Generate renders the options. Nothing is written.
func (g *Generator) Generate(opts []config.Option) (*GeneratedFile, error) {
	m, err := g.Build(opts)
	if err != nil {
		return nil, err
	}

	content, err := Render(m)
	if err != nil {
		return nil, err
	}

	return &GeneratedFile{Path: g.Path(), Content: content}, nil
}

// Render renders m as Kotlin source.
func Render(m *Module) ([]byte, error) {
	var buf bytes.Buffer
	if err := objectTemplate.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

var objectTemplate = template.Must(template.New("object").Parse(`{{if .Package}}package {{.Package}}

{{end}}object {{.Object}}
{
{{- range .Properties}}
    {{if .Const}}const {{end}}val {{.Name}} = {{.Literal}}
{{- end}}
}
`))
