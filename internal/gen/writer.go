package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"buildmark/internal/config"
	"buildmark/internal/files"
)

// Run generates the options and makes the output directory hold exactly the
// generated file. It reports whether anything was written: an output that is
// already up to date is left alone.
//
// On any error the output directory is not modified.
func (g *Generator) Run(opts []config.Option) (bool, error) {
	file, err := g.Generate(opts)
	if err != nil {
		return false, err
	}

	return WriteFiles([]GeneratedFile{*file}, g.config.OutputDir)
}

// WriteFiles replaces the contents of outputDir with the given files.
func WriteFiles(generated []GeneratedFile, outputDir string) (bool, error) {
	tree := make([]files.File, len(generated))
	for i, f := range generated {
		tree[i] = files.File{Path: f.Path, Content: f.Content}
	}

	changed, err := files.ReplaceDir(outputDir, tree)
	if err != nil {
		return false, fmt.Errorf("writing %s: %w", outputDir, err)
	}

	return changed, nil
}

// CheckResult describes how the output directory differs from a fresh
// generation.
type CheckResult struct {
	// Stale is set when a Run would write.
	Stale bool
	// Diff is a line diff from the file on disk to the generated one; empty
	// when only unrelated files are in the way.
	Diff string
}

// Check generates the options and compares the result with the output
// directory without writing.
func (g *Generator) Check(opts []config.Option) (*CheckResult, error) {
	file, err := g.Generate(opts)
	if err != nil {
		return nil, err
	}

	same, err := files.Matches(g.config.OutputDir, []files.File{{Path: file.Path, Content: file.Content}})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", g.config.OutputDir, err)
	}

	if same {
		return &CheckResult{}, nil
	}

	current, err := os.ReadFile(filepath.Join(g.config.OutputDir, filepath.FromSlash(file.Path)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", file.Path, err)
	}

	return &CheckResult{Stale: true, Diff: cmp.Diff(lines(current), lines(file.Content))}, nil
}

func lines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}

	return strings.SplitAfter(string(b), "\n")
}
