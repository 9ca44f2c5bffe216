// Package files writes generated output so that readers never observe a
// partially written file or directory tree.
package files

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Permissions of created files and directories.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// WriteFile replaces the named file with data. The data goes to a temporary
// file in the same directory first, which is renamed over name once complete,
// so name holds either its old or its new content.
func WriteFile(name string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}

	// CreateTemp uses 0600
	if err := tmp.Chmod(FilePerm); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), name)
}

// File is one file of a directory tree.
type File struct {
	// Path is slash separated and relative to the tree root.
	Path    string
	Content []byte
}

// ErrInvalidPath is returned for a File whose path escapes the tree root.
var ErrInvalidPath = errors.New("invalid file path")

func checkPaths(tree []File) error {
	seen := make(map[string]struct{}, len(tree))

	for _, f := range tree {
		p := f.Path
		if p == "" || path.IsAbs(p) || path.Clean(p) != p || p == "." || p == ".." ||
			strings.HasPrefix(p, "../") || strings.Contains(p, "\\") {
			return fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}

		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: %q listed twice", ErrInvalidPath, p)
		}

		seen[p] = struct{}{}
	}

	return nil
}

// ReplaceDir makes root hold exactly the given files. The new tree is built in
// a staging directory next to root and swapped in with renames, so on any
// error before the swap the previous contents of root are left as they were.
//
// ReplaceDir reports false and writes nothing when root already matches.
func ReplaceDir(root string, tree []File) (bool, error) {
	if err := checkPaths(tree); err != nil {
		return false, err
	}

	same, err := Matches(root, tree)
	if err != nil {
		return false, err
	}

	if same {
		return false, nil
	}

	root = filepath.Clean(root)
	parent, base := filepath.Dir(root), filepath.Base(root)

	if err := os.MkdirAll(parent, DirPerm); err != nil {
		return false, fmt.Errorf("creating %s: %w", parent, err)
	}

	staging, err := os.MkdirTemp(parent, "."+base+".staging*")
	if err != nil {
		return false, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := os.Chmod(staging, DirPerm); err != nil {
		return false, err
	}

	for _, f := range tree {
		dst := filepath.Join(staging, filepath.FromSlash(f.Path))

		if err := os.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
			return false, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}

		if err := WriteFile(dst, f.Content); err != nil {
			return false, fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}

	if err := swap(root, staging); err != nil {
		return false, err
	}

	return true, nil
}

// swap moves staging to root, moving any previous root out of the way first.
func swap(root, staging string) error {
	info, err := os.Lstat(root)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return os.Rename(staging, root)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", root)
	}

	old, err := os.MkdirTemp(filepath.Dir(root), "."+filepath.Base(root)+".old*")
	if err != nil {
		return fmt.Errorf("reserving backup name: %w", err)
	}

	// only the name is reserved, rename needs it free on every platform
	if err := os.Remove(old); err != nil {
		return err
	}

	if err := os.Rename(root, old); err != nil {
		return fmt.Errorf("moving old output aside: %w", err)
	}

	if err := os.Rename(staging, root); err != nil {
		if restoreErr := os.Rename(old, root); restoreErr != nil {
			return errors.Join(fmt.Errorf("installing new output: %w", err), restoreErr)
		}

		return fmt.Errorf("installing new output: %w", err)
	}

	return os.RemoveAll(old)
}

// Matches reports whether root holds exactly the given regular files, with the
// same contents. A missing root matches an empty tree.
func Matches(root string, tree []File) (bool, error) {
	want := make(map[string][]byte, len(tree))
	for _, f := range tree {
		want[f.Path] = f.Content
	}

	found := 0

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		content, ok := want[filepath.ToSlash(rel)]
		if !ok || !d.Type().IsRegular() {
			return errMismatch
		}

		got, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		if !bytes.Equal(got, content) {
			return errMismatch
		}

		found++

		return nil
	})

	switch {
	case errors.Is(err, errMismatch):
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return len(tree) == 0, nil
	case err != nil:
		return false, fmt.Errorf("reading %s: %w", root, err)
	}

	return found == len(want), nil
}

var errMismatch = errors.New("mismatch")
