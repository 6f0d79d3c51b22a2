package resolve

import (
	"path/filepath"

	"pbcat/pkg/apperr"
)

// Canonicalize returns the absolute, symlink-free form of path. Two inputs
// with the same canonical form are the same file.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperr.FromOS("canonicalize", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", apperr.FromOS("canonicalize", path, err)
	}
	return resolved, nil
}
