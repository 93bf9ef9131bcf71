package workingset

import (
	"errors"
	"os"
	"path/filepath"
)

// ExpandHomeDir expands a leading `~` to the user's home directory,
// adapted from the teacher's parser.ExpandHomeDir (parser/util.go).
func ExpandHomeDir(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.New("cannot expand user-specific home dir")
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path[1:]), nil
}

// Canonicalize resolves path to its absolute, symlink-free form and
// confirms it exists, the collaborator named `canonicalize(path)` in
// spec.md §6.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return real, nil
}
