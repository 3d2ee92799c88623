package rootdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// FromPath returns the coverage root for an entry point located at path:
// the grandparent directory of path after resolving it to an absolute,
// symlink-free form. For a binary installed at <repo>/bin/covrun this is
// <repo>, no matter how the binary was reached.
func FromPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to absolutize %q: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", abs, err)
	}

	return filepath.Dir(filepath.Dir(resolved)), nil
}

// Locate derives the coverage root from the running executable.
func Locate() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return FromPath(exe)
}
