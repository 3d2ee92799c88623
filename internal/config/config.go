package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

type Config struct {
	Runner  string
	Root    string
	DocsDir string
}

func (c Config) Validate() error {
	if c.Runner == "" {
		return errors.New("runner is required")
	}
	if c.Root == "" {
		return errors.New("coverage root is required")
	}
	if !filepath.IsAbs(c.Root) {
		return fmt.Errorf("coverage root must be absolute, got %q", c.Root)
	}
	if c.DocsDir == "" {
		return errors.New("docs directory name is required")
	}
	return nil
}

// IgnorePath returns the directory excluded from the run. The directory
// does not have to exist.
func (c Config) IgnorePath() string {
	return filepath.Join(c.Root, c.DocsDir)
}

// Argv renders the full runner invocation. Extra options always come last
// so callers can override the computed flags.
func (c Config) Argv(extra []string) []string {
	argv := []string{
		c.Runner,
		"--cov=" + c.Root,
		"--ignore=" + c.IgnorePath(),
	}
	return append(argv, extra...)
}
