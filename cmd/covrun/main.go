package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qoolloop/covrun/internal/cli"
	"github.com/qoolloop/covrun/internal/config"
	"github.com/qoolloop/covrun/internal/executor"
	"github.com/qoolloop/covrun/internal/rootdir"
)

// exitUsage is returned for argument errors and coverage root resolution
// failures; runner exit codes pass through unchanged.
const exitUsage = 2

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Parse CLI arguments
	cliArgs, err := cli.ParseCLI(args[1:])
	if err != nil {
		// Kong has already printed help or usage
		if errors.Is(err, cli.ErrHelp) {
			return 0
		}
		return exitUsage
	}

	// Derive the coverage root from our own resolved location unless the
	// caller pinned one
	root := cliArgs.Root
	if root == "" {
		root, err = rootdir.Locate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve coverage root: %v\n", err)
			return exitUsage
		}
	} else {
		root, err = filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve coverage root: %v\n", err)
			return exitUsage
		}
	}

	cfg := config.Config{
		Runner:  cliArgs.Runner,
		Root:    root,
		DocsDir: cliArgs.DocsDir,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}

	// Run the test runner and mirror its exit status
	exec := executor.New()
	ctx := context.Background()
	code, err := exec.Execute(ctx, cfg.Argv(cliArgs.RunnerOptions()))
	if err != nil {
		if code == executor.ExitNotFound || code == executor.ExitNotExecutable {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return code
		}
		if code >= 0 {
			// The runner ran and failed; its status passes through silently
			return code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	return code
}
