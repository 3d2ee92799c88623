package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	gobsargs "github.com/gobs/args"
)

// ErrHelp is returned when the caller asked for usage output. Kong has
// already printed it by the time ParseCLI returns.
var ErrHelp = errors.New("help requested")

type CLI struct {
	Options []string `kong:"arg,optional,name:'options',help:'Extra options forwarded verbatim to the test runner.'"`
	Config
}

type Config struct {
	Runner  string `kong:"env='COVRUN_RUNNER',default='pytest',help:'Test runner binary looked up on PATH.'"`
	DocsDir string `kong:"env='COVRUN_DOCS_DIR',default='docs',help:'Directory under the coverage root excluded from the run.'"`
	Root    string `kong:"env='COVRUN_ROOT',help:'Coverage root. Defaults to the grandparent directory of the resolved covrun executable.'"`
}

func ParseCLI(args []string) (CLI, error) {
	var cli CLI
	helpRequested := false
	parser, err := kong.New(&cli,
		kong.Name("covrun"),
		kong.Description("Run the test suite with coverage of the repository root"),
		kong.UsageOnError(),
		// Prevent os.Exit and record that kong wanted to stop; with no
		// required flags Parse succeeds even after printing help
		kong.Exit(func(int) { helpRequested = true }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": "1.0.0",
		},
	)
	if err != nil {
		return cli, err
	}

	_, err = parser.Parse(args)
	if helpRequested {
		return cli, ErrHelp
	}
	if err != nil {
		return cli, err
	}

	return cli, nil
}

// RunnerOptions returns the forwarded options as discrete tokens. An
// argument that itself contains whitespace is shell-split, so a caller may
// pass either `covrun -- -k test_foo -v` or `covrun -- "-k test_foo -v"`
// and the runner sees the same arguments.
func (c CLI) RunnerOptions() []string {
	var opts []string
	for _, o := range c.Options {
		if strings.ContainsAny(o, " \t\n") {
			opts = append(opts, gobsargs.GetArgs(o)...)
		} else {
			opts = append(opts, o)
		}
	}
	return opts
}

func (c CLI) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `covrun - Run the test suite with coverage of the repository root

Usage:
  covrun [flags] [-- options...]

Environment Variables:
  COVRUN_RUNNER       Test runner binary (default: pytest)
  COVRUN_DOCS_DIR     Directory excluded from the run (default: docs)
  COVRUN_ROOT         Coverage root override

Options:
  --runner            Test runner binary, looked up on PATH.
  --docs-dir          Directory under the coverage root excluded from the run.
  --root              Coverage root. Defaults to the grandparent directory
                      of the resolved covrun executable.
  --help              Show this help message.

Behavior:
  - Resolves its own location, following symbolic links, and takes the
    grandparent directory as the coverage root.
  - Invokes the runner with --cov=<root> and --ignore=<root>/docs, then the
    forwarded options. A single quoted options string is shell-split before
    forwarding.
  - stdin/stdout/stderr are passed through. Signals (SIGINT, SIGTERM) are
    forwarded to the runner.

Exit Codes:
  0-255   Exit code from the test runner, unchanged
  2       Usage error or coverage root resolution failure
  126     Runner found but could not be launched
  127     Runner not found on PATH

Example:
  covrun -- -k test_foo -v
`)
}
