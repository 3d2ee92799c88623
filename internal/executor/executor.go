package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

const (
	// ExitNotFound mirrors the shell convention for a command missing
	// from PATH
	ExitNotFound = 127
	// ExitNotExecutable mirrors the shell convention for a command that
	// exists but could not be launched
	ExitNotExecutable = 126
)

type Executor struct {
	sigChan chan os.Signal
}

func New() *Executor {
	return &Executor{
		sigChan: make(chan os.Signal, 1),
	}
}

// Execute runs argv[0] with the remaining elements as its arguments,
// passing stdin/stdout/stderr through and forwarding SIGINT/SIGTERM to the
// child. The returned code is the child's exit status whenever the child
// was launched; launch failures return the shell-convention codes above.
func (e *Executor) Execute(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("command is required")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	// Pass through stdin, stdout, stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	signal.Notify(e.sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(e.sigChan)

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ExitNotFound, fmt.Errorf("failed to start %s: %w", argv[0], err)
		}
		return ExitNotExecutable, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if err := cmd.Process.Kill(); err != nil {
			return -1, fmt.Errorf("failed to kill process: %w", err)
		}
		<-done
		return -1, ctx.Err()
	case sig := <-e.sigChan:
		// Forward the signal and mirror however the child exits
		if err := cmd.Process.Signal(sig); err != nil {
			return -1, fmt.Errorf("failed to forward signal: %w", err)
		}
		err := <-done
		return ExitCode(err), err
	case err := <-done:
		return ExitCode(err), err
	}
}

// ExitCode maps a Wait error to the child's exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		// Terminated by a signal; mirror the shell's 128+n convention
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		return 1
	}

	return -1
}
