package proc

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Default shell used to interpret command strings.
const defaultShell = "/bin/sh"

// Reported when a command cannot be started at all, as opposed to running
// and exiting non-zero.
var ErrProcess = errors.New("process execution failed")

// Outcome of one command execution.
type Result struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Executes command strings through the shell.
type Runner struct {
	shell  string
	mirror io.Writer // Optional secondary sink for combined output.
}

// Configures a [Runner].
type Option func(*Runner)

// Overrides the shell used to interpret command strings.
func WithShell(shell string) Option {
	return func(r *Runner) { r.shell = shell }
}

// Mirrors the combined command output to w in addition to capturing it,
// typically into a build log file.
func WithMirror(w io.Writer) Option {
	return func(r *Runner) { r.mirror = w }
}

// Creates a runner.
func New(opts ...Option) *Runner {
	r := &Runner{shell: defaultShell}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Runs a command string in the given working directory and waits for it to
// finish.
//
// The command is passed to the shell as a single argument via "shell -c
// command". Output is captured and returned; a non-zero exit code is not an
// error. Context cancellation kills the process and returns the context's
// error.
func (r *Runner) Run(ctx context.Context, command, dir string) (*Result, error) {
	slog.Debug("exec", "command", command, "dir", dir, "shell", r.shell)

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = r.sink(&stdout)
	cmd.Stderr = r.sink(&stderr)

	err := cmd.Run()

	// A kill triggered by cancellation surfaces as an exit error; report the
	// cancellation itself instead.
	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "command terminated")
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		// Exited zero.
	case errors.As(err, &exitErr):
		// Ran to completion with a non-zero exit code.
	default:
		return nil, errors.Mark(errors.Wrapf(err, "starting %q", command), ErrProcess)
	}

	return &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// Returns buf, teed into the mirror writer when one is configured.
func (r *Runner) sink(buf *bytes.Buffer) io.Writer {
	if r.mirror == nil {
		return buf
	}
	return io.MultiWriter(buf, r.mirror)
}
