package build

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/chiselhq/witbuild/internal/manifest"
)

// Walks an ordered step list, applying staleness checks, directory
// lifecycle, and command execution per step.
type builder struct {
	runner Runner
	root   string
	scan   ScanOptions

	executed int // Steps that ran.
	skipped  int // Steps skipped as up to date.
}

// Creates a builder over the given options.
func newBuilder(runner Runner, opts Options) *builder {
	return &builder{
		runner: runner,
		root:   opts.Root,
		scan:   opts.Scan,
	}
}

// Executes steps strictly in order, stopping at the first failure.
func (b *builder) runSteps(ctx context.Context, steps []manifest.Step) error {
	for i, step := range steps {
		if err := b.runStep(ctx, step); err != nil {
			return errors.Mark(errors.Wrapf(err, "step %d", i+1), ErrBuild)
		}
	}
	return nil
}

// Executes a single step.
//
// Up-to-date steps are skipped without touching the filesystem. Stale steps
// get their declared directories removed and created, then the command runs
// with the template root (or the step's dir override) as working directory.
// A non-zero exit or a cancellation is fatal.
func (b *builder) runStep(ctx context.Context, step manifest.Step) error {
	slog.Debug("evaluating step", "step", step.String())

	stale, err := isStale(&step, b.root, b.scan)
	if err != nil {
		return err
	}
	if !stale {
		slog.Info("skipping step, targets up to date", "command", step.Command)
		b.skipped++
		return nil
	}

	if err := prepare(&step, b.root); err != nil {
		return err
	}

	dir := b.root
	if step.Dir != "" {
		dir = resolvePath(b.root, step.Dir)
	}

	slog.Info("running step", "command", step.Command, "dir", dir)

	result, err := b.runner.Run(ctx, step.Command, dir)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errors.Mark(err, ErrCancelled)
		}
		return err
	}

	if result.ExitCode != 0 {
		slog.Error("step failed",
			"command", step.Command,
			"exit_code", result.ExitCode,
			"stderr", result.Stderr,
		)
		return errors.Mark(
			errors.Newf("command %q exited with code %d", step.Command, result.ExitCode),
			ErrStepFailed,
		)
	}

	b.executed++
	return nil
}
