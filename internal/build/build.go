package build

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/chiselhq/witbuild/internal/manifest"
	"github.com/chiselhq/witbuild/internal/proc"
	"github.com/chiselhq/witbuild/internal/template"
)

// Spawns external toolchain commands. Implemented by [proc.Runner]; tests
// substitute fakes.
type Runner interface {
	// Runs a resolved command string in the given working directory and
	// waits for it to finish. A non-zero exit code is reported in the
	// result, not as an error.
	Run(ctx context.Context, command, dir string) (*proc.Result, error)
}

// Controls a profile build.
type Options struct {
	Manifest  *manifest.Manifest // Loaded manifest, immutable.
	Template  string             // Language template identifier (e.g., "go").
	Profile   string             // Profile name; empty selects the template's default.
	Variables map[string]string  // Template variable bindings (e.g., component_name).
	Root      string             // Template root; working directory for steps and base for relative paths.
	Filters   *template.Filters  // Filter registry; nil uses the built-in set.
	Scan      ScanOptions        // Staleness directory-scan behavior.
}

// Returned after a successful profile build.
type Result struct {
	Profile  string // Name of the profile that was built.
	Executed int    // Steps that ran.
	Skipped  int    // Steps skipped as up to date.
}

// Builds one profile end-to-end.
//
// Selects the profile, resolves every template placeholder in it, then
// executes the build steps in declaration order. Each step is checked for
// staleness first; stale steps get their directory lifecycle applied before
// the command runs. The first failure aborts the build. The call is
// synchronous; callers may invoke it concurrently for templates with
// disjoint targets.
func Run(ctx context.Context, runner Runner, opts Options) (*Result, error) {
	name, profile, err := selectAndResolve(opts)
	if err != nil {
		return nil, err
	}

	slog.Info("building profile",
		"template", opts.Template,
		"profile", name,
		"steps", len(profile.Build),
	)

	b := newBuilder(runner, opts)
	if err := b.runSteps(ctx, profile.Build); err != nil {
		return nil, err
	}

	slog.Info("build succeeded", "executed", b.executed, "skipped", b.skipped)

	return &Result{Profile: name, Executed: b.executed, Skipped: b.skipped}, nil
}

// Executes a named custom command of a profile.
//
// Custom commands share the build-step machinery: the same resolution,
// staleness, directory lifecycle, and fail-fast rules apply.
func RunCommand(ctx context.Context, runner Runner, opts Options, command string) (*Result, error) {
	name, profile, err := selectAndResolve(opts)
	if err != nil {
		return nil, err
	}

	steps, err := profile.CustomCommand(command)
	if err != nil {
		return nil, err
	}

	slog.Info("running custom command",
		"template", opts.Template,
		"profile", name,
		"command", command,
		"steps", len(steps),
	)

	b := newBuilder(runner, opts)
	if err := b.runSteps(ctx, steps); err != nil {
		return nil, err
	}

	return &Result{Profile: name, Executed: b.executed, Skipped: b.skipped}, nil
}

// Selects the requested profile and returns its fully resolved form together
// with its name.
//
// Resolution happens before any filesystem or staleness logic so that a
// malformed template can never leave partial side effects behind.
func selectAndResolve(opts Options) (string, *manifest.Profile, error) {
	tmpl, err := opts.Manifest.Template(opts.Template)
	if err != nil {
		return "", nil, err
	}

	profile, err := tmpl.SelectProfile(opts.Profile)
	if err != nil {
		return "", nil, err
	}

	name := opts.Profile
	if name == "" {
		name = tmpl.DefaultProfile
	}

	resolver := template.NewResolver(opts.Variables, opts.Filters)
	resolved, err := resolveProfile(profile, resolver)
	if err != nil {
		return "", nil, errors.Wrapf(err, "profile %q", name)
	}

	return name, resolved, nil
}
