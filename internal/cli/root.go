package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/chiselhq/witbuild/internal"
	"github.com/chiselhq/witbuild/internal/manifest"
	"github.com/chiselhq/witbuild/internal/paths"
	"github.com/chiselhq/witbuild/internal/proc"
)

// Represents the root command for the witbuild CLI.
var RootCmd struct {
	Quiet    bool   `short:"q" help:"Suppress informational output."`
	Verbose  bool   `short:"v" help:"Enable verbose output."`
	Debug    bool   `short:"d" help:"Enable debug output."`
	Manifest string `short:"m" help:"Path to the build manifest. Defaults to witbuild.yaml in the working directory." placeholder:"PATH"`

	Build   BuildCmd   `cmd:"" help:"Build a language template profile."`
	Clean   CleanCmd   `cmd:"" help:"Remove the artifacts a profile build produces."`
	Run     RunCmd     `cmd:"" help:"Run a custom command defined by a profile."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds WebAssembly components from declarative template manifests."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelWarn
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:     level,
		AddSource: verbose,
		NoColor:   !isatty.IsTerminal(os.Stderr.Fd()),
	})

	slog.SetDefault(slog.New(handler))
}

// Loads the manifest named by the --manifest flag, or witbuild.yaml in the
// working directory.
//
// Returns the manifest together with its directory, which serves as the
// template root for step execution and relative path resolution.
func loadManifest() (*manifest.Manifest, string, error) {
	path := RootCmd.Manifest
	if path == "" {
		path = paths.DefaultManifest
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, "", err
	}

	root := filepath.Dir(path)
	slog.Debug("manifest loaded", "path", path, "root", root, "templates", len(m.Templates))

	return m, root, nil
}

// Creates a process runner whose output is mirrored into the template's
// build log under the XDG state directory.
//
// If the log file cannot be opened the build proceeds without a mirror; a
// missing log is not worth failing a build over.
func newRunner(template string) (*proc.Runner, func()) {
	logFile, err := openBuildLog(template)
	if err != nil {
		slog.Warn("build log unavailable", "error", err)
		return proc.New(), func() {}
	}

	runner := proc.New(proc.WithMirror(logFile))
	return runner, func() { logFile.Close() }
}

// Opens the per-template build log for appending, creating the log directory
// as needed.
func openBuildLog(template string) (io.WriteCloser, error) {
	if err := os.MkdirAll(paths.Logs(), paths.DefaultDirMode); err != nil {
		return nil, err
	}
	return os.OpenFile(paths.BuildLog(template), os.O_CREATE|os.O_WRONLY|os.O_APPEND, paths.DefaultFileMode)
}
