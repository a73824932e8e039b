package cli

import (
	"context"
	"log/slog"

	"github.com/chiselhq/witbuild/internal/build"
)

// Represents the 'witbuild clean' command.
type CleanCmd struct {
	Template string            `arg:"" help:"Language template to clean."`
	Profile  string            `short:"p" help:"Build profile. Defaults to the template's default profile." placeholder:"NAME"`
	Var      map[string]string `short:"V" help:"Template variable binding." placeholder:"NAME=VALUE"`
}

// Executes the clean command.
func (c *CleanCmd) Run(ctx context.Context) error {
	m, root, err := loadManifest()
	if err != nil {
		return err
	}

	result, err := build.Clean(build.Options{
		Manifest:  m,
		Template:  c.Template,
		Profile:   c.Profile,
		Variables: c.Var,
		Root:      root,
	})
	if err != nil {
		return err
	}

	slog.Info("clean finished", "profile", result.Profile, "removed", len(result.Removed))
	return nil
}
