package cli

import (
	"context"

	"github.com/chiselhq/witbuild/internal/build"
)

// Represents the 'witbuild build' command.
type BuildCmd struct {
	Template string            `arg:"" help:"Language template to build."`
	Profile  string            `short:"p" help:"Build profile. Defaults to the template's default profile." placeholder:"NAME"`
	Var      map[string]string `short:"V" help:"Template variable binding." placeholder:"NAME=VALUE"`

	FollowSymlinks bool `help:"Follow symbolic links when scanning sources and targets for staleness."`
	IgnoreHidden   bool `help:"Skip hidden files when scanning sources and targets for staleness."`
}

// Executes the build command.
func (c *BuildCmd) Run(ctx context.Context) error {
	m, root, err := loadManifest()
	if err != nil {
		return err
	}

	runner, closeLog := newRunner(c.Template)
	defer closeLog()

	_, err = build.Run(ctx, runner, build.Options{
		Manifest:  m,
		Template:  c.Template,
		Profile:   c.Profile,
		Variables: c.Var,
		Root:      root,
		Scan: build.ScanOptions{
			FollowSymlinks: c.FollowSymlinks,
			IgnoreHidden:   c.IgnoreHidden,
		},
	})
	return err
}
