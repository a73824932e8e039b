package cli

import (
	"context"

	"github.com/chiselhq/witbuild/internal/build"
)

// Represents the 'witbuild run' command.
type RunCmd struct {
	Template string            `arg:"" help:"Language template the command belongs to."`
	Command  string            `arg:"" help:"Custom command to run."`
	Profile  string            `short:"p" help:"Build profile. Defaults to the template's default profile." placeholder:"NAME"`
	Var      map[string]string `short:"V" help:"Template variable binding." placeholder:"NAME=VALUE"`
}

// Executes the run command.
func (c *RunCmd) Run(ctx context.Context) error {
	m, root, err := loadManifest()
	if err != nil {
		return err
	}

	runner, closeLog := newRunner(c.Template)
	defer closeLog()

	_, err = build.RunCommand(ctx, runner, build.Options{
		Manifest:  m,
		Template:  c.Template,
		Profile:   c.Profile,
		Variables: c.Var,
		Root:      root,
	}, c.Command)
	return err
}
