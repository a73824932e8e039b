package build

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/chiselhq/witbuild/internal/manifest"
	"github.com/chiselhq/witbuild/internal/paths"
)

// Applies a step's declared directory lifecycle.
//
// All removals complete before any creation begins; a step may remove and
// recreate the same directory, which is the usual way to regenerate a
// binding tree from scratch. Removal of a missing directory and creation of
// an existing one are both no-ops. A real failure (e.g., permission denied)
// aborts the step with the filesystem left exactly as the failing operation
// produced it; nothing is rolled back.
func prepare(step *manifest.Step, root string) error {
	for _, dir := range step.Rmdirs {
		if err := os.RemoveAll(resolvePath(root, dir)); err != nil {
			return errors.Mark(errors.Wrapf(err, "removing %s", dir), ErrFilesystem)
		}
	}

	for _, dir := range step.Mkdirs {
		if err := os.MkdirAll(resolvePath(root, dir), paths.DefaultDirMode); err != nil {
			return errors.Mark(errors.Wrapf(err, "creating %s", dir), ErrFilesystem)
		}
	}

	return nil
}
