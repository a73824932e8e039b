// Package build orchestrates profile builds from a loaded manifest.
//
// A profile is an ordered sequence of steps, each an external toolchain
// command with declared filesystem inputs and outputs. The pipeline selects
// a profile, resolves every template placeholder in it, then walks the
// steps in declaration order: steps whose targets are up to date relative
// to their sources are skipped, stale steps get their declared directories
// removed and recreated before the command runs. A non-zero exit halts the
// build immediately; later steps consume earlier steps' outputs, so there
// is no safe way to continue past a failure.
//
// Step order in the manifest is authoritative. No dependency graph is
// inferred from source/target overlap, and steps within a profile never run
// in parallel. Independent profile builds may run concurrently as long as
// they do not declare overlapping targets; that invariant is the caller's
// to uphold.
//
// Process spawning is delegated to a [Runner], normally the proc package.
//
// Example usage:
//
//	result, err := build.Run(ctx, proc.New(), build.Options{
//	    Manifest:  m,
//	    Template:  "go",
//	    Variables: map[string]string{"component_name": "shopping-cart"},
//	    Root:      "components/go",
//	})
//	if err != nil {
//	    return err
//	}
package build
