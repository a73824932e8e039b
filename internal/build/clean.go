package build

import (
	"log/slog"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
)

// Returned after a clean operation.
type CleanResult struct {
	Profile string   // Name of the profile that was cleaned.
	Removed []string // Paths that existed and were removed, resolved and sorted.
}

// Removes every artifact a profile build can produce.
//
// The removal set is the union of all build and custom-command targets, the
// profile's generated artifact paths (generatedWit, componentWasm,
// linkedWasm), and its declared clean list. Authored sources (sourceWit) are
// never touched. Missing paths are skipped silently; a real removal failure
// aborts with the filesystem left as-is.
func Clean(opts Options) (*CleanResult, error) {
	name, profile, err := selectAndResolve(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	collect := func(paths ...string) {
		for _, p := range paths {
			if p != "" {
				seen[resolvePath(opts.Root, p)] = struct{}{}
			}
		}
	}

	for _, step := range profile.Build {
		collect(step.Targets...)
	}
	for _, steps := range profile.CustomCommands {
		for _, step := range steps {
			collect(step.Targets...)
		}
	}
	collect(profile.GeneratedWit, profile.ComponentWasm, profile.LinkedWasm)
	collect(profile.Clean...)

	targets := make([]string, 0, len(seen))
	for p := range seen {
		targets = append(targets, p)
	}
	sort.Strings(targets)

	removed := make([]string, 0, len(targets))
	for _, p := range targets {
		if _, err := os.Lstat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Mark(errors.Wrapf(err, "stat %s", p), ErrFilesystem)
		}

		slog.Info("removing", "path", p)
		if err := os.RemoveAll(p); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "removing %s", p), ErrFilesystem)
		}
		removed = append(removed, p)
	}

	return &CleanResult{Profile: name, Removed: removed}, nil
}
