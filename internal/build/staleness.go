package build

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/chiselhq/witbuild/internal/manifest"
)

// Controls how directory-valued sources and targets are scanned for
// modification times.
type ScanOptions struct {
	FollowSymlinks bool // Follow symbolic links encountered during the scan.
	IgnoreHidden   bool // Skip files and directories whose name starts with a dot.
}

// Reports whether a step must run.
//
// A step is stale if its target set is empty, any target is missing, or any
// source is strictly newer than the oldest existing target. A missing source
// also makes the step stale: freshness cannot be proven without it, and the
// command's own failure will produce a better diagnostic than a skip.
//
// Directories count as fresh as their newest descendant. Generated binding
// trees change without the top-level directory's own timestamp moving, so a
// recursive scan is the only comparison that does not skip real work.
func isStale(step *manifest.Step, root string, opts ScanOptions) (bool, error) {
	if len(step.Targets) == 0 {
		return true, nil
	}

	var oldestTarget time.Time
	for _, target := range step.Targets {
		mtime, exists, err := effectiveMtime(resolvePath(root, target), opts)
		if err != nil {
			return false, err
		}
		if !exists {
			return true, nil
		}
		if oldestTarget.IsZero() || mtime.Before(oldestTarget) {
			oldestTarget = mtime
		}
	}

	for _, source := range step.Sources {
		mtime, exists, err := effectiveMtime(resolvePath(root, source), opts)
		if err != nil {
			return false, err
		}
		if !exists || mtime.After(oldestTarget) {
			return true, nil
		}
	}

	return false, nil
}

// Returns the effective modification time of a path.
//
// For regular files this is the file's own mtime. For directories it is the
// newest mtime found by recursively scanning the directory, floored at the
// directory's own mtime. The second return value reports whether the path
// exists at all.
func effectiveMtime(path string, opts ScanOptions) (time.Time, bool, error) {
	return scanMtime(path, opts, nil)
}

// Computes the effective mtime of a path, tracking visited directories.
//
// visited holds the canonical paths of directories already scanned while
// following symlinks. A link pointing back at an ancestor of the scanned
// tree would otherwise recurse forever; a directory seen twice contributes
// only its own mtime the second time.
func scanMtime(path string, opts ScanOptions, visited map[string]struct{}) (time.Time, bool, error) {
	info, err := statPath(path, opts)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, errors.Mark(errors.Wrapf(err, "stat %s", path), ErrFilesystem)
	}

	if !info.IsDir() {
		return info.ModTime(), true, nil
	}

	if opts.FollowSymlinks {
		canonical, err := filepath.EvalSymlinks(path)
		if err != nil {
			return time.Time{}, false, errors.Mark(errors.Wrapf(err, "resolving %s", path), ErrFilesystem)
		}
		if visited == nil {
			visited = make(map[string]struct{})
		}
		if _, seen := visited[canonical]; seen {
			return info.ModTime(), true, nil
		}
		visited[canonical] = struct{}{}
	}

	newest, err := newestUnder(path, info.ModTime(), opts, visited)
	if err != nil {
		return time.Time{}, false, err
	}
	return newest, true, nil
}

// Returns the newest modification time under dir, starting from floor.
func newestUnder(dir string, floor time.Time, opts ScanOptions, visited map[string]struct{}) (time.Time, error) {
	newest := floor

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if opts.IgnoreHidden && path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// WalkDir does not descend into symlinked directories; resolve them
		// here when configured to follow.
		if d.Type()&fs.ModeSymlink != 0 && opts.FollowSymlinks {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				if os.IsNotExist(err) {
					return nil // Dangling link, nothing to compare.
				}
				return err
			}
			mtime, exists, err := scanMtime(target, opts, visited)
			if err != nil {
				return err
			}
			if exists && mtime.After(newest) {
				newest = mtime
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFilesystem) {
			return time.Time{}, err
		}
		return time.Time{}, errors.Mark(errors.Wrapf(err, "scanning %s", dir), ErrFilesystem)
	}

	return newest, nil
}

// Stats a path, following symlinks only when configured to.
func statPath(path string, opts ScanOptions) (os.FileInfo, error) {
	if opts.FollowSymlinks {
		return os.Stat(path)
	}
	return os.Lstat(path)
}

// Reports whether a file name is hidden by dotfile convention.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Resolves a manifest path against the template root. Absolute paths are
// kept as-is.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
