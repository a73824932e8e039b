package build

import (
	"github.com/cockroachdb/errors"

	"github.com/chiselhq/witbuild/internal/manifest"
	"github.com/chiselhq/witbuild/internal/template"
)

// Returns a copy of the profile with every string-valued field resolved.
//
// The manifest value is never mutated. Every field is checked after
// substitution: placeholder syntax remaining in a resolved value (smuggled
// in through a variable binding) is rejected, since downstream filesystem
// and staleness logic must only ever see concrete paths.
func resolveProfile(p *manifest.Profile, r *template.Resolver) (*manifest.Profile, error) {
	out := &manifest.Profile{}

	var err error
	if out.SourceWit, err = resolveField(r, "sourceWit", p.SourceWit); err != nil {
		return nil, err
	}
	if out.GeneratedWit, err = resolveField(r, "generatedWit", p.GeneratedWit); err != nil {
		return nil, err
	}
	if out.ComponentWasm, err = resolveField(r, "componentWasm", p.ComponentWasm); err != nil {
		return nil, err
	}
	if out.LinkedWasm, err = resolveField(r, "linkedWasm", p.LinkedWasm); err != nil {
		return nil, err
	}

	if out.Build, err = resolveSteps(r, p.Build); err != nil {
		return nil, errors.Wrap(err, "build")
	}

	if len(p.CustomCommands) > 0 {
		out.CustomCommands = make(map[string][]manifest.Step, len(p.CustomCommands))
		for name, steps := range p.CustomCommands {
			resolved, err := resolveSteps(r, steps)
			if err != nil {
				return nil, errors.Wrapf(err, "customCommands.%s", name)
			}
			out.CustomCommands[name] = resolved
		}
	}

	if out.Clean, err = resolveStrings(r, p.Clean); err != nil {
		return nil, errors.Wrap(err, "clean")
	}

	return out, nil
}

// Resolves an ordered step list, preserving order.
func resolveSteps(r *template.Resolver, steps []manifest.Step) ([]manifest.Step, error) {
	if steps == nil {
		return nil, nil
	}

	out := make([]manifest.Step, len(steps))
	for i, s := range steps {
		resolved, err := resolveStep(r, s)
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", i)
		}
		out[i] = resolved
	}
	return out, nil
}

// Resolves every field of one step.
func resolveStep(r *template.Resolver, s manifest.Step) (manifest.Step, error) {
	out := manifest.Step{}

	var err error
	if out.Command, err = resolveField(r, "command", s.Command); err != nil {
		return out, err
	}
	if out.Dir, err = resolveField(r, "dir", s.Dir); err != nil {
		return out, err
	}
	if out.Rmdirs, err = resolveStrings(r, s.Rmdirs); err != nil {
		return out, errors.Wrap(err, "rmdirs")
	}
	if out.Mkdirs, err = resolveStrings(r, s.Mkdirs); err != nil {
		return out, errors.Wrap(err, "mkdirs")
	}
	if out.Sources, err = resolveStrings(r, s.Sources); err != nil {
		return out, errors.Wrap(err, "sources")
	}
	if out.Targets, err = resolveStrings(r, s.Targets); err != nil {
		return out, errors.Wrap(err, "targets")
	}

	return out, nil
}

// Resolves a single named field and rejects leftover placeholder syntax.
func resolveField(r *template.Resolver, name, value string) (string, error) {
	resolved, err := r.Resolve(value)
	if err != nil {
		return "", errors.Wrap(err, name)
	}
	if template.HasPlaceholder(resolved) {
		return "", errors.Mark(
			errors.Newf("%s: placeholder syntax remains after resolution: %q", name, resolved),
			template.ErrUnresolvedVariable,
		)
	}
	return resolved, nil
}

// Resolves a string slice field, checking each element for leftovers.
func resolveStrings(r *template.Resolver, in []string) ([]string, error) {
	out, err := r.ResolveAll(in)
	if err != nil {
		return nil, err
	}

	for i, s := range out {
		if template.HasPlaceholder(s) {
			return nil, errors.Mark(
				errors.Newf("[%d]: placeholder syntax remains after resolution: %q", i, s),
				template.ErrUnresolvedVariable,
			)
		}
	}
	return out, nil
}
