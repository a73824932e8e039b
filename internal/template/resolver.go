package template

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Substitutes placeholders using a fixed variable binding and filter
// registry.
//
// A resolver is immutable once created and safe for concurrent use.
type Resolver struct {
	vars    map[string]string
	filters *Filters
}

// Creates a resolver over the given variable bindings.
//
// A nil filters registry defaults to the built-in set.
func NewResolver(vars map[string]string, filters *Filters) *Resolver {
	if filters == nil {
		filters = NewFilters()
	}
	return &Resolver{vars: vars, filters: filters}
}

// Returns the fully substituted form of s.
//
// Fails with [ErrUnresolvedVariable] if a placeholder names a variable with
// no binding, [ErrUnknownFilter] if a filter is not registered, and
// [ErrMalformedPlaceholder] on unterminated or empty placeholders. A string
// without placeholder syntax is returned unchanged.
func (r *Resolver) Resolve(s string) (string, error) {
	if !strings.Contains(s, openDelim) {
		return s, nil
	}

	var b strings.Builder
	rest := s

	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		rest = rest[start+len(openDelim):]

		end := strings.Index(rest, closeDelim)
		if end < 0 {
			return "", errors.Mark(errors.Newf("unterminated placeholder in %q", s), ErrMalformedPlaceholder)
		}

		value, err := r.eval(rest[:end])
		if err != nil {
			return "", errors.Wrapf(err, "resolving %q", s)
		}
		b.WriteString(value)

		rest = rest[end+len(closeDelim):]
	}

	return b.String(), nil
}

// Resolves every string of a slice, returning a new slice.
//
// A nil input yields nil, so optional manifest fields stay optional.
func (r *Resolver) ResolveAll(in []string) ([]string, error) {
	if in == nil {
		return nil, nil
	}

	out := make([]string, len(in))
	for i, s := range in {
		resolved, err := r.Resolve(s)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

// Evaluates one placeholder body: a variable name followed by zero or more
// filter names separated by pipes.
func (r *Resolver) eval(expr string) (string, error) {
	parts := strings.Split(expr, "|")

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", errors.Mark(errors.Newf("empty placeholder %q", expr), ErrMalformedPlaceholder)
	}

	value, ok := r.vars[name]
	if !ok {
		return "", errors.Mark(errors.Newf("variable %q has no binding", name), ErrUnresolvedVariable)
	}

	for _, part := range parts[1:] {
		filterName := strings.TrimSpace(part)
		if filterName == "" {
			return "", errors.Mark(errors.Newf("empty filter in placeholder %q", expr), ErrMalformedPlaceholder)
		}

		fn, ok := r.filters.Get(filterName)
		if !ok {
			return "", errors.Mark(errors.Newf("filter %q is not registered", filterName), ErrUnknownFilter)
		}
		value = fn(value)
	}

	return value, nil
}

// Reports whether s still contains placeholder syntax.
//
// Used after resolution to reject values that smuggled placeholder syntax
// back in (e.g., via a variable binding); a leftover placeholder is a fatal
// configuration error.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, openDelim)
}
