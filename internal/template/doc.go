// Package template substitutes placeholders in manifest strings.
//
// A placeholder names a variable and an optional filter chain:
//
//	{{ component_name }}
//	{{ component_name | to_snake_case }}
//	{{ component_name | to_snake_case | upper }}
//
// Variables are bound per build invocation. Filters are pure string
// transforms composed left-to-right; the built-in set covers the common
// case conversions and callers may register additional filters without
// modifying the resolver.
//
// Resolution is strict: an unbound variable or an unregistered filter is an
// error, never an empty substitution. Strings without placeholder syntax are
// returned unchanged, which makes resolution idempotent.
package template
