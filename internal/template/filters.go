package template

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// A pure string transform applied to a resolved variable value.
type Filter func(string) string

// Registry of named filters.
//
// The registry is populated before resolution starts and read-only
// afterwards; it is not safe for concurrent registration.
type Filters struct {
	byName map[string]Filter
}

// Creates a registry holding the built-in filters.
//
// Built-ins: to_kebab_case, to_snake_case, to_camel_case, to_pascal_case,
// to_screaming_snake_case, upper, lower.
func NewFilters() *Filters {
	f := &Filters{byName: make(map[string]Filter)}

	f.Register("to_kebab_case", strcase.ToKebab)
	f.Register("to_snake_case", strcase.ToSnake)
	f.Register("to_camel_case", strcase.ToLowerCamel)
	f.Register("to_pascal_case", strcase.ToCamel)
	f.Register("to_screaming_snake_case", strcase.ToScreamingSnake)
	f.Register("upper", strings.ToUpper)
	f.Register("lower", strings.ToLower)

	return f
}

// Registers a filter under the given name, replacing any existing filter
// with that name.
func (f *Filters) Register(name string, fn Filter) {
	f.byName[name] = fn
}

// Looks up a filter by name.
func (f *Filters) Get(name string) (Filter, bool) {
	fn, ok := f.byName[name]
	return fn, ok
}
