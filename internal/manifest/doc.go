// Package manifest defines the build manifest data model and its loader.
//
// A manifest maps language template identifiers (e.g., "go", "rust") to
// [LanguageTemplate] values. Each template holds a set of named build
// profiles plus a default profile reference. A [Profile] is an ordered
// list of build steps together with the well-known artifact paths of the
// component it produces. String-valued fields may contain template
// placeholders; the manifest is loaded verbatim and resolution happens
// later, once per build invocation.
//
// The loaded manifest is an immutable value. Validation runs at load time
// and reports structural errors with the offending key path, for example:
//
//	templates.go.defaultProfile: references unknown profile "releas"
package manifest
