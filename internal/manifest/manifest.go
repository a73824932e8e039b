package manifest

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Top-level build manifest, mapping language template identifiers to their
// templates.
type Manifest struct {
	Templates map[string]*LanguageTemplate `yaml:"templates"`
}

// Describes the build profiles of one language template.
type LanguageTemplate struct {
	DefaultProfile string              `yaml:"defaultProfile"` // Profile used when none is named.
	Profiles       map[string]*Profile `yaml:"profiles"`
}

// A named build recipe for a language template.
//
// The four artifact paths describe the well-known locations of the
// component's inputs and outputs. They are template strings until resolved.
type Profile struct {
	SourceWit     string `yaml:"sourceWit"`     // Directory holding the authored WIT interfaces.
	GeneratedWit  string `yaml:"generatedWit"`  // Directory receiving the augmented WIT package.
	ComponentWasm string `yaml:"componentWasm"` // Path of the compiled component.
	LinkedWasm    string `yaml:"linkedWasm"`    // Path of the final linked component.

	Build []Step `yaml:"build"` // Steps executed in declaration order.

	CustomCommands map[string][]Step `yaml:"customCommands"` // Named step lists invocable on demand.
	Clean          []string          `yaml:"clean"`          // Extra paths removed by the clean operation.
}

// One unit of build work: an external command plus its declared filesystem
// effects.
type Step struct {
	Command string `yaml:"command"` // External program invocation, run through the shell.
	Dir     string `yaml:"dir"`     // Working directory override, relative to the template root.

	Rmdirs []string `yaml:"rmdirs"` // Directories removed before the command runs.
	Mkdirs []string `yaml:"mkdirs"` // Directories created after the removals.

	Sources []string `yaml:"sources"` // Paths read by the command, compared for staleness.
	Targets []string `yaml:"targets"` // Paths produced by the command, compared for staleness.
}

// Implements fmt.Stringer for debug logging.
func (s Step) String() string {
	return fmt.Sprintf("Step(%q, sources: %v, targets: %v)", s.Command, s.Sources, s.Targets)
}

// Returns the language template with the given identifier.
func (m *Manifest) Template(id string) (*LanguageTemplate, error) {
	t, ok := m.Templates[id]
	if !ok {
		return nil, errors.Mark(errors.Newf("template %q is not defined in the manifest", id), ErrUnknownTemplate)
	}
	return t, nil
}

// Selects a profile by name, or the template's default profile when name is
// empty.
//
// A named profile that does not exist fails with [ErrUnknownProfile]. A
// dangling default reference fails with [ErrInvalidManifest]; load-time
// validation normally rejects such manifests before selection is reached.
// The returned profile is a read-only view; callers must not mutate it.
func (t *LanguageTemplate) SelectProfile(name string) (*Profile, error) {
	if name == "" {
		p, ok := t.Profiles[t.DefaultProfile]
		if !ok {
			return nil, errors.Mark(errors.Newf("default profile %q does not exist", t.DefaultProfile), ErrInvalidManifest)
		}
		return p, nil
	}

	p, ok := t.Profiles[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("profile %q does not exist", name), ErrUnknownProfile)
	}
	return p, nil
}

// Returns the steps of the named custom command.
func (p *Profile) CustomCommand(name string) ([]Step, error) {
	steps, ok := p.CustomCommands[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("custom command %q is not defined for this profile", name), ErrUnknownCommand)
	}
	return steps, nil
}
