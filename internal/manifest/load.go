package manifest

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Loads and validates a manifest from the given path.
//
// The document must parse as YAML and pass structural validation. Duplicate
// mapping keys (e.g., two profiles with the same name) are rejected by the
// decoder. The returned manifest is immutable; no later phase mutates it.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading manifest"), ErrInvalidManifest)
	}
	return Parse(data)
}

// Parses and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing manifest"), ErrInvalidManifest)
	}

	if err := m.validate(); err != nil {
		return nil, errors.Mark(err, ErrInvalidManifest)
	}

	return &m, nil
}

// Checks the structural invariants of the manifest.
//
// Errors name the offending key path so that a misconfigured manifest can be
// fixed without reading the loader source.
func (m *Manifest) validate() error {
	if len(m.Templates) == 0 {
		return errors.New("templates: at least one language template is required")
	}

	for id, t := range m.Templates {
		if err := t.validate(); err != nil {
			return errors.Wrapf(err, "templates.%s", id)
		}
	}

	return nil
}

// Checks one language template.
func (t *LanguageTemplate) validate() error {
	if len(t.Profiles) == 0 {
		return errors.New("profiles: at least one profile is required")
	}

	if t.DefaultProfile == "" {
		return errors.New("defaultProfile: required")
	}
	if _, ok := t.Profiles[t.DefaultProfile]; !ok {
		return errors.Newf("defaultProfile: references unknown profile %q", t.DefaultProfile)
	}

	for name, p := range t.Profiles {
		if err := p.validate(); err != nil {
			return errors.Wrapf(err, "profiles.%s", name)
		}
	}

	return nil
}

// Checks one profile and its step lists.
func (p *Profile) validate() error {
	if len(p.Build) == 0 {
		return errors.New("build: at least one build step is required")
	}

	for i, s := range p.Build {
		if err := s.validate(); err != nil {
			return errors.Wrapf(err, "build[%d]", i)
		}
	}

	for name, steps := range p.CustomCommands {
		if len(steps) == 0 {
			return errors.Newf("customCommands.%s: at least one step is required", name)
		}
		for i, s := range steps {
			if err := s.validate(); err != nil {
				return errors.Wrapf(err, "customCommands.%s[%d]", name, i)
			}
		}
	}

	return nil
}

// Checks one step.
func (s *Step) validate() error {
	if s.Command == "" {
		return errors.New("command: required")
	}
	return nil
}
