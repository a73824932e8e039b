package manifest

import (
	"github.com/cockroachdb/errors"
	"testing"
)

func testTemplate() *LanguageTemplate {
	return &LanguageTemplate{
		DefaultProfile: "debug",
		Profiles: map[string]*Profile{
			"debug":   {Build: []Step{{Command: "make debug"}}},
			"release": {Build: []Step{{Command: "make release"}}},
		},
	}
}

func TestSelectProfileByName(t *testing.T) {
	tmpl := testTemplate()

	p, err := tmpl.SelectProfile("release")
	if err != nil {
		t.Fatalf("SelectProfile: %v", err)
	}
	if p.Build[0].Command != "make release" {
		t.Fatalf("command = %q, want make release", p.Build[0].Command)
	}
}

func TestSelectProfileDefault(t *testing.T) {
	tmpl := testTemplate()

	p, err := tmpl.SelectProfile("")
	if err != nil {
		t.Fatalf("SelectProfile: %v", err)
	}

	// Selecting no profile must be the same as selecting the default by name.
	named, err := tmpl.SelectProfile(tmpl.DefaultProfile)
	if err != nil {
		t.Fatalf("SelectProfile(default): %v", err)
	}
	if p != named {
		t.Fatal("default selection differs from explicit default selection")
	}
}

func TestSelectProfileUnknown(t *testing.T) {
	tmpl := testTemplate()

	_, err := tmpl.SelectProfile("bench")
	if !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("err = %v, want ErrUnknownProfile", err)
	}
}

func TestSelectProfileDanglingDefault(t *testing.T) {
	tmpl := testTemplate()
	tmpl.DefaultProfile = "gone"

	_, err := tmpl.SelectProfile("")
	if !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("err = %v, want ErrInvalidManifest", err)
	}
}

func TestTemplateUnknown(t *testing.T) {
	m := &Manifest{Templates: map[string]*LanguageTemplate{"go": testTemplate()}}

	if _, err := m.Template("go"); err != nil {
		t.Fatalf("Template(go): %v", err)
	}

	_, err := m.Template("zig")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v, want ErrUnknownTemplate", err)
	}
}

func TestCustomCommandUnknown(t *testing.T) {
	p := &Profile{CustomCommands: map[string][]Step{"fmt": {{Command: "gofmt -w ."}}}}

	steps, err := p.CustomCommand("fmt")
	if err != nil {
		t.Fatalf("CustomCommand: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("len(steps) = %d, want 1", len(steps))
	}

	_, err = p.CustomCommand("lint")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}
