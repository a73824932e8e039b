package manifest

import (
	"github.com/cockroachdb/errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validManifest = `
templates:
  go:
    defaultProfile: debug
    profiles:
      debug:
        sourceWit: wit
        generatedWit: wit-generated
        componentWasm: 'target/{{ component_name }}.wasm'
        linkedWasm: 'target/{{ component_name }}-linked.wasm'
        build:
          - command: wit-bindgen tiny-go ./wit-generated --out-dir binding
            rmdirs: [binding]
            mkdirs: [binding]
            sources: [wit-generated]
            targets: [binding]
          - command: tinygo build -target=wasip1 -o target/component.wasm main.go
            sources: [binding, main.go]
            targets: [target/component.wasm]
        customCommands:
          fmt:
            - command: gofmt -w .
        clean: [target]
      release:
        build:
          - command: tinygo build -target=wasip1 -opt=2 -o target/component.wasm main.go
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "witbuild.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tmpl, err := m.Template("go")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if tmpl.DefaultProfile != "debug" {
		t.Fatalf("defaultProfile = %q, want debug", tmpl.DefaultProfile)
	}
	if len(tmpl.Profiles) != 2 {
		t.Fatalf("len(profiles) = %d, want 2", len(tmpl.Profiles))
	}

	debug := tmpl.Profiles["debug"]
	if len(debug.Build) != 2 {
		t.Fatalf("len(build) = %d, want 2", len(debug.Build))
	}
	if debug.Build[0].Command != "wit-bindgen tiny-go ./wit-generated --out-dir binding" {
		t.Fatalf("unexpected first command %q", debug.Build[0].Command)
	}
	if len(debug.Build[0].Rmdirs) != 1 || debug.Build[0].Rmdirs[0] != "binding" {
		t.Fatalf("rmdirs = %v, want [binding]", debug.Build[0].Rmdirs)
	}
	if debug.SourceWit != "wit" || debug.GeneratedWit != "wit-generated" {
		t.Fatalf("wit paths = %q/%q", debug.SourceWit, debug.GeneratedWit)
	}
	if len(debug.CustomCommands["fmt"]) != 1 {
		t.Fatalf("customCommands.fmt = %v", debug.CustomCommands["fmt"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("err = %v, want ErrInvalidManifest", err)
	}
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		keyPath string
	}{
		{
			name:    "no templates",
			doc:     `templates: {}`,
			keyPath: "templates",
		},
		{
			name: "missing default profile",
			doc: `
templates:
  go:
    profiles:
      debug:
        build:
          - command: true
`,
			keyPath: "templates.go",
		},
		{
			name: "dangling default profile",
			doc: `
templates:
  go:
    defaultProfile: releas
    profiles:
      debug:
        build:
          - command: true
`,
			keyPath: `defaultProfile: references unknown profile "releas"`,
		},
		{
			name: "no profiles",
			doc: `
templates:
  go:
    defaultProfile: debug
    profiles: {}
`,
			keyPath: "profiles",
		},
		{
			name: "empty build",
			doc: `
templates:
  go:
    defaultProfile: debug
    profiles:
      debug:
        build: []
`,
			keyPath: "profiles.debug",
		},
		{
			name: "step without command",
			doc: `
templates:
  go:
    defaultProfile: debug
    profiles:
      debug:
        build:
          - sources: [wit]
`,
			keyPath: "build[0]",
		},
		{
			name: "empty custom command",
			doc: `
templates:
  go:
    defaultProfile: debug
    profiles:
      debug:
        build:
          - command: true
        customCommands:
          fmt: []
`,
			keyPath: "customCommands.fmt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidManifest) {
				t.Fatalf("err = %v, want ErrInvalidManifest", err)
			}
			if !strings.Contains(err.Error(), tt.keyPath) {
				t.Fatalf("error %q does not mention %q", err, tt.keyPath)
			}
		})
	}
}

func TestParseDuplicateProfileNames(t *testing.T) {
	doc := `
templates:
  go:
    defaultProfile: debug
    profiles:
      debug:
        build:
          - command: first
      debug:
        build:
          - command: second
`
	_, err := Parse([]byte(doc))
	if !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("err = %v, want ErrInvalidManifest", err)
	}
}
