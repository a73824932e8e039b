package build

import (
	"github.com/cockroachdb/errors"
	"testing"

	"github.com/chiselhq/witbuild/internal/manifest"
	"github.com/chiselhq/witbuild/internal/template"
)

func TestResolveProfile(t *testing.T) {
	profile := &manifest.Profile{
		SourceWit:     "wit",
		GeneratedWit:  "wit-generated",
		ComponentWasm: "target/{{ component_name | to_kebab_case }}.wasm",
		LinkedWasm:    "target/{{ component_name | to_kebab_case }}-linked.wasm",
		Build: []manifest.Step{{
			Command: "compose {{ component_name }}",
			Rmdirs:  []string{"binding"},
			Mkdirs:  []string{"binding"},
			Sources: []string{"wit-generated"},
			Targets: []string{"target/{{ component_name | to_kebab_case }}.wasm"},
		}},
		CustomCommands: map[string][]manifest.Step{
			"fmt": {{Command: "fmt {{ component_name | to_snake_case }}"}},
		},
		Clean: []string{"target"},
	}

	r := template.NewResolver(map[string]string{"component_name": "ShoppingCart"}, nil)

	resolved, err := resolveProfile(profile, r)
	if err != nil {
		t.Fatalf("resolveProfile: %v", err)
	}

	if resolved.ComponentWasm != "target/shopping-cart.wasm" {
		t.Fatalf("componentWasm = %q", resolved.ComponentWasm)
	}
	if resolved.Build[0].Command != "compose ShoppingCart" {
		t.Fatalf("command = %q", resolved.Build[0].Command)
	}
	if resolved.Build[0].Targets[0] != "target/shopping-cart.wasm" {
		t.Fatalf("target = %q", resolved.Build[0].Targets[0])
	}
	if resolved.CustomCommands["fmt"][0].Command != "fmt shopping_cart" {
		t.Fatalf("custom command = %q", resolved.CustomCommands["fmt"][0].Command)
	}

	// The manifest value itself must stay untouched.
	if profile.ComponentWasm != "target/{{ component_name | to_kebab_case }}.wasm" {
		t.Fatal("input profile was mutated")
	}
}

func TestResolveProfileUnboundVariable(t *testing.T) {
	profile := &manifest.Profile{
		Build: []manifest.Step{{Command: "compose {{ component_name }}"}},
	}

	_, err := resolveProfile(profile, template.NewResolver(nil, nil))
	if !errors.Is(err, template.ErrUnresolvedVariable) {
		t.Fatalf("err = %v, want ErrUnresolvedVariable", err)
	}
}

func TestResolveProfileRejectsSmuggledPlaceholders(t *testing.T) {
	profile := &manifest.Profile{
		Build: []manifest.Step{{Command: "compose {{ component_name }}"}},
	}

	r := template.NewResolver(map[string]string{"component_name": "{{ oops }}"}, nil)

	_, err := resolveProfile(profile, r)
	if !errors.Is(err, template.ErrUnresolvedVariable) {
		t.Fatalf("err = %v, want ErrUnresolvedVariable for leftover placeholder", err)
	}
}
