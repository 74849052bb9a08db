package kinds

import (
	"reflect"
	"testing"

	"github.com/sourceplane/flowforge/internal/model"
)

func TestBuiltinFactoriesArePure(t *testing.T) {
	for _, tmpl := range Builtin() {
		for _, runner := range model.KnownRunners() {
			first := tmpl.Factory(runner)
			second := tmpl.Factory(runner)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("kind %s factory not pure for runner %s", tmpl.Name, runner)
			}
			if len(first) == 0 {
				t.Errorf("kind %s yields no steps for runner %s", tmpl.Name, runner)
			}
			for _, step := range first {
				if err := step.Validate(); err != nil {
					t.Errorf("kind %s runner %s: %v", tmpl.Name, runner, err)
				}
			}
		}
	}
}

func TestSetupStepBranchesOnRunner(t *testing.T) {
	ubuntu := setupEnvStep(model.RunnerUbuntu)
	macos := setupEnvStep(model.RunnerMacOS)

	if v, _ := ubuntu.With.Get("extra_nix_config"); v != "sandbox = true" {
		t.Errorf("ubuntu sandbox config = %q, want enabled", v)
	}
	if v, _ := macos.With.Get("extra_nix_config"); v != "sandbox = false" {
		t.Errorf("macos sandbox config = %q, want disabled", v)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		tmpl, err := ByName(name)
		if err != nil {
			t.Errorf("ByName(%q) error: %v", name, err)
		}
		if tmpl.Name != name {
			t.Errorf("ByName(%q) returned template %q", name, tmpl.Name)
		}
	}

	if _, err := ByName("fortran"); err == nil {
		t.Error("ByName of unknown kind succeeded, want error")
	}
}
