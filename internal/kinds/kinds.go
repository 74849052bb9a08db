// Package kinds defines the built-in build kinds the workflow matrix is
// expanded from. Each kind is a pure step factory that may branch on the
// runner identity, e.g. to emit a platform-specific environment setup step.
package kinds

import (
	"fmt"

	"github.com/sourceplane/flowforge/internal/matrix"
	"github.com/sourceplane/flowforge/internal/model"
)

// Builtin returns the built-in build kind templates in declaration order.
func Builtin() []matrix.Template {
	return []matrix.Template{
		{Name: "rust", DisplayName: "Rust checks", Factory: rustSteps},
		{Name: "nix-build", DisplayName: "Package build", Factory: nixBuildSteps},
		{Name: "lint", DisplayName: "Lint", Factory: lintSteps},
	}
}

// ByName returns the built-in template with the given name.
func ByName(name string) (matrix.Template, error) {
	for _, tmpl := range Builtin() {
		if tmpl.Name == name {
			return tmpl, nil
		}
	}
	return matrix.Template{}, fmt.Errorf("unknown build kind: %s", name)
}

// Names returns the built-in kind names in declaration order.
func Names() []string {
	builtin := Builtin()
	names := make([]string, len(builtin))
	for i, tmpl := range builtin {
		names[i] = tmpl.Name
	}
	return names
}

func checkoutStep() model.Step {
	return model.UsesStep("Checkout", "actions/checkout@v4")
}

// setupEnvStep installs the pinned build environment. The sandbox is
// unsupported on darwin runners, so the installer is configured per platform.
func setupEnvStep(runner model.Runner) model.Step {
	sandbox := "true"
	if runner == model.RunnerMacOS {
		sandbox = "false"
	}
	return model.UsesStep("Install environment", "cachix/install-nix-action@v27",
		model.Param{Key: "nix_path", Value: "nixpkgs=./pin.json"},
		model.Param{Key: "extra_nix_config", Value: "sandbox = " + sandbox},
	)
}

func rustSteps(runner model.Runner) []model.Step {
	return []model.Step{
		checkoutStep(),
		setupEnvStep(runner),
		model.RunStep("Test", "nix-shell --run 'cargo test'"),
		model.RunStep("Format", "nix-shell --run 'cargo fmt -- --check'"),
		model.RunStep("Clippy", "nix-shell --run 'cargo clippy -- -D warnings'"),
	}
}

func nixBuildSteps(runner model.Runner) []model.Step {
	return []model.Step{
		checkoutStep(),
		setupEnvStep(runner),
		model.RunStep("Build", "nix-build"),
	}
}

func lintSteps(runner model.Runner) []model.Step {
	return []model.Step{
		checkoutStep(),
		setupEnvStep(runner),
		model.RunStep("Shellcheck", "nix-shell --run 'shellcheck $(find . -name \"*.sh\")'"),
	}
}
