// Package manifest models the build-graph's leaf inputs: the package
// manifest and the pinned package-set descriptor, plus the dependency-lock
// document derived from them.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the package/dependency declaration consumed read-only by the
// build graph. Any change to it invalidates every derived artifact that
// declares it as an input.
type Manifest struct {
	Name         string       `yaml:"name" json:"name"`
	Version      string       `yaml:"version" json:"version"`
	Dependencies []Dependency `yaml:"dependencies" json:"dependencies"`
}

// Dependency is one declared package dependency.
type Dependency struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Load reads and parses a manifest YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("manifest must have a name")
	}
	if m.Version == "" {
		return nil, fmt.Errorf("manifest %s must have a version", m.Name)
	}
	for _, dep := range m.Dependencies {
		if dep.Name == "" {
			return nil, fmt.Errorf("manifest %s has a dependency without a name", m.Name)
		}
	}

	return &m, nil
}
