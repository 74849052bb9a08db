package manifest

import (
	"encoding/json"
	"fmt"
)

// Lock is the derived dependency-lock document: every manifest dependency
// fixed to the pinned package set. It is regenerated by the build graph
// whenever the manifest or the pin changes.
type Lock struct {
	Name         string      `json:"name"`
	Version      string      `json:"version"`
	PackageSet   Pin         `json:"packageSet"`
	Dependencies []LockedDep `json:"dependencies"`
}

// LockedDep is one dependency resolved against the pinned package set.
type LockedDep struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Resolved string `json:"resolved"`
}

// DeriveLock computes the lock document from a manifest and a pin.
// Dependency order follows the manifest declaration order, so the rendered
// lock is stable across runs for identical inputs.
func DeriveLock(m *Manifest, pin *Pin) *Lock {
	lock := &Lock{
		Name:         m.Name,
		Version:      m.Version,
		PackageSet:   *pin,
		Dependencies: make([]LockedDep, 0, len(m.Dependencies)),
	}
	for _, dep := range m.Dependencies {
		lock.Dependencies = append(lock.Dependencies, LockedDep{
			Name:     dep.Name,
			Version:  dep.Version,
			Resolved: fmt.Sprintf("%s#%s@%s", pin.Rev, dep.Name, dep.Version),
		})
	}
	return lock
}

// RenderLock renders the lock document as indented JSON with a trailing
// newline. Field order is fixed by the struct definitions, so repeated
// calls on equal input produce byte-identical text.
func RenderLock(lock *Lock) ([]byte, error) {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render lock: %w", err)
	}
	return append(data, '\n'), nil
}
