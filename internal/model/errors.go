package model

import "fmt"

// ConfigKind classifies configuration errors. All of them are detected
// before any I/O happens.
type ConfigKind string

const (
	// DuplicateKey means two expanded jobs collided on the same key.
	DuplicateKey ConfigKind = "duplicate job key"
	// UnknownRunner means a job named a runner outside the recognized set.
	UnknownRunner ConfigKind = "unknown runner"
	// DuplicateOutput means two build-graph nodes declared the same output path.
	DuplicateOutput ConfigKind = "duplicate output path"
)

// ConfigError is a fatal declaration error, reported with the offending
// identifier (job key, runner name or output path).
type ConfigError struct {
	Kind  ConfigKind
	Ident string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Ident)
}

// SerializeError means a step carries a combination the target format
// cannot express.
type SerializeError struct {
	Step   string
	Reason string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("cannot serialize step %q: %s", e.Step, e.Reason)
}

// BuildError is a producer-rule failure for one build-graph target. It halts
// the target's dependents but never corrupts the previous on-disk artifact.
type BuildError struct {
	Target string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building target %s: %v", e.Target, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
