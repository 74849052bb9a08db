package model

import "fmt"

// Param is one key/value entry of a step's parameter block.
// Parameters are kept as a slice, not a map, so declaration order survives
// all the way to the serialized document.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered string→string mapping.
type Params []Param

// Get returns the value for key and whether it is present.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Step is a single execution unit within a job. Exactly one of Uses
// (an action reference) or Run (an inline script) must be set.
type Step struct {
	Name string
	Uses string
	Run  string
	With Params
	Env  Params
}

// UsesStep constructs an action-reference step.
func UsesStep(name, uses string, with ...Param) Step {
	return Step{Name: name, Uses: uses, With: with}
}

// RunStep constructs an inline-script step.
func RunStep(name, run string) Step {
	return Step{Name: name, Run: run}
}

// Validate checks the uses/run invariant.
func (s Step) Validate() error {
	switch {
	case s.Uses == "" && s.Run == "":
		return &SerializeError{Step: s.Name, Reason: "step has neither an action reference nor an inline script"}
	case s.Uses != "" && s.Run != "":
		return &SerializeError{Step: s.Name, Reason: "step has both an action reference and an inline script"}
	case s.Run != "" && len(s.With) > 0:
		return &SerializeError{Step: s.Name, Reason: "inline-script step cannot carry a parameter block"}
	}
	return nil
}

func (s Step) String() string {
	if s.Uses != "" {
		return fmt.Sprintf("%s (uses %s)", s.Name, s.Uses)
	}
	return fmt.Sprintf("%s (run)", s.Name)
}
