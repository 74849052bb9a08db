package graph

// State is the evaluation state of a build-graph node. A node moves
// Unevaluated → Stale → Building → Fresh, or straight to UpToDate when no
// declared input is newer than the existing output. A failed producer
// leaves the node Failed and its dependents are never attempted.
type State int

const (
	StateUnevaluated State = iota
	StateStale
	StateBuilding
	StateFresh
	StateUpToDate
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnevaluated:
		return "unevaluated"
	case StateStale:
		return "stale"
	case StateBuilding:
		return "building"
	case StateFresh:
		return "fresh"
	case StateUpToDate:
		return "up-to-date"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Producer computes the content of a derived artifact. The engine owns the
// write: producers return bytes and never touch the target path themselves.
type Producer func() ([]byte, error)

// Node declares one build-graph target: an output path, the rule producing
// it and the ordered set of declared inputs. Inputs may name leaf files or
// other nodes' targets.
//
// Phony nodes are aggregate targets with no on-disk output; they always
// re-run and never short-circuit via the up-to-date path. A phony node may
// have a nil Producer, in which case it only forces its inputs.
type Node struct {
	Target  string
	Inputs  []string
	Phony   bool
	Produce Producer
}
