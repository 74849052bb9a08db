// Package graph is a small dependency-graph executor over leaf file →
// derived file edges. It recomputes a derived artifact only when a declared
// input is newer than the existing output, writes atomically, and exposes
// named top-level targets to the CLI.
package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sourceplane/flowforge/internal/logger"
	"github.com/sourceplane/flowforge/internal/model"
)

// Engine evaluates build-graph nodes in topological order, one target at a
// time. Evaluation is single-threaded and synchronous: a producer is a
// blocking call and dependents are only considered after it completes.
type Engine struct {
	nodes  map[string]*Node
	order  []string
	states map[string]State
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{
		nodes:  make(map[string]*Node),
		states: make(map[string]State),
	}
}

// AddNode registers a node. Two nodes must never declare the same output
// path; the engine fails fast on a duplicate to prevent a write race from a
// future concurrent scheduler.
func (e *Engine) AddNode(node *Node) error {
	if _, exists := e.nodes[node.Target]; exists {
		return &model.ConfigError{Kind: model.DuplicateOutput, Ident: node.Target}
	}
	e.nodes[node.Target] = node
	e.order = append(e.order, node.Target)
	e.states[node.Target] = StateUnevaluated
	return nil
}

// Targets returns the declared target names in declaration order.
func (e *Engine) Targets() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Node returns the node for a target name.
func (e *Engine) Node(target string) (*Node, bool) {
	node, ok := e.nodes[target]
	return node, ok
}

// State returns the current evaluation state of a target.
func (e *Engine) State(target string) State {
	return e.states[target]
}

// Outcome reports what happened to one target during a Build call.
type Outcome struct {
	Target string
	State  State
}

// Build evaluates the named target and everything it depends on. It returns
// the per-target outcomes in evaluation order, and an error carrying the
// failing target's identity if a producer fails. A failure halts the failing
// target's dependents; targets already published stay published.
func (e *Engine) Build(target string) ([]Outcome, error) {
	if _, ok := e.nodes[target]; !ok {
		return nil, fmt.Errorf("unknown target: %s", target)
	}

	order, err := e.dependencyOrder(target)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(order))
	for _, name := range order {
		if err := e.evaluate(e.nodes[name]); err != nil {
			outcomes = append(outcomes, Outcome{Target: name, State: e.states[name]})
			return outcomes, err
		}
		outcomes = append(outcomes, Outcome{Target: name, State: e.states[name]})
	}
	return outcomes, nil
}

// dependencyOrder returns the transitive node dependencies of target in
// topological order (dependencies first), using DFS with an in-progress set
// for cycle detection.
func (e *Engine) dependencyOrder(target string) ([]string, error) {
	visited := make(map[string]bool)
	inProgress := make(map[string]bool)
	var order []string

	var visit func(name string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if inProgress[name] {
			return fmt.Errorf("cycle detected in build graph at target %s", name)
		}
		inProgress[name] = true

		node := e.nodes[name]
		for _, input := range node.Inputs {
			// Inputs naming another node are edges; everything else
			// is a leaf file.
			if _, isNode := e.nodes[input]; isNode {
				if err := visit(input); err != nil {
					return err
				}
			}
		}

		inProgress[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	if err := visit(target); err != nil {
		return nil, err
	}
	return order, nil
}

// evaluate brings one node up to date.
func (e *Engine) evaluate(node *Node) error {
	stale, err := e.isStale(node)
	if err != nil {
		e.states[node.Target] = StateFailed
		return &model.BuildError{Target: node.Target, Err: err}
	}

	if !stale {
		e.states[node.Target] = StateUpToDate
		logger.Log.Debugw("target up to date", "target", node.Target)
		return nil
	}

	e.states[node.Target] = StateStale
	logger.Log.Debugw("target stale", "target", node.Target)

	e.states[node.Target] = StateBuilding
	if node.Produce == nil {
		// Phony aggregate with no rule of its own.
		e.states[node.Target] = StateFresh
		return nil
	}

	content, err := node.Produce()
	if err != nil {
		e.states[node.Target] = StateFailed
		return &model.BuildError{Target: node.Target, Err: err}
	}

	if !node.Phony {
		if err := publish(node.Target, content); err != nil {
			e.states[node.Target] = StateFailed
			return &model.BuildError{Target: node.Target, Err: err}
		}
		logger.Log.Debugw("target published", "target", node.Target, "bytes", len(content))
	}

	e.states[node.Target] = StateFresh
	return nil
}

// isStale applies the freshness rule: a target is stale if it is phony, has
// no prior output, or any declared input's modification time is newer than
// the output's.
func (e *Engine) isStale(node *Node) (bool, error) {
	if node.Phony {
		return true, nil
	}

	outInfo, err := os.Stat(node.Target)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat output %s: %w", node.Target, err)
	}

	outTime := outInfo.ModTime()
	for _, input := range node.Inputs {
		newer, err := e.inputNewerThan(input, outTime)
		if err != nil {
			return false, err
		}
		if newer {
			return true, nil
		}
	}
	return false, nil
}

func (e *Engine) inputNewerThan(input string, outTime time.Time) (bool, error) {
	if dep, isNode := e.nodes[input]; isNode && dep.Phony {
		// A phony dependency has no on-disk output to compare against;
		// depending on one forces a rebuild.
		return true, nil
	}
	info, err := os.Stat(input)
	if err != nil {
		return false, fmt.Errorf("failed to stat input %s: %w", input, err)
	}
	return info.ModTime().After(outTime), nil
}

// publish writes content to a temporary file next to the target and renames
// it into place, so a concurrent reader never observes a partially written
// artifact and a failed build never corrupts the previous one.
func publish(target string, content []byte) error {
	dir := filepath.Dir(target)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary output: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temporary output: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to publish output: %w", err)
	}
	return nil
}
