package graph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sourceplane/flowforge/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// countingProducer returns a producer that records how often it ran.
func countingProducer(content string, runs *int) Producer {
	return func() ([]byte, error) {
		*runs++
		return []byte(content), nil
	}
}

func TestBuildMissingOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.yaml")
	output := filepath.Join(dir, "output.yml")
	writeFile(t, input, "in")

	runs := 0
	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target:  output,
		Inputs:  []string{input},
		Produce: countingProducer("derived", &runs),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	outcomes, err := engine.Build(output)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if runs != 1 {
		t.Errorf("producer ran %d times, want 1", runs)
	}
	if len(outcomes) != 1 || outcomes[0].State != StateFresh {
		t.Errorf("outcomes = %+v, want one fresh target", outcomes)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "derived" {
		t.Errorf("output content = %q, want %q", data, "derived")
	}
}

func TestBuildUpToDateShortCircuit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.yaml")
	output := filepath.Join(dir, "output.yml")
	writeFile(t, input, "in")

	runs := 0
	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target:  output,
		Inputs:  []string{input},
		Produce: countingProducer("derived", &runs),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	if _, err := engine.Build(output); err != nil {
		t.Fatalf("first Build() error: %v", err)
	}

	// Second run with unchanged inputs performs zero producer invocations.
	outcomes, err := engine.Build(output)
	if err != nil {
		t.Fatalf("second Build() error: %v", err)
	}
	if runs != 1 {
		t.Errorf("producer ran %d times across two builds, want 1", runs)
	}
	if outcomes[0].State != StateUpToDate {
		t.Errorf("second build state = %s, want %s", outcomes[0].State, StateUpToDate)
	}
}

func TestBuildStaleOnNewerInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.yaml")
	output := filepath.Join(dir, "output.yml")
	writeFile(t, input, "in")

	runs := 0
	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target:  output,
		Inputs:  []string{input},
		Produce: countingProducer("derived", &runs),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	if _, err := engine.Build(output); err != nil {
		t.Fatalf("first Build() error: %v", err)
	}

	// Touch the input past the output's mtime.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(input, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if _, err := engine.Build(output); err != nil {
		t.Fatalf("second Build() error: %v", err)
	}
	if runs != 2 {
		t.Errorf("producer ran %d times, want 2 (rebuild on newer input)", runs)
	}
}

func TestBuildPhonyAlwaysRuns(t *testing.T) {
	runs := 0
	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target:  "check",
		Phony:   true,
		Produce: countingProducer("", &runs),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	for i := 0; i < 2; i++ {
		outcomes, err := engine.Build("check")
		if err != nil {
			t.Fatalf("Build() #%d error: %v", i+1, err)
		}
		if outcomes[0].State != StateFresh {
			t.Errorf("phony build #%d state = %s, want %s", i+1, outcomes[0].State, StateFresh)
		}
	}
	if runs != 2 {
		t.Errorf("phony producer ran %d times, want 2", runs)
	}

	// Phony targets never leave an on-disk output.
	if _, err := os.Stat("check"); !os.IsNotExist(err) {
		t.Errorf("phony target left an on-disk output (stat err = %v)", err)
	}
}

func TestBuildFailureHaltsDependents(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.yaml")
	derived := filepath.Join(dir, "derived.yml")
	writeFile(t, input, "in")

	// Seed a previous artifact so corruption would be observable.
	writeFile(t, derived, "previous")
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(derived, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	downstreamRuns := 0
	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target: derived,
		Inputs: []string{input},
		Produce: func() ([]byte, error) {
			return nil, fmt.Errorf("producer exploded")
		},
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}
	if err := engine.AddNode(&Node{
		Target:  "all",
		Inputs:  []string{derived},
		Phony:   true,
		Produce: countingProducer("", &downstreamRuns),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	_, err := engine.Build("all")
	var buildErr *model.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Build() error = %v, want BuildError", err)
	}
	if buildErr.Target != derived {
		t.Errorf("BuildError target = %q, want %q", buildErr.Target, derived)
	}
	if downstreamRuns != 0 {
		t.Errorf("dependent ran %d times after failure, want 0", downstreamRuns)
	}
	if engine.State(derived) != StateFailed {
		t.Errorf("failed target state = %s, want %s", engine.State(derived), StateFailed)
	}

	// The previous artifact survives: the write only commits on success.
	data, err := os.ReadFile(derived)
	if err != nil {
		t.Fatalf("read previous artifact: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("previous artifact corrupted: %q", data)
	}

	// No temporary files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "input.yaml" && entry.Name() != "derived.yml" {
			t.Errorf("unexpected leftover file %s", entry.Name())
		}
	}
}

func TestBuildChainsThroughNodes(t *testing.T) {
	dir := t.TempDir()
	leaf := filepath.Join(dir, "leaf.yaml")
	mid := filepath.Join(dir, "mid.yml")
	writeFile(t, leaf, "leaf")

	midRuns, allRuns := 0, 0
	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target:  mid,
		Inputs:  []string{leaf},
		Produce: countingProducer("mid", &midRuns),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}
	if err := engine.AddNode(&Node{
		Target:  "all",
		Inputs:  []string{mid},
		Phony:   true,
		Produce: countingProducer("", &allRuns),
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	outcomes, err := engine.Build("all")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2 (dependency first)", len(outcomes))
	}
	if outcomes[0].Target != mid || outcomes[1].Target != "all" {
		t.Errorf("evaluation order = %v, want dependency before aggregate", outcomes)
	}
	if midRuns != 1 || allRuns != 1 {
		t.Errorf("producer runs mid=%d all=%d, want 1/1", midRuns, allRuns)
	}
}

func TestAddNodeDuplicateOutput(t *testing.T) {
	engine := NewEngine()
	if err := engine.AddNode(&Node{Target: "out.yml"}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	err := engine.AddNode(&Node{Target: "out.yml"})
	var cfgErr *model.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("AddNode() error = %v, want ConfigError", err)
	}
	if cfgErr.Kind != model.DuplicateOutput {
		t.Errorf("ConfigError kind = %q, want %q", cfgErr.Kind, model.DuplicateOutput)
	}
	if cfgErr.Ident != "out.yml" {
		t.Errorf("ConfigError ident = %q, want %q", cfgErr.Ident, "out.yml")
	}
}

func TestBuildUnknownTarget(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.Build("nope"); err == nil {
		t.Error("Build() of unknown target succeeded, want error")
	}
}

func TestBuildCycleDetected(t *testing.T) {
	engine := NewEngine()
	if err := engine.AddNode(&Node{Target: "a", Inputs: []string{"b"}, Phony: true}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}
	if err := engine.AddNode(&Node{Target: "b", Inputs: []string{"a"}, Phony: true}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	if _, err := engine.Build("a"); err == nil {
		t.Error("Build() on a cyclic graph succeeded, want error")
	}
}

func TestBuildMissingLeafInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.yml")
	writeFile(t, output, "previous")

	engine := NewEngine()
	if err := engine.AddNode(&Node{
		Target:  output,
		Inputs:  []string{filepath.Join(dir, "missing.yaml")},
		Produce: func() ([]byte, error) { return []byte("x"), nil },
	}); err != nil {
		t.Fatalf("AddNode(): %v", err)
	}

	_, err := engine.Build(output)
	var buildErr *model.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Build() error = %v, want BuildError", err)
	}
	if buildErr.Target != output {
		t.Errorf("BuildError target = %q, want %q", buildErr.Target, output)
	}
}
