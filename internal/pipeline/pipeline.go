// Package pipeline composes the loader, matrix expander, assembler and
// serializer into producers, and wires them into the standard build graph.
package pipeline

import (
	"fmt"

	"github.com/sourceplane/flowforge/internal/assemble"
	"github.com/sourceplane/flowforge/internal/graph"
	"github.com/sourceplane/flowforge/internal/loader"
	"github.com/sourceplane/flowforge/internal/manifest"
	"github.com/sourceplane/flowforge/internal/matrix"
	"github.com/sourceplane/flowforge/internal/model"
	"github.com/sourceplane/flowforge/internal/render"
)

// AllTarget is the phony aggregate target building every derived artifact.
const AllTarget = "all"

// Paths names the leaf inputs and derived outputs of the standard graph.
type Paths struct {
	Pipeline string
	Manifest string
	Pin      string

	Workflow string
	Lock     string
}

// ExpandJobs loads the pipeline config and returns the assembled workflow.
func ExpandJobs(pipelinePath string) (*model.Workflow, error) {
	cfg, err := loader.LoadPipeline(pipelinePath)
	if err != nil {
		return nil, err
	}

	templates, err := cfg.Templates()
	if err != nil {
		return nil, err
	}

	jobs, err := matrix.Expand(templates, cfg.RunnerList())
	if err != nil {
		return nil, err
	}

	return assemble.Assemble(cfg.Meta(), jobs)
}

// GenerateWorkflow runs the full configuration-compilation pipeline:
// load → expand → assemble → render.
func GenerateWorkflow(pipelinePath string) ([]byte, error) {
	wf, err := ExpandJobs(pipelinePath)
	if err != nil {
		return nil, err
	}
	return render.RenderWorkflow(wf)
}

// GenerateLock derives the dependency-lock document from the manifest and
// the pinned package-set descriptor.
func GenerateLock(manifestPath, pinPath string) ([]byte, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	pin, err := manifest.LoadPin(pinPath)
	if err != nil {
		return nil, err
	}
	return manifest.RenderLock(manifest.DeriveLock(m, pin))
}

// NewEngine declares the standard build graph over paths:
//
//	pipeline.yaml, manifest.yaml, pin.json → ci.yml
//	manifest.yaml, pin.json               → deps.lock
//	ci.yml, deps.lock                     → all (phony)
func NewEngine(paths Paths) (*graph.Engine, error) {
	engine := graph.NewEngine()

	workflowNode := &graph.Node{
		Target: paths.Workflow,
		Inputs: []string{paths.Pipeline, paths.Manifest, paths.Pin},
		Produce: func() ([]byte, error) {
			return GenerateWorkflow(paths.Pipeline)
		},
	}
	if err := engine.AddNode(workflowNode); err != nil {
		return nil, err
	}

	lockNode := &graph.Node{
		Target: paths.Lock,
		Inputs: []string{paths.Manifest, paths.Pin},
		Produce: func() ([]byte, error) {
			return GenerateLock(paths.Manifest, paths.Pin)
		},
	}
	if err := engine.AddNode(lockNode); err != nil {
		return nil, err
	}

	allNode := &graph.Node{
		Target: AllTarget,
		Inputs: []string{paths.Workflow, paths.Lock},
		Phony:  true,
	}
	if err := engine.AddNode(allNode); err != nil {
		return nil, fmt.Errorf("failed to declare aggregate target: %w", err)
	}

	return engine, nil
}
