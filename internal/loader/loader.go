// Package loader reads the pipeline configuration file and turns it into
// model inputs for the matrix expander and workflow assembler.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sourceplane/flowforge/internal/kinds"
	"github.com/sourceplane/flowforge/internal/matrix"
	"github.com/sourceplane/flowforge/internal/model"
	"github.com/sourceplane/flowforge/internal/schema"
)

// Pipeline is the declarative pipeline configuration: workflow metadata
// plus the kinds × runners matrix to expand. It replaces the ambient
// globals of earlier revisions with explicit configuration, so the
// expander can be tested in isolation with synthetic inputs.
type Pipeline struct {
	Name    string        `yaml:"name" json:"name"`
	Kinds   []string      `yaml:"kinds" json:"kinds"`
	Runners []string      `yaml:"runners" json:"runners"`
	On      []TriggerSpec `yaml:"on" json:"on"`
	Env     []EnvVar      `yaml:"env" json:"env"`
}

// TriggerSpec declares one workflow trigger.
type TriggerSpec struct {
	Event    string   `yaml:"event" json:"event"`
	Branches []string `yaml:"branches,omitempty" json:"branches,omitempty"`
}

// EnvVar is one global environment entry, declared as a list so the
// declaration order survives into the generated document.
type EnvVar struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// LoadPipeline loads, schema-validates and parses a pipeline YAML file.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}

	// Validate the raw document first so schema errors point at the file,
	// not at a half-populated struct.
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline YAML: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePipeline(raw); err != nil {
		return nil, fmt.Errorf("pipeline %s failed schema validation: %w", path, err)
	}

	var pipeline Pipeline
	if err := yaml.Unmarshal(data, &pipeline); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline YAML: %w", err)
	}

	return &pipeline, nil
}

// Meta converts the pipeline's metadata into WorkflowMeta.
func (p *Pipeline) Meta() model.WorkflowMeta {
	meta := model.WorkflowMeta{Name: p.Name}
	for _, spec := range p.On {
		meta.Triggers = append(meta.Triggers, model.Trigger{
			Event:    spec.Event,
			Branches: spec.Branches,
		})
	}
	for _, env := range p.Env {
		meta.Env = append(meta.Env, model.Param{Key: env.Name, Value: env.Value})
	}
	return meta
}

// Templates resolves the declared kind names to built-in templates.
func (p *Pipeline) Templates() ([]matrix.Template, error) {
	templates := make([]matrix.Template, 0, len(p.Kinds))
	for _, name := range p.Kinds {
		tmpl, err := kinds.ByName(name)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// RunnerList returns the declared runners as model identifiers. Unknown
// runners survive here on purpose; the assembler is the validation point.
func (p *Pipeline) RunnerList() []model.Runner {
	runners := make([]model.Runner, 0, len(p.Runners))
	for _, r := range p.Runners {
		runners = append(runners, model.Runner(r))
	}
	return runners
}
