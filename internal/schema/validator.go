// Package schema validates pipeline configuration documents against the
// embedded JSON schema before any model is constructed from them.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed pipeline.schema.yaml
var pipelineSchemaYAML []byte

// Validator handles JSON schema validation of pipeline documents.
type Validator struct {
	pipelineSchema *jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	pipelineSchema, err := compile("pipeline.schema.json", pipelineSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline schema: %w", err)
	}
	return &Validator{pipelineSchema: pipelineSchema}, nil
}

// ValidatePipeline validates a decoded pipeline document against the schema.
func (v *Validator) ValidatePipeline(data interface{}) error {
	if v.pipelineSchema == nil {
		return fmt.Errorf("pipeline schema not loaded")
	}
	return v.pipelineSchema.Validate(data)
}

// compile parses a YAML schema and compiles it for validation.
func compile(uri string, raw []byte) (*jsonschema.Schema, error) {
	// Parse YAML to interface{} (supports both YAML and JSON)
	var schemaData interface{}
	if err := yaml.Unmarshal(raw, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	// Convert to JSON for the schema compiler
	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schema, err := jsonschema.CompileString(uri, string(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return schema, nil
}
