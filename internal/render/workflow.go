// Package render serializes a Workflow document to the target wire format.
//
// Output ordering is driven solely by the model's declaration order, never
// by map iteration, so repeated calls on equal input produce byte-identical
// text. The output is committed and diffed as a derived artifact, which
// makes stable serialization a hard requirement.
package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sourceplane/flowforge/internal/model"
)

const headerComment = "Generated by flowforge. Do not edit by hand."

// RenderWorkflow renders the workflow document as YAML.
func RenderWorkflow(wf *model.Workflow) ([]byte, error) {
	root := mapping()
	root.HeadComment = headerComment

	appendPair(root, "name", scalar(wf.Name))
	appendPair(root, "on", triggersNode(wf.Triggers))
	if len(wf.Env) > 0 {
		appendPair(root, "env", paramsNode(wf.Env))
	}

	jobsNode := mapping()
	if err := wf.Jobs.Each(func(job model.Job) error {
		node, err := jobNode(job)
		if err != nil {
			return err
		}
		appendPair(jobsNode, job.Key, node)
		return nil
	}); err != nil {
		return nil, err
	}
	appendPair(root, "jobs", jobsNode)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush workflow encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func triggersNode(triggers []model.Trigger) *yaml.Node {
	node := mapping()
	for _, trigger := range triggers {
		spec := mapping()
		if len(trigger.Branches) > 0 {
			branches := sequence()
			for _, branch := range trigger.Branches {
				branches.Content = append(branches.Content, scalar(branch))
			}
			appendPair(spec, "branches", branches)
		}
		appendPair(node, trigger.Event, spec)
	}
	return node
}

func jobNode(job model.Job) (*yaml.Node, error) {
	node := mapping()
	appendPair(node, "name", scalar(job.DisplayName))
	appendPair(node, "runs-on", scalar(string(job.Runner)))

	steps := sequence()
	for _, step := range job.Steps {
		stepNode, err := renderStep(step)
		if err != nil {
			return nil, err
		}
		steps.Content = append(steps.Content, stepNode)
	}
	appendPair(node, "steps", steps)
	return node, nil
}

func renderStep(step model.Step) (*yaml.Node, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}

	node := mapping()
	appendPair(node, "name", scalar(step.Name))
	if step.Uses != "" {
		appendPair(node, "uses", scalar(step.Uses))
		if len(step.With) > 0 {
			appendPair(node, "with", paramsNode(step.With))
		}
	} else {
		appendPair(node, "run", scalar(step.Run))
	}
	if len(step.Env) > 0 {
		appendPair(node, "env", paramsNode(step.Env))
	}
	return node, nil
}

func paramsNode(params model.Params) *yaml.Node {
	node := mapping()
	for _, kv := range params {
		appendPair(node, kv.Key, scalar(kv.Value))
	}
	return node
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendPair(mapNode *yaml.Node, key string, value *yaml.Node) {
	mapNode.Content = append(mapNode.Content, scalar(key), value)
}
