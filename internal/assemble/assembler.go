// Package assemble composes an expanded job set with top-level workflow
// metadata into one Workflow document.
package assemble

import (
	"github.com/sourceplane/flowforge/internal/model"
)

// Assemble merges meta with the job set and validates that every job's
// runner is one of the recognized runner identifiers. It is pure and
// deterministic and performs no I/O.
func Assemble(meta model.WorkflowMeta, jobs *model.JobSet) (*model.Workflow, error) {
	if err := jobs.Each(func(job model.Job) error {
		if !model.IsKnownRunner(job.Runner) {
			return &model.ConfigError{Kind: model.UnknownRunner, Ident: string(job.Runner)}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &model.Workflow{
		Name:     meta.Name,
		Triggers: meta.Triggers,
		Env:      meta.Env,
		Jobs:     jobs,
	}, nil
}
