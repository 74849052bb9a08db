package matrix

import (
	"fmt"

	"github.com/sourceplane/flowforge/internal/model"
)

// StepFactory produces the ordered step sequence of a job for one runner.
// Factories must be pure: the same runner always yields identical steps.
type StepFactory func(model.Runner) []model.Step

// Template is a parameterized job template, instantiated once per runner
// by Expand.
type Template struct {
	Name        string
	DisplayName string
	Factory     StepFactory
}

// JobKey derives the unique job key for a (template, runner) pair.
func JobKey(template string, runner model.Runner) string {
	return fmt.Sprintf("%s-%s", template, runner)
}

// Expand instantiates each template once per runner and returns the
// resulting job set in declaration order (templates outer, runners inner).
//
// Keys are derived with JobKey, so they are unique whenever template names
// and runner identifiers are themselves distinct. The duplicate check is
// defensive: it catches colliding declarations before any I/O happens.
// Expand has no side effects and returns a fresh JobSet on every call.
func Expand(templates []Template, runners []model.Runner) (*model.JobSet, error) {
	jobs := model.NewJobSet()

	for _, tmpl := range templates {
		for _, runner := range runners {
			job := model.Job{
				Key:         JobKey(tmpl.Name, runner),
				DisplayName: displayName(tmpl, runner),
				Runner:      runner,
				Steps:       tmpl.Factory(runner),
			}
			if err := jobs.Add(job); err != nil {
				return nil, err
			}
		}
	}

	return jobs, nil
}

func displayName(tmpl Template, runner model.Runner) string {
	name := tmpl.DisplayName
	if name == "" {
		name = tmpl.Name
	}
	return fmt.Sprintf("%s (%s)", name, runner)
}
