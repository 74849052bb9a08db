package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/flowforge/internal/config"
	"github.com/sourceplane/flowforge/internal/model"
	"github.com/sourceplane/flowforge/internal/pipeline"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the expanded job matrix",
	Long:  "Expand the configured kinds × runners matrix and list the resulting jobs. Use --long to include steps.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listJobs()
	},
}

func listJobs() error {
	wf, err := pipeline.ExpandJobs(config.Instance.PipelineFile)
	if err != nil {
		return fmt.Errorf("failed to expand jobs: %w", err)
	}

	fmt.Printf("Workflow: %s (%d jobs)\n", wf.Name, wf.Jobs.Len())
	return wf.Jobs.Each(func(job model.Job) error {
		fmt.Printf("  %s\n", job)
		if longFormat {
			for _, step := range job.Steps {
				fmt.Printf("    - %s\n", step)
			}
		}
		return nil
	})
}
