package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/flowforge/internal/graph"
	"github.com/sourceplane/flowforge/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build <target>",
	Short: "Build one named target, or 'all'",
	Long:  "Evaluate the build graph for the named target. Derived artifacts are regenerated only when a declared input is newer, and published atomically.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildTarget(args[0])
	},
}

func buildTarget(target string) error {
	engine, err := pipeline.NewEngine(graphPaths())
	if err != nil {
		return err
	}

	fmt.Printf("□ Building %s...\n", target)
	outcomes, err := engine.Build(target)
	for _, outcome := range outcomes {
		switch outcome.State {
		case graph.StateUpToDate:
			fmt.Printf("  %s: up to date\n", outcome.Target)
		case graph.StateFresh:
			fmt.Printf("  %s: rebuilt\n", outcome.Target)
		case graph.StateFailed:
			fmt.Printf("  %s: FAILED\n", outcome.Target)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s\n", target)
	return nil
}
