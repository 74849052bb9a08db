package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sourceplane/flowforge/internal/pipeline"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List build-graph targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listTargets()
	},
}

func listTargets() error {
	engine, err := pipeline.NewEngine(graphPaths())
	if err != nil {
		return err
	}

	fmt.Println("Targets:")
	for _, target := range engine.Targets() {
		node, _ := engine.Node(target)
		kind := "file"
		if node.Phony {
			kind = "phony"
		}
		fmt.Printf("  %s (%s)\n", target, kind)
		if len(node.Inputs) > 0 {
			fmt.Printf("    inputs: %s\n", strings.Join(node.Inputs, ", "))
		}
	}
	return nil
}
