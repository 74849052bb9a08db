package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sourceplane/flowforge/internal/config"
	"github.com/sourceplane/flowforge/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the workflow pipeline directly",
	Long:  "Compile the pipeline configuration into a workflow document, bypassing the build graph. Writes to stdout unless --output is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateWorkflow()
	},
}

func generateWorkflow() error {
	text, err := pipeline.GenerateWorkflow(config.Instance.PipelineFile)
	if err != nil {
		return fmt.Errorf("failed to generate workflow: %w", err)
	}

	if outputFile == "" {
		_, err := os.Stdout.Write(text)
		return err
	}

	if err := os.WriteFile(outputFile, text, 0644); err != nil {
		return fmt.Errorf("failed to write workflow to %s: %w", outputFile, err)
	}
	fmt.Printf("✓ Workflow written to %s\n", outputFile)
	return nil
}
