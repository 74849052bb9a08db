package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/flowforge/internal/config"
	"github.com/sourceplane/flowforge/internal/loader"
	"github.com/sourceplane/flowforge/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the pipeline config, manifest and pin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateInputs()
	},
}

func validateInputs() error {
	fmt.Println("□ Validating pipeline...")
	if _, err := loader.LoadPipeline(config.Instance.PipelineFile); err != nil {
		return err
	}
	fmt.Println("✓ Pipeline is valid")

	fmt.Println("□ Validating manifest...")
	if _, err := manifest.Load(config.Instance.ManifestFile); err != nil {
		return err
	}
	fmt.Println("✓ Manifest is valid")

	fmt.Println("□ Validating pin...")
	if _, err := manifest.LoadPin(config.Instance.PinFile); err != nil {
		return err
	}
	fmt.Println("✓ Pin is valid")

	fmt.Println("✓ All validation passed")
	return nil
}
