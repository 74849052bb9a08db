package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sourceplane/flowforge/internal/config"
	"github.com/sourceplane/flowforge/internal/logger"
	"github.com/sourceplane/flowforge/internal/pipeline"
)

var (
	cfgFile    string
	debugMode  bool
	outputFile string
	longFormat bool
)

var rootCmd = &cobra.Command{
	Use:   "flowforge",
	Short: "Declarative CI workflow generator and build-graph runner",
	Long:  "flowforge compiles a declarative kinds × runners pipeline description into a workflow document, and keeps derived artifacts in sync with their inputs through a small build graph",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(cfgFile); err != nil {
			return err
		}
		if debugMode {
			config.Instance.Debug = true
		}
		if err := logger.Init(logger.Config{
			Debug:  config.Instance.Debug,
			Format: config.Instance.LogFormat,
		}); err != nil {
			return err
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./flowforge.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output path (default: stdout)")
	jobsCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Show step details")
}

// graphPaths maps the loaded configuration onto the standard build graph.
func graphPaths() pipeline.Paths {
	return pipeline.Paths{
		Pipeline: config.Instance.PipelineFile,
		Manifest: config.Instance.ManifestFile,
		Pin:      config.Instance.PinFile,
		Workflow: config.Instance.WorkflowOutput,
		Lock:     config.Instance.LockOutput,
	}
}

// installPanicHandler prints bug-report guidance on panic. Disabled via the
// no_install_panic_handler setting (FLOWFORGE_NO_INSTALL_PANIC_HANDLER).
func installPanicHandler() {
	if config.Instance.NoInstallPanicHandler {
		return
	}
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "flowforge crashed: %v\n", r)
		fmt.Fprintln(os.Stderr, "This is a bug. Please report it with the output above.")
		os.Exit(2)
	}
}

func main() {
	defer installPanicHandler()
	if err := rootCmd.Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
