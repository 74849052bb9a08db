// Package config holds the process-wide settings, read once at startup.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config files.
	AppName = "flowforge"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "FLOWFORGE"
)

// Settings holds the application configuration.
type Settings struct {
	// Core settings
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`

	// Input paths (build-graph leaf files)
	PipelineFile string `mapstructure:"pipeline_file"`
	ManifestFile string `mapstructure:"manifest_file"`
	PinFile      string `mapstructure:"pin_file"`

	// Derived artifact paths
	WorkflowOutput string `mapstructure:"workflow_output"`
	LockOutput     string `mapstructure:"lock_output"`

	// NoInstallPanicHandler disables the crash-report panic handler.
	// Read once at startup by the CLI, never by the core pipeline.
	NoInstallPanicHandler bool `mapstructure:"no_install_panic_handler"`
}

var (
	// Instance is the global configuration.
	Instance Settings

	// ConfigFile is the config file actually used, if any.
	ConfigFile string

	initOnce sync.Once
)

// Initialize sets up the configuration system: defaults, optional config
// file and FLOWFORGE_* environment variables.
func Initialize(cfgFile string) error {
	var err error

	initOnce.Do(func() {
		v := viper.New()
		setDefaults(v)

		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.SetConfigName(AppName)
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		}

		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("error reading config file: %w", readErr)
				return
			}
			// No config file: defaults plus environment variables.
			ConfigFile = ""
		} else {
			ConfigFile = v.ConfigFileUsed()
		}

		if unmarshalErr := v.Unmarshal(&Instance); unmarshalErr != nil {
			err = fmt.Errorf("error parsing config: %w", unmarshalErr)
		}
	})

	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")

	v.SetDefault("pipeline_file", "pipeline.yaml")
	v.SetDefault("manifest_file", "manifest.yaml")
	v.SetDefault("pin_file", "pin.json")

	v.SetDefault("workflow_output", ".github/workflows/ci.yml")
	v.SetDefault("lock_output", "deps.lock")

	v.SetDefault("no_install_panic_handler", false)
}
