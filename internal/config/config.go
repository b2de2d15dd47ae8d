// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/iwvelando/liquidity-sim/internal/simulation"
	"github.com/iwvelando/liquidity-sim/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for liquidity-sim.
type Configuration struct {
	Simulation SimulationConfig
	Topology   TopologyConfig
	Logging    LoggingConfig  `yaml:"logging,omitempty"`
	Output     OutputConfig   `yaml:"output,omitempty"`
	Recorder   RecorderConfig `yaml:"recorder,omitempty"`
}

// SimulationConfig holds the parameters of a simulation run.
type SimulationConfig struct {
	Scenario            string
	Iterations          int
	UseBankIntervention bool
	Seed                int64
	CompareBankImpact   bool `yaml:"compareBankImpact,omitempty"`
	AllScenarios        bool `yaml:"allScenarios,omitempty"`
}

// TopologyConfig locates the debt network definition.
type TopologyConfig struct {
	File string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// RecorderConfig holds run persistence options. An empty Database disables
// recording.
type RecorderConfig struct {
	Database string `yaml:"database,omitempty"`
}

// ConfigurationError reports an invalid configuration value. Validation runs
// before any simulation state is built.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Simulation.Iterations == 0 {
		conf.Simulation.Iterations = constants.DefaultIterations
	}
	if conf.Simulation.Scenario == "" {
		conf.Simulation.Scenario = simulation.ScenarioNormal.String()
	}
}

// Validate checks the configuration and returns a ConfigurationError for the
// first violation found.
func (conf *Configuration) Validate() error {
	if conf.Simulation.Iterations <= 0 {
		return &ConfigurationError{
			Field:  "simulation.iterations",
			Reason: fmt.Sprintf("must be a positive integer, got %d", conf.Simulation.Iterations),
		}
	}

	if _, err := simulation.ParseScenario(conf.Simulation.Scenario); err != nil {
		return &ConfigurationError{
			Field:  "simulation.scenario",
			Reason: err.Error(),
		}
	}

	if conf.Topology.File == "" {
		return &ConfigurationError{
			Field:  "topology.file",
			Reason: "topology file is required",
		}
	}

	switch conf.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigurationError{
			Field:  "logging.level",
			Reason: fmt.Sprintf("unrecognized level %q", conf.Logging.Level),
		}
	}

	switch conf.Logging.Format {
	case "", "json", "console":
	default:
		return &ConfigurationError{
			Field:  "logging.format",
			Reason: fmt.Sprintf("unrecognized format %q", conf.Logging.Format),
		}
	}

	switch conf.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV:
	default:
		return &ConfigurationError{
			Field:  "output.format",
			Reason: fmt.Sprintf("unrecognized format %q", conf.Output.Format),
		}
	}

	return nil
}

// Scenario returns the parsed scenario. Call Validate first.
func (conf *Configuration) Scenario() simulation.Scenario {
	scenario, _ := simulation.ParseScenario(conf.Simulation.Scenario)
	return scenario
}
