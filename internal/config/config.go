// Package config provides unified configuration loading for virusnet.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgraziano/virusnet/internal/sim"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "virusnet.yaml"

// Config contains all virusnet settings.
type Config struct {
	// Simulation holds the model parameters for a run.
	Simulation sim.Config `yaml:"simulation"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures virusnet's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-tick trace logging to a JSONL file.
	Level string `yaml:"level"`

	// TraceDir is the directory tick traces are written to when the level
	// enables them. Empty means the working directory.
	TraceDir string `yaml:"trace_dir,omitempty"`
}

// Default returns a Config with the canonical model parameters.
func Default() *Config {
	return &Config{
		Simulation: sim.DefaultConfig(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ./virusnet.yaml -> environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(DefaultFileName); err == nil {
		fileCfg, loadErr := LoadFromFile(DefaultFileName)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VIRUSNET_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = &n
		}
	}

	if v := os.Getenv("VIRUSNET_POPULATION_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.PopulationSize = n
		}
	}

	if v := os.Getenv("VIRUSNET_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Ticks = n
		}
	}

	if v := os.Getenv("VIRUSNET_SPREAD_CHANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.VirusSpreadChance = f
		}
	}

	if v := os.Getenv("VIRUSNET_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
