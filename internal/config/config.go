package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

const (
	DefaultDataDir  = ".ceasim"
	DefaultLogLevel = "info"
)

type Config struct {
	Circuit     circuit.Parameters `yaml:"circuit"`
	Samples     int                `yaml:"samples"`
	DataDir     string             `yaml:"data_dir"`
	LogLevel    string             `yaml:"log_level"`
	Sensitivity SensitivityConfig  `yaml:"sensitivity"`
}

type SensitivityConfig struct {
	RC     circuit.Range `yaml:"rc"`
	RE     circuit.Range `yaml:"re"`
	Points int           `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Circuit:  circuit.DefaultParameters(),
		Samples:  circuit.DefaultSamples,
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Sensitivity: SensitivityConfig{
			RC:     circuit.DefaultRCRange,
			RE:     circuit.DefaultRERange,
			Points: circuit.DefaultSensitivityPoints,
		},
	}
}

// Load reads a YAML file over the defaults; keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Circuit.Validate(); err != nil {
		return err
	}
	if c.Samples <= 0 {
		return &circuit.InvalidArgumentError{Name: "samples", Value: c.Samples, Reason: "must be positive"}
	}
	if c.Sensitivity.Points <= 0 {
		return &circuit.InvalidArgumentError{Name: "sensitivity.points", Value: c.Sensitivity.Points, Reason: "must be positive"}
	}
	return nil
}
