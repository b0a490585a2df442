// Package config holds the YAML pipeline configuration for the lagtime
// CLI: dataset generation, discretization, and estimation settings in
// one file, merged under the command-line flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps      = 100000
	DefaultStepSize   = 0.001
	DefaultStride     = 10
	DefaultBins       = 20
	DefaultClusters   = 4
	DefaultLagtime    = 1
	DefaultTimescales = 3
)

type Config struct {
	System     string  `yaml:"system"`
	Steps      int     `yaml:"steps"`
	StepSize   float64 `yaml:"step_size"`
	Stride     int     `yaml:"stride"`
	Seed       uint64  `yaml:"seed"`
	Bins       int     `yaml:"bins"`
	Clusters   int     `yaml:"clusters"`
	Lagtime    int     `yaml:"lagtime"`
	Mode       string  `yaml:"mode"`
	Reversible bool    `yaml:"reversible"`
	Timescales int     `yaml:"timescales"`
}

func DefaultConfig() *Config {
	return &Config{
		System:     "doublewell",
		Steps:      DefaultSteps,
		StepSize:   DefaultStepSize,
		Stride:     DefaultStride,
		Bins:       DefaultBins,
		Clusters:   DefaultClusters,
		Lagtime:    DefaultLagtime,
		Mode:       "sliding",
		Reversible: true,
		Timescales: DefaultTimescales,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
