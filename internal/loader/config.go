package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SimConfig is the optional YAML run configuration consumed by the CLI.
// Flags override file values; the engine only ever sees the resolved
// numbers.
type SimConfig struct {
	Style          string  `yaml:"style"`
	HorizonSeconds float64 `yaml:"horizon_seconds"`
	Adrenaline     float64 `yaml:"adrenaline"`

	UsePRNG         bool  `yaml:"use_prng"`
	Seed            int64 `yaml:"seed"`
	UseRingOfVigour bool  `yaml:"use_ring_of_vigour"`
	UseASR          bool  `yaml:"use_asr"`
}

// LoadSimConfig reads a run configuration file.
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config SimConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// ValidateSimConfig checks the resolved configuration before a run.
func ValidateSimConfig(c *SimConfig) error {
	if c.Style == "" {
		return fmt.Errorf("style is required")
	}
	if c.HorizonSeconds <= 0 {
		return fmt.Errorf("horizon_seconds must be positive, got %v", c.HorizonSeconds)
	}
	if c.Adrenaline < 0 || c.Adrenaline > 100 {
		return fmt.Errorf("adrenaline must be within [0, 100], got %v", c.Adrenaline)
	}
	if c.UseASR && !c.UsePRNG {
		return fmt.Errorf("use_asr requires use_prng: the cost waiver is probabilistic")
	}
	return nil
}
