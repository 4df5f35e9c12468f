// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Genome     GenomeConfig     `yaml:"genome"`
	Brain      BrainConfig      `yaml:"brain"`
	Run        RunConfig        `yaml:"run"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Barriers   []BarrierConfig  `yaml:"barriers"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Size int `yaml:"size"`
}

// GenomeConfig holds genome creation and mutation parameters.
type GenomeConfig struct {
	Length       int     `yaml:"length"`        // Genes per random genome at generation 1
	MutationRate float64 `yaml:"mutation_rate"` // Per-gene point-mutation probability per reproduction
}

// BrainConfig holds neural circuit parameters.
type BrainConfig struct {
	InternalNeurons int `yaml:"internal_neurons"`
}

// RunConfig holds generation lifecycle parameters.
type RunConfig struct {
	StepsPerGen int    `yaml:"steps_per_gen"`
	Generations int    `yaml:"generations"`
	Selection   string `yaml:"selection"` // right_half, left_half, center_circle, corners, right_quarter
	Seed        int64  `yaml:"seed"`      // 0 = time-based
}

// TelemetryConfig holds run output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // Empty = CSV output disabled
	LogStats  bool   `yaml:"log_stats"`
}

// BarrierConfig is one permanent obstacle cell placed before first spawn.
type BarrierConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	GridCells int     // World.Width * World.Height
	Occupancy float64 // Population.Size / GridCells; spawn sampling degrades as this nears 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config and floors
// parameters the simulation cannot run without.
func (c *Config) computeDerived() {
	// A brain with zero internal neurons cannot fold neuron-typed genes.
	if c.Brain.InternalNeurons < 1 {
		c.Brain.InternalNeurons = 1
	}
	if c.Genome.Length < 1 {
		c.Genome.Length = 1
	}

	c.Derived.GridCells = c.World.Width * c.World.Height
	if c.Derived.GridCells > 0 {
		c.Derived.Occupancy = float64(c.Population.Size) / float64(c.Derived.GridCells)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
