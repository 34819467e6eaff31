package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gliderlab/internal/geom"
)

const (
	DefaultPlanets  = 4
	DefaultMaxMass  = 1.0
	DefaultSpiral   = 0.02
	DefaultStepSize = 10.0
	DefaultMaxSteps = 3000
	DefaultAttempts = 1000
	DefaultGliders  = 100
	DefaultSeed     = 23
	DefaultWidth    = 1080.0
	DefaultHeight   = 720.0
)

type Config struct {
	Planets    int          `yaml:"planets"`
	MaxMass    float64      `yaml:"max_mass"`
	Spiral     float64      `yaml:"spiral"`
	Integrator string       `yaml:"integrator"`
	Scheme     string       `yaml:"scheme"`
	StepSize   float64      `yaml:"step_size"`
	MaxSteps   int          `yaml:"max_steps"`
	Attempts   int          `yaml:"attempts"`
	Gliders    int          `yaml:"gliders"`
	Seed       int64        `yaml:"seed"`
	Bounds     BoundsConfig `yaml:"bounds"`
}

type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Planets:    DefaultPlanets,
		MaxMass:    DefaultMaxMass,
		Spiral:     DefaultSpiral,
		Integrator: "rk4",
		Scheme:     "level",
		StepSize:   DefaultStepSize,
		MaxSteps:   DefaultMaxSteps,
		Attempts:   DefaultAttempts,
		Gliders:    DefaultGliders,
		Seed:       DefaultSeed,
		Bounds:     BoundsConfig{MaxX: DefaultWidth, MaxY: DefaultHeight},
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

// Rect converts the yaml bounds into the geometry type used everywhere
// else.
func (c *Config) Rect() geom.Rect {
	return geom.Rect{
		Min: geom.Vec2{X: c.Bounds.MinX, Y: c.Bounds.MinY},
		Max: geom.Vec2{X: c.Bounds.MaxX, Y: c.Bounds.MaxY},
	}
}

// Validate rejects configurations the core cannot run with. A system
// without planets is a configuration error, not a runtime condition.
func (c *Config) Validate() error {
	if c.Planets < 1 {
		return fmt.Errorf("planets must be at least 1, got %d", c.Planets)
	}
	if c.MaxMass < 0 {
		return fmt.Errorf("max_mass must be non-negative, got %f", c.MaxMass)
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %f", c.StepSize)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.MaxSteps)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.Gliders < 1 {
		return fmt.Errorf("gliders must be at least 1, got %d", c.Gliders)
	}
	r := c.Rect()
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("bounds must span a positive area")
	}
	return nil
}
