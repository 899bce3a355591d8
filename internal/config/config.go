package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	DefaultBodies  = 65536
	DefaultSteps   = 100
	DefaultLogFile = "times.csv"
	DefaultProgram = "gravsim"
)

type Config struct {
	Bodies        int           `yaml:"bodies" mapstructure:"bodies"`
	Steps         int           `yaml:"steps" mapstructure:"steps"`
	Workers       int           `yaml:"workers" mapstructure:"workers"`
	FastMath      bool          `yaml:"fast_math" mapstructure:"fast_math"`
	ValidateState bool          `yaml:"validate_state" mapstructure:"validate_state"`
	LogFile       string        `yaml:"log_file" mapstructure:"log_file"`
	Program       string        `yaml:"program" mapstructure:"program"`
	Physics       PhysicsConfig `yaml:"physics" mapstructure:"physics"`
}

type PhysicsConfig struct {
	G         float32 `yaml:"g" mapstructure:"g"`
	Mass      float32 `yaml:"mass" mapstructure:"mass"`
	Dist      float32 `yaml:"dist" mapstructure:"dist"`
	Z0        float32 `yaml:"z0" mapstructure:"z0"`
	Softening float32 `yaml:"softening" mapstructure:"softening"`
	Dt        float32 `yaml:"dt" mapstructure:"dt"`
}

func DefaultPhysics() PhysicsConfig {
	p := dynamo.DefaultParams()
	return PhysicsConfig{
		G:         p.G,
		Mass:      p.Mass,
		Dist:      p.Dist,
		Z0:        p.Z0,
		Softening: p.Softening,
		Dt:        p.Dt,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:  DefaultBodies,
		Steps:   DefaultSteps,
		LogFile: DefaultLogFile,
		Program: DefaultProgram,
		Physics: DefaultPhysics(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the
// file keep the value from base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		G:         c.Physics.G,
		Mass:      c.Physics.Mass,
		Dist:      c.Physics.Dist,
		Z0:        c.Physics.Z0,
		Softening: c.Physics.Softening,
		Dt:        c.Physics.Dt,
	}
}

func (c *Config) Validate() error {
	if c.Bodies < 0 {
		return fmt.Errorf("%w, got %d", dynamo.ErrInvalidBodyCount, c.Bodies)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w, got %d", dynamo.ErrNegativeSteps, c.Steps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", dynamo.ErrParameterBounds, c.Workers)
	}
	return c.Params().Validate()
}

func (c *Config) EngineConfig() dynamo.Config {
	return dynamo.Config{
		Params:        c.Params(),
		Workers:       c.Workers,
		FastMath:      c.FastMath,
		ValidateState: c.ValidateState,
	}
}
