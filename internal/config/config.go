package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinema/internal/controller"
	"github.com/san-kum/kinema/internal/curve"
	"github.com/san-kum/kinema/internal/spring"
)

const (
	DefaultFPS       = 60
	DefaultMaxTime   = 30.0
	DefaultMass      = 1.0
	DefaultStiffness = 100.0
	DefaultDamping   = 10.0
	DefaultDuration  = 0.3
)

type Config struct {
	Law     string       `yaml:"law"`
	Spring  SpringConfig `yaml:"spring"`
	Curve   CurveConfig  `yaml:"curve"`
	Lower   float64      `yaml:"lower"`
	Upper   float64      `yaml:"upper"`
	Initial float64      `yaml:"initial"`
	Target  float64      `yaml:"target"`
	FPS     int          `yaml:"fps"`
	MaxTime float64      `yaml:"max_time"`
	Repeat  RepeatConfig `yaml:"repeat"`
}

type SpringConfig struct {
	Mass            float64 `yaml:"mass"`
	Stiffness       float64 `yaml:"stiffness"`
	Damping         float64 `yaml:"damping"`
	InitialVelocity float64 `yaml:"initial_velocity"`
}

type CurveConfig struct {
	Ease     string  `yaml:"ease"`
	Duration float64 `yaml:"duration"`
}

type RepeatConfig struct {
	Enabled bool    `yaml:"enabled"`
	Reverse bool    `yaml:"reverse"`
	Period  float64 `yaml:"period"`
	Count   int     `yaml:"count"`
}

func DefaultConfig() *Config {
	return &Config{
		Law: "spring",
		Spring: SpringConfig{
			Mass:      DefaultMass,
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
		},
		Curve: CurveConfig{
			Ease:     "linear",
			Duration: DefaultDuration,
		},
		Lower:   0,
		Upper:   1,
		Target:  1,
		FPS:     DefaultFPS,
		MaxTime: DefaultMaxTime,
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

// BuildLaw translates the declarative law section into a controller law.
func (c *Config) BuildLaw() (controller.Law, error) {
	switch c.Law {
	case "spring":
		desc := spring.Description{
			Mass:      c.Spring.Mass,
			Stiffness: c.Spring.Stiffness,
			Damping:   c.Spring.Damping,
		}
		if err := desc.Validate(); err != nil {
			return nil, err
		}
		return controller.Physics{
			Spring:          desc,
			InitialVelocity: c.Spring.InitialVelocity,
		}, nil
	case "curve":
		ease, err := curve.ByName(c.Curve.Ease)
		if err != nil {
			return nil, err
		}
		return controller.Curve{
			Duration: time.Duration(c.Curve.Duration * float64(time.Second)),
			Ease:     ease,
		}, nil
	default:
		return nil, fmt.Errorf("unknown law: %s", c.Law)
	}
}

// BuildController assembles a scalar controller from the config.
func (c *Config) BuildController() (*controller.Controller, error) {
	law, err := c.BuildLaw()
	if err != nil {
		return nil, err
	}
	return controller.New(controller.Config{
		LowerBound:   c.Lower,
		UpperBound:   c.Upper,
		InitialValue: c.Initial,
		Law:          law,
	})
}
