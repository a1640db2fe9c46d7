// Package config loads and saves run scenarios. A scenario is the full
// explicit parameter set for one simulation: gravitational constant,
// bodies, time span, sampling, and solver tolerances.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ravn-k/threebody/internal/gravity"
)

const (
	DefaultG        = 1.0
	DefaultDuration = 120.0
	DefaultSamples  = 2000
	DefaultRtol     = 1e-9
	DefaultAtol     = 1e-9
)

type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vector) vec3() gravity.Vec3 { return gravity.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

type BodyConfig struct {
	Mass     float64 `yaml:"mass"`
	Position Vector  `yaml:"position"`
	Velocity Vector  `yaml:"velocity"`
}

type Scenario struct {
	Name    string        `yaml:"name"`
	G       float64       `yaml:"g"`
	Bodies  [3]BodyConfig `yaml:"bodies"`
	Start   float64       `yaml:"start"`
	End     float64       `yaml:"end"`
	Samples int           `yaml:"samples"`
	Rtol    float64       `yaml:"rtol"`
	Atol    float64       `yaml:"atol"`
}

// Default returns the scenario the original experiment shipped with:
// unit G, unit masses, slightly z-offset initial positions so the
// trajectories leave the plane.
func Default() *Scenario {
	return GetPreset("chaos")
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Default()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RunConfig converts the scenario into the simulator's parameter bundle.
func (s *Scenario) RunConfig() gravity.Config {
	cfg := gravity.Config{
		G:       s.G,
		Start:   s.Start,
		End:     s.End,
		Samples: s.Samples,
		Rtol:    s.Rtol,
		Atol:    s.Atol,
	}
	for i, b := range s.Bodies {
		cfg.Bodies[i] = gravity.Body{
			Mass:     b.Mass,
			Position: b.Position.vec3(),
			Velocity: b.Velocity.vec3(),
		}
	}
	return cfg
}
