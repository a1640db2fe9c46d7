package config

import "sort"

var presets = map[string]*Scenario{
	// The original bounded-chaos scenario: equal masses, a small z-offset
	// to force genuine 3D motion.
	"chaos": {
		Name: "chaos",
		G:    DefaultG,
		Bodies: [3]BodyConfig{
			{Mass: 1.0, Position: Vector{X: -1.0, Z: 0.1}, Velocity: Vector{Y: 0.3}},
			{Mass: 1.0, Position: Vector{X: 1.0, Z: -0.1}, Velocity: Vector{Y: -0.3}},
			{Mass: 1.0, Position: Vector{Y: 1.0}, Velocity: Vector{Z: 0.1}},
		},
		Start:   0,
		End:     DefaultDuration,
		Samples: DefaultSamples,
		Rtol:    DefaultRtol,
		Atol:    DefaultAtol,
	},
	// Chenciner-Montgomery figure-eight choreography (planar).
	"figure8": {
		Name: "figure8",
		G:    1.0,
		Bodies: [3]BodyConfig{
			{Mass: 1.0, Position: Vector{X: 0.97000436, Y: -0.24308753}, Velocity: Vector{X: 0.46620369, Y: 0.43236573}},
			{Mass: 1.0, Position: Vector{X: -0.97000436, Y: 0.24308753}, Velocity: Vector{X: 0.46620369, Y: 0.43236573}},
			{Mass: 1.0, Position: Vector{}, Velocity: Vector{X: -0.93240737, Y: -0.86473146}},
		},
		Start:   0,
		End:     6.32,
		Samples: 1000,
		Rtol:    DefaultRtol,
		Atol:    DefaultAtol,
	},
	// Equal masses on an equilateral triangle with tangential velocities;
	// unstable but pretty before it disperses.
	"triangle": {
		Name: "triangle",
		G:    1.0,
		Bodies: [3]BodyConfig{
			{Mass: 1.0, Position: Vector{X: 1.0}, Velocity: Vector{Y: 0.55}},
			{Mass: 1.0, Position: Vector{X: -0.5, Y: 0.8660254}, Velocity: Vector{X: -0.4763, Y: -0.275}},
			{Mass: 1.0, Position: Vector{X: -0.5, Y: -0.8660254}, Velocity: Vector{X: 0.4763, Y: -0.275}},
		},
		Start:   0,
		End:     30,
		Samples: 1500,
		Rtol:    DefaultRtol,
		Atol:    DefaultAtol,
	},
	// A heavy central body with two light companions, a hierarchical
	// sun-planet-moon style configuration.
	"hierarchy": {
		Name: "hierarchy",
		G:    1.0,
		Bodies: [3]BodyConfig{
			{Mass: 10.0, Position: Vector{}, Velocity: Vector{}},
			{Mass: 0.1, Position: Vector{X: 3.0}, Velocity: Vector{Y: 1.83}},
			{Mass: 0.1, Position: Vector{X: -5.0, Z: 0.5}, Velocity: Vector{Y: -1.42}},
		},
		Start:   0,
		End:     60,
		Samples: 2000,
		Rtol:    DefaultRtol,
		Atol:    DefaultAtol,
	},
}

func GetPreset(name string) *Scenario {
	sc, ok := presets[name]
	if !ok {
		return nil
	}
	clone := *sc
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
