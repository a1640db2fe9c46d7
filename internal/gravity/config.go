package gravity

import (
	"errors"
	"fmt"
)

// Body is one point mass's immutable run parameters.
type Body struct {
	Mass     float64
	Position Vec3
	Velocity Vec3
}

// Config bundles everything one run needs. It is passed explicitly into
// Simulate; there is no ambient configuration state.
type Config struct {
	G      float64
	Bodies [NumBodies]Body

	// Integration interval [Start, End], Start < End.
	Start, End float64

	// Samples evenly spaced output times over the interval, used when
	// SampleTimes is nil.
	Samples int

	// SampleTimes, when set, is the authoritative (monotonically
	// non-decreasing) list of output times. Spacing need not be uniform.
	SampleTimes []float64

	// Local error control for the adaptive solver.
	Rtol, Atol float64
}

// ErrConfig tags configuration validation failures, surfaced before any
// integration work begins.
var ErrConfig = errors.New("gravity: invalid configuration")

func (c Config) Validate() error {
	if c.G <= 0 {
		return fmt.Errorf("%w: gravitational constant must be positive, got %g", ErrConfig, c.G)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("%w: body %d mass must be positive, got %g", ErrConfig, i+1, b.Mass)
		}
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return fmt.Errorf("%w: body %d has non-finite initial state", ErrConfig, i+1)
		}
	}
	if c.End <= c.Start {
		return fmt.Errorf("%w: time span end %g must exceed start %g", ErrConfig, c.End, c.Start)
	}
	if c.Rtol <= 0 || c.Atol <= 0 {
		return fmt.Errorf("%w: tolerances must be positive (rtol=%g atol=%g)", ErrConfig, c.Rtol, c.Atol)
	}
	if c.SampleTimes != nil {
		prev := c.Start
		for i, ts := range c.SampleTimes {
			if ts < prev || ts > c.End {
				return fmt.Errorf("%w: sample time %d (%g) outside span or decreasing", ErrConfig, i, ts)
			}
			prev = ts
		}
		if len(c.SampleTimes) == 0 {
			return fmt.Errorf("%w: empty sample time list", ErrConfig)
		}
	} else if c.Samples < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrConfig, c.Samples)
	}
	return nil
}

// Times returns the output times for the run: SampleTimes verbatim, or an
// evenly spaced grid over the span.
func (c Config) Times() []float64 {
	if c.SampleTimes != nil {
		out := make([]float64, len(c.SampleTimes))
		copy(out, c.SampleTimes)
		return out
	}
	out := make([]float64, c.Samples)
	step := (c.End - c.Start) / float64(c.Samples-1)
	for i := range out {
		out[i] = c.Start + float64(i)*step
	}
	out[len(out)-1] = c.End
	return out
}

// InitialState packs the configured bodies into the flat state vector.
func (c Config) InitialState() State {
	var pos, vel [NumBodies]Vec3
	for i, b := range c.Bodies {
		pos[i] = b.Position
		vel[i] = b.Velocity
	}
	return PackState(pos, vel)
}

// System builds the physical system for this configuration.
func (c Config) System() *System {
	var m [NumBodies]float64
	for i, b := range c.Bodies {
		m[i] = b.Mass
	}
	return NewSystem(c.G, m)
}
