package gravity

import "math"

// Metric accumulates a scalar diagnostic over a trajectory's rows.
type Metric interface {
	Name() string
	Observe(st State, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from its initial value. For the adaptive solver it acts as a
// regression oracle: drift shrinks as tolerances tighten.
type EnergyDrift struct {
	sys     *System
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(sys *System) *EnergyDrift { return &EnergyDrift{sys: sys} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(st State, t float64) {
	energy := e.sys.Energy(st)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum deviation of total linear momentum
// (vector norm of the difference) from its initial value.
type MomentumDrift struct {
	sys     *System
	initial Vec3
	max     float64
	samples int
}

func NewMomentumDrift(sys *System) *MomentumDrift { return &MomentumDrift{sys: sys} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(st State, t float64) {
	p := m.sys.Momentum(st)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.max = math.Max(m.max, p.Sub(m.initial).Norm())
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initial = Vec3{}
	m.max = 0
	m.samples = 0
}

// MinSeparationMetric records the closest any two bodies came during the
// run, a proxy for how near the trajectory skirted the singularity.
type MinSeparationMetric struct {
	sys *System
	min float64
	set bool
}

func NewMinSeparation(sys *System) *MinSeparationMetric {
	return &MinSeparationMetric{sys: sys}
}

func (m *MinSeparationMetric) Name() string { return "min_separation" }

func (m *MinSeparationMetric) Observe(st State, t float64) {
	d := m.sys.MinSeparation(st)
	if !m.set || d < m.min {
		m.min = d
		m.set = true
	}
}

func (m *MinSeparationMetric) Value() float64 {
	if !m.set {
		return 0
	}
	return m.min
}

func (m *MinSeparationMetric) Reset() {
	m.min = 0
	m.set = false
}

// EvaluateMetrics runs the given metrics over a finished trajectory.
func EvaluateMetrics(res *Result, metrics ...Metric) map[string]float64 {
	for _, m := range metrics {
		m.Reset()
	}
	for i, st := range res.States {
		for _, m := range metrics {
			m.Observe(st, res.Times[i])
		}
	}
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
