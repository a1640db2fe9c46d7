package gravity

import "math"

// System holds the physical parameters of one three-body run: the
// gravitational constant and the three masses. Parameters are explicit so
// independent runs cannot interfere through shared globals.
type System struct {
	G      float64
	Masses [NumBodies]float64
}

func NewSystem(g float64, masses [NumBodies]float64) *System {
	return &System{G: g, Masses: masses}
}

func (s *System) Dim() int { return StateDim }

// Derive computes the time derivative of the state vector: the velocity
// components followed by the three mutual-gravity accelerations. It is
// stateless and side-effect free, so the adaptive solver may call it any
// number of times and out of order during step rejection.
//
// Acceleration on body i is the sum over j != i of
// G * m_j * (r_j - r_i) / |r_j - r_i|^3. There is no softening term: a
// near-zero separation produces a divergent acceleration that the solver
// surfaces as an integration failure rather than silently damping.
func (s *System) Derive(t float64, y []float64) []float64 {
	st := State(y)
	var r [NumBodies]Vec3
	for i := 0; i < NumBodies; i++ {
		r[i] = st.Position(i)
	}

	var acc [NumBodies]Vec3
	for i := 0; i < NumBodies; i++ {
		for j := i + 1; j < NumBodies; j++ {
			d := r[j].Sub(r[i])
			dist := d.Norm()
			inv3 := 1.0 / (dist * dist * dist)
			acc[i] = acc[i].Add(d.Scale(s.G * s.Masses[j] * inv3))
			acc[j] = acc[j].Add(d.Scale(-s.G * s.Masses[i] * inv3))
		}
	}

	dy := make([]float64, StateDim)
	// Positions' derivatives are the velocities.
	copy(dy[:NumBodies*3], y[NumBodies*3:])
	for i := 0; i < NumBodies; i++ {
		off := NumBodies*3 + i*3
		dy[off], dy[off+1], dy[off+2] = acc[i].X, acc[i].Y, acc[i].Z
	}
	return dy
}

// Energy returns the total mechanical energy (kinetic + potential).
func (s *System) Energy(st State) float64 {
	ke := 0.0
	pe := 0.0
	for i := 0; i < NumBodies; i++ {
		v := st.Velocity(i)
		ke += 0.5 * s.Masses[i] * v.Dot(v)
		for j := i + 1; j < NumBodies; j++ {
			d := st.Position(j).Sub(st.Position(i)).Norm()
			pe -= s.G * s.Masses[i] * s.Masses[j] / d
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum.
func (s *System) Momentum(st State) Vec3 {
	var p Vec3
	for i := 0; i < NumBodies; i++ {
		p = p.Add(st.Velocity(i).Scale(s.Masses[i]))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (s *System) AngularMomentum(st State) Vec3 {
	var l Vec3
	for i := 0; i < NumBodies; i++ {
		l = l.Add(st.Position(i).Cross(st.Velocity(i)).Scale(s.Masses[i]))
	}
	return l
}

// MinSeparation returns the smallest pairwise distance between bodies.
func (s *System) MinSeparation(st State) float64 {
	min := math.Inf(1)
	for i := 0; i < NumBodies; i++ {
		for j := i + 1; j < NumBodies; j++ {
			if d := st.Position(j).Sub(st.Position(i)).Norm(); d < min {
				min = d
			}
		}
	}
	return min
}
