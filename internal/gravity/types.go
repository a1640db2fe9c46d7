package gravity

import "math"

// Vec3 is a position or velocity in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Norm() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// NumBodies is fixed: this package models the classic three-body problem,
// not a general N-body engine.
const NumBodies = 3

// StateDim is the length of the flat state vector: three positions
// followed by three velocities, 3 components each.
const StateDim = NumBodies * 6

// State is the 18-component system state. Layout is fixed and shared with
// the integrator: [r1 r2 r3 v1 v2 v3], each a 3-vector.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Position returns the position of body i (0-based).
func (s State) Position(i int) Vec3 {
	return Vec3{s[i*3], s[i*3+1], s[i*3+2]}
}

// Velocity returns the velocity of body i (0-based).
func (s State) Velocity(i int) Vec3 {
	off := NumBodies*3 + i*3
	return Vec3{s[off], s[off+1], s[off+2]}
}

// PackState builds a state vector from per-body positions and velocities.
func PackState(pos, vel [NumBodies]Vec3) State {
	s := make(State, StateDim)
	for i := 0; i < NumBodies; i++ {
		s[i*3], s[i*3+1], s[i*3+2] = pos[i].X, pos[i].Y, pos[i].Z
		off := NumBodies*3 + i*3
		s[off], s[off+1], s[off+2] = vel[i].X, vel[i].Y, vel[i].Z
	}
	return s
}
