package gravity

import (
	"math"
	"testing"
)

func approx(t *testing.T, got, want, tol float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.12g, want %.12g", label, got, want)
	}
}

// testState places unit masses at the origin, (1,0,0) and (0,1,0) with
// velocities (1,0,0), (0,1,0), (0,0,1). Small enough to check by hand.
func testState() State {
	return PackState(
		[NumBodies]Vec3{{}, {X: 1}, {Y: 1}},
		[NumBodies]Vec3{{X: 1}, {Y: 1}, {Z: 1}},
	)
}

func unitSystem() *System {
	return NewSystem(1.0, [NumBodies]float64{1, 1, 1})
}

func TestDerive_VelocityBlock(t *testing.T) {
	st := testState()
	dy := unitSystem().Derive(0, st)

	if len(dy) != StateDim {
		t.Fatalf("derivative has %d components, want %d", len(dy), StateDim)
	}
	// Position derivatives are the velocities, verbatim.
	for i := 0; i < 3*NumBodies; i++ {
		if dy[i] != st[3*NumBodies+i] {
			t.Errorf("dy[%d] = %g, want velocity %g", i, dy[i], st[3*NumBodies+i])
		}
	}
}

func TestDerive_Accelerations(t *testing.T) {
	dy := unitSystem().Derive(0, testState())

	// With G=1 and unit masses the pull between the origin body and each
	// neighbor has magnitude 1; the diagonal pair sits at distance sqrt(2).
	inv := 1.0 / (2.0 * math.Sqrt2) // 1/d^3 for d = sqrt(2)
	want := [NumBodies]Vec3{
		{X: 1, Y: 1},
		{X: -1 - inv, Y: inv},
		{X: inv, Y: -1 - inv},
	}
	for b := 0; b < NumBodies; b++ {
		got := Vec3{dy[3*NumBodies+3*b], dy[3*NumBodies+3*b+1], dy[3*NumBodies+3*b+2]}
		if got.Sub(want[b]).Norm() > 1e-12 {
			t.Errorf("body %d acceleration: got %+v, want %+v", b+1, got, want[b])
		}
	}
}

func TestDerive_NewtonThirdLaw(t *testing.T) {
	// Internal forces cancel: sum of m_i * a_i must vanish for any state.
	sys := NewSystem(2.5, [NumBodies]float64{1, 3, 0.2})
	st := PackState(
		[NumBodies]Vec3{{X: -0.7, Y: 0.2, Z: 1.1}, {X: 0.9, Y: -1.3}, {Z: -0.4}},
		[NumBodies]Vec3{{X: 0.1}, {Y: 0.2}, {Z: 0.3}},
	)
	dy := sys.Derive(0, st)

	var sum Vec3
	for b := 0; b < NumBodies; b++ {
		a := Vec3{dy[3*NumBodies+3*b], dy[3*NumBodies+3*b+1], dy[3*NumBodies+3*b+2]}
		sum = sum.Add(a.Scale(sys.Masses[b]))
	}
	if sum.Norm() > 1e-12 {
		t.Errorf("net internal force %+v, want zero", sum)
	}
}

func TestDerive_Pure(t *testing.T) {
	st := testState()
	before := st.Clone()
	_ = unitSystem().Derive(0, st)
	for i := range st {
		if st[i] != before[i] {
			t.Fatal("Derive mutated its input state")
		}
	}
}

func TestEnergy(t *testing.T) {
	// KE = 3 * (1/2), PE = -(1 + 1 + 1/sqrt(2)).
	want := 1.5 - (2.0 + 1.0/math.Sqrt2)
	approx(t, unitSystem().Energy(testState()), want, 1e-12, "energy")
}

func TestMomentum(t *testing.T) {
	p := unitSystem().Momentum(testState())
	if p.Sub(Vec3{X: 1, Y: 1, Z: 1}).Norm() > 1e-12 {
		t.Errorf("momentum %+v, want (1,1,1)", p)
	}
}

func TestAngularMomentum(t *testing.T) {
	l := unitSystem().AngularMomentum(testState())
	if l.Sub(Vec3{X: 1, Z: 1}).Norm() > 1e-12 {
		t.Errorf("angular momentum %+v, want (1,0,1)", l)
	}
}

func TestMinSeparation(t *testing.T) {
	approx(t, unitSystem().MinSeparation(testState()), 1.0, 1e-12, "min separation")
}

func TestVec3_Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-1, 0, 2}

	if a.Dot(b) != 5 {
		t.Errorf("dot: got %g, want 5", a.Dot(b))
	}
	c := a.Cross(b)
	if c != (Vec3{4, -5, 2}) {
		t.Errorf("cross: got %+v, want (4,-5,2)", c)
	}
	if !a.IsFinite() || (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("IsFinite misclassified a vector")
	}
}
