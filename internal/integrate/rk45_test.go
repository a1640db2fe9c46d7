package integrate

import (
	"context"
	"errors"
	"math"
	"testing"
)

// harmonicOscillator is the standard test system: x'' = -x, with the
// analytic solution x(t) = cos(t), v(t) = -sin(t) from (1, 0).
type harmonicOscillator struct{}

func (harmonicOscillator) Dim() int { return 2 }

func (harmonicOscillator) Derive(t float64, y []float64) []float64 {
	return []float64{y[1], -y[0]}
}

// singular blows up at the origin, like a gravitational near-collision.
type singular struct{}

func (singular) Dim() int { return 2 }

func (singular) Derive(t float64, y []float64) []float64 {
	r := math.Abs(y[0])
	return []float64{y[1], -1.0 / (r * r * r)}
}

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

func TestRK45_HarmonicAccuracy(t *testing.T) {
	solver := NewRK45()
	span := Span{T0: 0, T1: 2 * math.Pi}
	samples := linspace(span.T0, span.T1, 101)

	sol, err := solver.Solve(context.Background(), harmonicOscillator{}, []float64{1, 0}, span, samples, Tolerance{Rel: 1e-9, Abs: 1e-9})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if len(sol.States) != len(samples) {
		t.Fatalf("expected %d rows, got %d", len(samples), len(sol.States))
	}

	for i, ts := range sol.Times {
		wantX := math.Cos(ts)
		wantV := -math.Sin(ts)
		if math.Abs(sol.States[i][0]-wantX) > 1e-6 || math.Abs(sol.States[i][1]-wantV) > 1e-6 {
			t.Fatalf("t=%.4f: got (%.8f, %.8f), want (%.8f, %.8f)",
				ts, sol.States[i][0], sol.States[i][1], wantX, wantV)
		}
	}
}

func TestRK45_TighterToleranceIsMoreAccurate(t *testing.T) {
	span := Span{T0: 0, T1: 10 * math.Pi}
	samples := []float64{span.T1}

	finalErr := func(rtol float64) float64 {
		sol, err := NewRK45().Solve(context.Background(), harmonicOscillator{}, []float64{1, 0}, span, samples, Tolerance{Rel: rtol, Abs: rtol})
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		return math.Abs(sol.States[0][0] - 1.0)
	}

	loose := finalErr(1e-4)
	tight := finalErr(1e-10)
	if tight > loose {
		t.Errorf("tight tolerance less accurate: %e > %e", tight, loose)
	}
}

func TestRK45_SampleStartAndEnd(t *testing.T) {
	span := Span{T0: 0, T1: 1}
	samples := []float64{0, 0.5, 1}

	sol, err := NewRK45().Solve(context.Background(), harmonicOscillator{}, []float64{1, 0}, span, samples, Tolerance{Rel: 1e-9, Abs: 1e-9})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if len(sol.States) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(sol.States))
	}
	if sol.States[0][0] != 1 || sol.States[0][1] != 0 {
		t.Errorf("row at t=0 should equal y0, got %v", sol.States[0])
	}
	if math.Abs(sol.States[2][0]-math.Cos(1)) > 1e-6 {
		t.Errorf("row at t=1: got %.8f, want %.8f", sol.States[2][0], math.Cos(1))
	}
}

func TestRK45_NonUniformSamples(t *testing.T) {
	span := Span{T0: 0, T1: 2}
	samples := []float64{0.1, 0.1, 0.17, 1.3, 1.99}

	sol, err := NewRK45().Solve(context.Background(), harmonicOscillator{}, []float64{1, 0}, span, samples, Tolerance{Rel: 1e-9, Abs: 1e-9})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if len(sol.States) != len(samples) {
		t.Fatalf("expected %d rows, got %d", len(samples), len(sol.States))
	}
	for i, ts := range samples {
		if math.Abs(sol.States[i][0]-math.Cos(ts)) > 1e-6 {
			t.Errorf("sample %d (t=%g): got %.8f, want %.8f", i, ts, sol.States[i][0], math.Cos(ts))
		}
	}
}

func TestRK45_SingularityFails(t *testing.T) {
	span := Span{T0: 0, T1: 10}
	samples := linspace(0, 10, 50)

	// Falling straight into the origin.
	sol, err := NewRK45().Solve(context.Background(), singular{}, []float64{1, -1}, span, samples, Tolerance{Rel: 1e-9, Abs: 1e-9})
	if err == nil {
		t.Fatal("expected failure near singularity, got success")
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T: %v", err, err)
	}
	for _, row := range sol.States {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatal("failed run leaked NaN/Inf rows")
			}
		}
	}
}

func TestRK45_Validation(t *testing.T) {
	ctx := context.Background()
	sys := harmonicOscillator{}
	y0 := []float64{1, 0}
	tol := Tolerance{Rel: 1e-6, Abs: 1e-6}

	cases := []struct {
		name    string
		y0      []float64
		span    Span
		samples []float64
		tol     Tolerance
		want    error
	}{
		{"bad span", y0, Span{1, 1}, []float64{1}, tol, ErrBadSpan},
		{"bad tolerance", y0, Span{0, 1}, []float64{1}, Tolerance{0, 1e-6}, ErrBadTolerance},
		{"empty samples", y0, Span{0, 1}, nil, tol, ErrBadSamples},
		{"decreasing samples", y0, Span{0, 1}, []float64{0.5, 0.2}, tol, ErrBadSamples},
		{"sample outside span", y0, Span{0, 1}, []float64{2}, tol, ErrBadSamples},
		{"dimension mismatch", []float64{1}, Span{0, 1}, []float64{1}, tol, ErrDimensionMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRK45().Solve(ctx, sys, tc.y0, tc.span, tc.samples, tc.tol)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRK45_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRK45().Solve(ctx, harmonicOscillator{}, []float64{1, 0}, Span{0, 100}, linspace(0, 100, 10), Tolerance{Rel: 1e-9, Abs: 1e-9})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
