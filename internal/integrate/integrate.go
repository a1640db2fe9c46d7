// Package integrate provides numerical ODE solvers with fixed-time
// sampling. Solvers treat the system's derivative function as a black box
// and guarantee monotonic time progression: output rows are appended only
// from accepted steps, so a failed run never contains partial samples.
package integrate

import (
	"context"
	"errors"
	"fmt"
)

// System is an autonomous-or-not ODE right-hand side dy/dt = f(t, y).
// Derive must be stateless: solvers re-evaluate it near previously visited
// times during step rejection.
type System interface {
	Derive(t float64, y []float64) []float64
	Dim() int
}

// Span is the integration interval [T0, T1], T0 < T1.
type Span struct {
	T0, T1 float64
}

// Tolerance bounds the local truncation error per step. Both components
// must be strictly positive.
type Tolerance struct {
	Rel, Abs float64
}

// Solution holds the states sampled at the requested times, in order.
type Solution struct {
	Times    []float64
	States   [][]float64
	Steps    int // accepted steps
	Rejected int // rejected step attempts
	Evals    int // derivative evaluations
}

// Solver integrates a system over a span, producing output at the given
// monotonically non-decreasing sample times inside the span.
type Solver interface {
	Solve(ctx context.Context, sys System, y0 []float64, span Span, samples []float64, tol Tolerance) (*Solution, error)
}

// Domain errors for solver operations.
var (
	// ErrStepTooSmall indicates the adaptive step size collapsed below the
	// minimum, typically because of a singularity in the derivative.
	ErrStepTooSmall = errors.New("integrate: adaptive step below minimum")

	// ErrInvalidState indicates NaN or Inf appeared in the state.
	ErrInvalidState = errors.New("integrate: invalid state (NaN or Inf)")

	// ErrTooManySteps indicates the step budget was exhausted.
	ErrTooManySteps = errors.New("integrate: step budget exhausted")

	// ErrBadSpan indicates a span with T1 <= T0.
	ErrBadSpan = errors.New("integrate: time span end must exceed start")

	// ErrBadTolerance indicates a non-positive error tolerance.
	ErrBadTolerance = errors.New("integrate: tolerances must be positive")

	// ErrBadSamples indicates sample times that are empty, decreasing, or
	// outside the span.
	ErrBadSamples = errors.New("integrate: sample times must be non-decreasing and inside the span")

	// ErrDimensionMismatch indicates len(y0) != sys.Dim().
	ErrDimensionMismatch = errors.New("integrate: state dimension mismatch")
)

// StepError wraps a solver failure with the time and step at which it
// occurred.
type StepError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }

func validate(sys System, y0 []float64, span Span, samples []float64, tol Tolerance) error {
	if len(y0) != sys.Dim() {
		return fmt.Errorf("%w: len(y0)=%d, system wants %d", ErrDimensionMismatch, len(y0), sys.Dim())
	}
	if span.T1 <= span.T0 {
		return fmt.Errorf("%w: [%g, %g]", ErrBadSpan, span.T0, span.T1)
	}
	if tol.Rel <= 0 || tol.Abs <= 0 {
		return fmt.Errorf("%w: rtol=%g atol=%g", ErrBadTolerance, tol.Rel, tol.Abs)
	}
	if len(samples) == 0 {
		return fmt.Errorf("%w: empty", ErrBadSamples)
	}
	prev := span.T0
	for i, ts := range samples {
		if ts < prev || ts > span.T1 {
			return fmt.Errorf("%w: samples[%d]=%g", ErrBadSamples, i, ts)
		}
		prev = ts
	}
	return nil
}

func allFinite(y []float64) bool {
	for _, v := range y {
		if v != v || v > maxFloat || v < -maxFloat {
			return false
		}
	}
	return true
}

const maxFloat = 1.7976931348623157e308

// hermite evaluates the cubic Hermite interpolant between (t0,y0,f0) and
// (t0+h,y1,f1) at fraction theta in [0,1], writing into out.
func hermite(out, y0, y1, f0, f1 []float64, h, theta float64) {
	t2 := theta * theta
	h00 := 2*t2*theta - 3*t2 + 1
	h10 := t2*theta - 2*t2 + theta
	h01 := -2*t2*theta + 3*t2
	h11 := t2*theta - t2
	for i := range out {
		out[i] = h00*y0[i] + h10*h*f0[i] + h01*y1[i] + h11*h*f1[i]
	}
}
