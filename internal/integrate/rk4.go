package integrate

import (
	"context"
	"fmt"
)

// StepRK4 advances y by a single classic 4th-order Runge-Kutta step of
// size h. Analysis code uses it to march paired trajectories in lockstep.
func StepRK4(sys System, t, h float64, y []float64) []float64 {
	n := len(y)
	k1 := sys.Derive(t, y)
	scratch := make([]float64, n)
	for i := 0; i < n; i++ {
		scratch[i] = y[i] + 0.5*h*k1[i]
	}
	k2 := sys.Derive(t+0.5*h, scratch)
	for i := 0; i < n; i++ {
		scratch[i] = y[i] + 0.5*h*k2[i]
	}
	k3 := sys.Derive(t+0.5*h, scratch)
	for i := 0; i < n; i++ {
		scratch[i] = y[i] + h*k3[i]
	}
	k4 := sys.Derive(t+h, scratch)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = y[i] + h/6.0*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

// RK4 is the classic fixed-step 4th-order Runge-Kutta solver. It ignores
// the error tolerance (no step control) and is kept for cross-checking the
// adaptive solver; sample times are served by cubic Hermite interpolation
// between grid points.
type RK4 struct {
	Dt       float64
	MaxSteps int
}

func NewRK4(dt float64) *RK4 {
	return &RK4{Dt: dt, MaxSteps: 50_000_000}
}

func (r *RK4) Solve(ctx context.Context, sys System, y0 []float64, span Span, samples []float64, tol Tolerance) (*Solution, error) {
	if err := validate(sys, y0, span, samples, tol); err != nil {
		return nil, err
	}
	if r.Dt <= 0 {
		return nil, fmt.Errorf("integrate: rk4 dt must be positive, got %g", r.Dt)
	}

	n := len(y0)
	y := make([]float64, n)
	copy(y, y0)

	sol := &Solution{
		Times:  make([]float64, 0, len(samples)),
		States: make([][]float64, 0, len(samples)),
	}

	si := 0
	for si < len(samples) && samples[si] == span.T0 {
		row := make([]float64, n)
		copy(row, y0)
		sol.Times = append(sol.Times, samples[si])
		sol.States = append(sol.States, row)
		si++
	}

	t := span.T0
	f0 := sys.Derive(t, y)
	sol.Evals++

	yNew := make([]float64, n)
	scratch := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)

	for t < span.T1 && si < len(samples) {
		select {
		case <-ctx.Done():
			return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ctx.Err()}
		default:
		}
		if sol.Steps >= r.MaxSteps {
			return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ErrTooManySteps}
		}

		h := r.Dt
		if t+h > span.T1 {
			h = span.T1 - t
		}

		for i := 0; i < n; i++ {
			scratch[i] = y[i] + 0.5*h*f0[i]
		}
		copy(k2, sys.Derive(t+0.5*h, scratch))
		for i := 0; i < n; i++ {
			scratch[i] = y[i] + 0.5*h*k2[i]
		}
		copy(k3, sys.Derive(t+0.5*h, scratch))
		for i := 0; i < n; i++ {
			scratch[i] = y[i] + h*k3[i]
		}
		k4 := sys.Derive(t+h, scratch)
		sol.Evals += 3

		for i := 0; i < n; i++ {
			yNew[i] = y[i] + h/6.0*(f0[i]+2*k2[i]+2*k3[i]+k4[i])
		}
		if !allFinite(yNew) {
			return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ErrInvalidState}
		}

		f1 := sys.Derive(t+h, yNew)
		sol.Evals++

		for si < len(samples) && samples[si] <= t+h {
			row := make([]float64, n)
			theta := (samples[si] - t) / h
			hermite(row, y, yNew, f0, f1, h, theta)
			sol.Times = append(sol.Times, samples[si])
			sol.States = append(sol.States, row)
			si++
		}

		t += h
		copy(y, yNew)
		copy(f0, f1)
		sol.Steps++
	}

	for si < len(samples) {
		row := make([]float64, n)
		copy(row, y)
		sol.Times = append(sol.Times, samples[si])
		sol.States = append(sol.States, row)
		si++
	}

	return sol, nil
}
