// Package gravity models the gravitational three-body problem: three point
// masses under mutual Newtonian attraction, integrated with an adaptive
// solver and sampled at caller-chosen times.
package gravity

import (
	"context"
	"errors"

	"github.com/ravn-k/threebody/internal/integrate"
)

// Result is the outcome of one run. On success every requested sample time
// has a full row of three finite body positions; on failure no row past
// the last accepted step exists, and Message carries the solver
// diagnostic. Callers must check Success before trusting the trajectory.
type Result struct {
	Success bool
	Message string

	Times     []float64
	States    []State            // full state rows, aligned with Times
	Positions [NumBodies][]Vec3  // per-body position samples, aligned with Times

	Steps    int
	Rejected int
	Evals    int
}

// Simulate runs one three-body integration. Configuration problems are
// returned as an error before any solver work; integration failures (a
// near-collision singularity the step controller cannot resolve) come back
// as a Result with Success=false. The run is deterministic: identical
// configurations produce identical trajectories.
func Simulate(ctx context.Context, cfg Config) (*Result, error) {
	return SimulateWith(ctx, cfg, integrate.NewRK45())
}

// SimulateWith is Simulate with an explicit solver, used by the integrator
// comparison command and tests.
func SimulateWith(ctx context.Context, cfg Config, solver integrate.Solver) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sys := cfg.System()
	times := cfg.Times()

	sol, err := solver.Solve(ctx, sys, cfg.InitialState(),
		integrate.Span{T0: cfg.Start, T1: cfg.End}, times,
		integrate.Tolerance{Rel: cfg.Rtol, Abs: cfg.Atol})

	res := &Result{Success: err == nil}
	if sol != nil {
		res.Steps = sol.Steps
		res.Rejected = sol.Rejected
		res.Evals = sol.Evals
		res.Times = sol.Times
		res.States = make([]State, len(sol.States))
		for i := range sol.States {
			res.States[i] = State(sol.States[i])
		}
	}
	if err != nil {
		if errors.Is(err, integrate.ErrBadSamples) || errors.Is(err, integrate.ErrBadSpan) ||
			errors.Is(err, integrate.ErrBadTolerance) || errors.Is(err, integrate.ErrDimensionMismatch) {
			// Input problems are configuration errors, not failed runs.
			return nil, err
		}
		res.Message = err.Error()
		// Discard partial rows: a failed run exposes no trajectory.
		res.Times = nil
		res.States = nil
		return res, nil
	}

	for b := 0; b < NumBodies; b++ {
		res.Positions[b] = make([]Vec3, len(res.States))
		for i, st := range res.States {
			res.Positions[b][i] = st.Position(b)
		}
	}
	return res, nil
}
