package integrate

import (
	"context"
	"math"
)

// Dormand-Prince 4(5) coefficients.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is an adaptive Dormand-Prince 4(5) solver. Step size is controlled
// to keep the embedded error estimate within atol + rtol*|y| per
// component; rejected steps are retried with a smaller h. Sample times are
// served by cubic Hermite interpolation over each accepted step, so dense
// output never constrains the step sequence.
type RK45 struct {
	Safety   float64
	MinScale float64
	MaxScale float64
	MinStep  float64
	MaxSteps int
}

func NewRK45() *RK45 {
	return &RK45{
		Safety:   0.9,
		MinScale: 0.2,
		MaxScale: 10.0,
		MinStep:  1e-12,
		MaxSteps: 10_000_000,
	}
}

func (r *RK45) Solve(ctx context.Context, sys System, y0 []float64, span Span, samples []float64, tol Tolerance) (*Solution, error) {
	if err := validate(sys, y0, span, samples, tol); err != nil {
		return nil, err
	}

	n := len(y0)
	y := make([]float64, n)
	copy(y, y0)
	if !allFinite(y) {
		return nil, &StepError{Time: span.T0, Step: 0, Wrapped: ErrInvalidState}
	}

	sol := &Solution{
		Times:  make([]float64, 0, len(samples)),
		States: make([][]float64, 0, len(samples)),
	}

	// Samples exactly at the start come straight from y0.
	si := 0
	for si < len(samples) && samples[si] == span.T0 {
		row := make([]float64, n)
		copy(row, y0)
		sol.Times = append(sol.Times, samples[si])
		sol.States = append(sol.States, row)
		si++
	}

	t := span.T0
	k1 := sys.Derive(t, y)
	sol.Evals++
	if !allFinite(k1) {
		return sol, &StepError{Time: t, Step: 0, Wrapped: ErrInvalidState}
	}

	h := (span.T1 - span.T0) / 100.0
	scratch := make([]float64, n)
	yNew := make([]float64, n)

	for t < span.T1 && si < len(samples) {
		select {
		case <-ctx.Done():
			return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ctx.Err()}
		default:
		}

		if sol.Steps+sol.Rejected >= r.MaxSteps {
			return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ErrTooManySteps}
		}
		if t+h > span.T1 {
			h = span.T1 - t
		}

		k7, errNorm := r.attempt(sys, t, h, y, k1, yNew, scratch, tol)
		sol.Evals += 6

		if math.IsNaN(errNorm) || errNorm > 1 {
			// Reject and shrink. A singular derivative (near-collision)
			// keeps producing NaN estimates until h underflows.
			sol.Rejected++
			scale := r.MinScale
			if !math.IsNaN(errNorm) {
				scale = math.Max(r.MinScale, r.Safety*math.Pow(errNorm, -0.25))
			}
			h *= scale
			if h < r.MinStep {
				return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ErrStepTooSmall}
			}
			continue
		}

		if !allFinite(yNew) {
			return sol, &StepError{Time: t, Step: sol.Steps, Wrapped: ErrInvalidState}
		}

		// Accepted: emit every sample inside (t, t+h].
		for si < len(samples) && samples[si] <= t+h {
			row := make([]float64, n)
			theta := (samples[si] - t) / h
			hermite(row, y, yNew, k1, k7, h, theta)
			sol.Times = append(sol.Times, samples[si])
			sol.States = append(sol.States, row)
			si++
		}

		t += h
		copy(y, yNew)
		k1 = k7 // FSAL
		sol.Steps++

		if errNorm > 0 {
			h *= math.Min(r.MaxScale, r.Safety*math.Pow(errNorm, -0.2))
		} else {
			h *= r.MaxScale
		}
	}

	// The last sample may sit exactly at T1 but miss the <= comparison by
	// one ulp of accumulated time; serve it from the final state.
	for si < len(samples) {
		row := make([]float64, n)
		copy(row, y)
		sol.Times = append(sol.Times, samples[si])
		sol.States = append(sol.States, row)
		si++
	}

	return sol, nil
}

// attempt performs one trial step of size h from (t, y) with k1 already
// evaluated. It fills yNew with the 5th-order result and returns the FSAL
// stage and the scaled error norm (<=1 means accept).
func (r *RK45) attempt(sys System, t, h float64, y, k1, yNew, scratch []float64, tol Tolerance) ([]float64, float64) {
	n := len(y)

	for i := 0; i < n; i++ {
		scratch[i] = y[i] + h*b21*k1[i]
	}
	k2 := sys.Derive(t+a2*h, scratch)

	for i := 0; i < n; i++ {
		scratch[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(t+a3*h, scratch)

	for i := 0; i < n; i++ {
		scratch[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(t+a4*h, scratch)

	for i := 0; i < n; i++ {
		scratch[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(t+a5*h, scratch)

	for i := 0; i < n; i++ {
		scratch[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(t+h, scratch)

	for i := 0; i < n; i++ {
		yNew[i] = y[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7 := sys.Derive(t+h, yNew)

	errNorm := 0.0
	for i := 0; i < n; i++ {
		est := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		sc := tol.Abs + tol.Rel*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		errNorm = math.Max(errNorm, math.Abs(est)/sc)
	}
	return k7, errNorm
}
