package analysis

import (
	"math"

	"github.com/ravn-k/threebody/internal/integrate"
)

// LyapunovExponent estimates the largest Lyapunov exponent by marching a
// reference and a slightly perturbed trajectory in lockstep and averaging
// the log of their separation growth, renormalizing to avoid overflow. A
// positive value indicates sensitive dependence on initial conditions.
func LyapunovExponent(sys integrate.System, y0 []float64, dt, duration, perturbation float64) float64 {
	if len(y0) == 0 || dt <= 0 || duration <= 0 || perturbation <= 0 {
		return 0
	}

	y := make([]float64, len(y0))
	yp := make([]float64, len(y0))
	copy(y, y0)
	copy(yp, y0)
	yp[0] += perturbation

	d0 := perturbation
	sumLog := 0.0
	count := 0

	for t := 0.0; t < duration; t += dt {
		y = integrate.StepRK4(sys, t, dt, y)
		yp = integrate.StepRK4(sys, t, dt, yp)

		sep := 0.0
		for i := range y {
			diff := yp[i] - y[i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}

		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
			// Renormalize the perturbed trajectory back to distance d0
			// along the current separation direction.
			scale := d0 / sep
			for i := range yp {
				yp[i] = y[i] + (yp[i]-y[i])*scale
			}
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
