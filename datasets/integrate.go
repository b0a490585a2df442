package datasets

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// EulerMaruyama integrates stochastic systems with the explicit
// Euler-Maruyama scheme, x <- x + h f(x) + sqrt(h) sigma xi. Runs with
// the same seed produce identical trajectories.
type EulerMaruyama struct {
	// StepSize is the integration step h.
	StepSize float64

	// Stride keeps every Stride-th step in the output; values below one
	// keep every step.
	Stride int

	// Seed initializes the noise generator.
	Seed uint64
}

// Trajectory integrates sys from x0 and returns n output samples as
// rows, the first being x0 itself.
func (em EulerMaruyama) Trajectory(sys StochasticSystem, x0 []float64, n int) (*mat.Dense, error) {
	if em.StepSize <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStepSize, em.StepSize)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStepCount, n)
	}
	dim := sys.Dim()
	if len(x0) != dim {
		return nil, fmt.Errorf("%w: initial state has %d entries, system has %d", ErrDimensionMismatch, len(x0), dim)
	}
	stride := em.Stride
	if stride < 1 {
		stride = 1
	}

	rng := rand.New(rand.NewPCG(em.Seed, 0x9e3779b97f4a7c15))
	noise := sys.Diffusion() * math.Sqrt(em.StepSize)

	out := mat.NewDense(n, dim, nil)
	x := append([]float64(nil), x0...)
	drift := make([]float64, dim)
	out.SetRow(0, x)
	for r := 1; r < n; r++ {
		for s := 0; s < stride; s++ {
			sys.Drift(drift, x)
			for d := 0; d < dim; d++ {
				x[d] += em.StepSize*drift[d] + noise*rng.NormFloat64()
			}
		}
		out.SetRow(r, x)
	}

	return out, nil
}

// RK4Trajectory integrates a deterministic system with the classic
// fourth-order Runge-Kutta scheme, returning n samples at step h as
// rows, the first being x0 itself.
func RK4Trajectory(sys System, x0 []float64, n int, h float64) (*mat.Dense, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStepSize, h)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStepCount, n)
	}
	dim := sys.Dim()
	if len(x0) != dim {
		return nil, fmt.Errorf("%w: initial state has %d entries, system has %d", ErrDimensionMismatch, len(x0), dim)
	}

	out := mat.NewDense(n, dim, nil)
	x := append([]float64(nil), x0...)
	k1 := make([]float64, dim)
	k2 := make([]float64, dim)
	k3 := make([]float64, dim)
	k4 := make([]float64, dim)
	scratch := make([]float64, dim)

	out.SetRow(0, x)
	for r := 1; r < n; r++ {
		sys.Drift(k1, x)
		for d := 0; d < dim; d++ {
			scratch[d] = x[d] + 0.5*h*k1[d]
		}
		sys.Drift(k2, scratch)
		for d := 0; d < dim; d++ {
			scratch[d] = x[d] + 0.5*h*k2[d]
		}
		sys.Drift(k3, scratch)
		for d := 0; d < dim; d++ {
			scratch[d] = x[d] + h*k3[d]
		}
		sys.Drift(k4, scratch)
		for d := 0; d < dim; d++ {
			x[d] += h / 6 * (k1[d] + 2*k2[d] + 2*k3[d] + k4[d])
		}
		out.SetRow(r, x)
	}

	return out, nil
}
