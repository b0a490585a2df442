package datasets

import "errors"

var (
	// ErrInvalidStepSize is returned when an integrator step size is not
	// strictly positive.
	ErrInvalidStepSize = errors.New("datasets: step size must be positive")

	// ErrInvalidStepCount is returned when fewer than one output sample
	// is requested.
	ErrInvalidStepCount = errors.New("datasets: step count must be at least 1")

	// ErrDimensionMismatch is returned when an initial state does not
	// match the system dimension.
	ErrDimensionMismatch = errors.New("datasets: dimension mismatch")

	// ErrInvalidLag is returned when a time shift is not strictly
	// positive or exceeds every trajectory length.
	ErrInvalidLag = errors.New("datasets: invalid lag")

	// ErrInvalidBins is returned when a discretization grid has fewer
	// than one bin or non-ascending edges.
	ErrInvalidBins = errors.New("datasets: invalid bin edges")
)

// System is a deterministic dynamical system x' = f(x). Drift writes
// f(x) into dst; both slices have length Dim.
type System interface {
	Dim() int
	Drift(dst, x []float64)
}

// StochasticSystem is a system with additive isotropic noise,
// dx = f(x) dt + sigma dW.
type StochasticSystem interface {
	System
	Diffusion() float64
}
