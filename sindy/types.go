// Package sindy defines sentinel errors and configuration types for
// sparse identification of nonlinear dynamics.
package sindy

import "errors"

// Sentinel errors for library construction and sparse regression.
var (
	// ErrInvalidDegree indicates a polynomial degree below one.
	ErrInvalidDegree = errors.New("sindy: polynomial degree must be at least one")

	// ErrInvalidThreshold indicates a negative sparsity threshold.
	ErrInvalidThreshold = errors.New("sindy: sparsity threshold must be non-negative")

	// ErrTooFewSamples indicates insufficient rows for the requested fit.
	ErrTooFewSamples = errors.New("sindy: not enough samples")

	// ErrDimensionMismatch indicates inconsistent shapes between data,
	// derivatives, or evaluation points.
	ErrDimensionMismatch = errors.New("sindy: dimension mismatch")

	// ErrMissingDerivatives indicates that neither derivative data nor a
	// positive step size for finite differencing was supplied.
	ErrMissingDerivatives = errors.New("sindy: derivatives absent and no step size for finite differences")
)

// Defaults for the STLSQ optimizer.
const (
	// DefaultThreshold prunes coefficients below this magnitude.
	DefaultThreshold = 0.1

	// DefaultMaxIterations caps threshold-and-refit rounds.
	DefaultMaxIterations = 20
)
