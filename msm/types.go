// Package msm defines sentinel errors and shared configuration for
// Markov state model estimation.
package msm

import "errors"

// Sentinel errors for MSM estimation and sampling.
var (
	// ErrNilCountModel indicates a nil transition-count model input.
	ErrNilCountModel = errors.New("msm: transition count model is nil")

	// ErrCountsNotConnected indicates a count matrix with states lacking
	// outgoing counts. Restrict to the largest connected set first, e.g.
	// via markov.SubmodelLargest.
	ErrCountsNotConnected = errors.New("msm: count matrix has states without outgoing counts")

	// ErrNotConverged indicates that the reversible maximum-likelihood
	// iteration did not reach the requested tolerance.
	ErrNotConverged = errors.New("msm: reversible estimation did not converge")

	// ErrInvalidSampleCount indicates a non-positive number of requested
	// posterior samples.
	ErrInvalidSampleCount = errors.New("msm: number of samples must be positive")

	// ErrDimensionMismatch indicates a vector whose length does not match
	// the model's state count.
	ErrDimensionMismatch = errors.New("msm: vector length does not match the number of states")
)

// Default tolerances for the reversible maximum-likelihood iteration and
// the stationary-distribution fixed point.
const (
	// DefaultTolerance bounds the stationary-distribution change between
	// successive iterations.
	DefaultTolerance = 1e-12

	// DefaultMaxIterations caps fixed-point iterations.
	DefaultMaxIterations = 1_000_000
)
