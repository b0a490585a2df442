package clustering

import "errors"

var (
	// ErrInvalidK is returned when the requested number of clusters is
	// not strictly positive.
	ErrInvalidK = errors.New("clustering: cluster count must be at least 1")

	// ErrTooFewPoints is returned when the data has fewer points than
	// requested clusters.
	ErrTooFewPoints = errors.New("clustering: fewer points than clusters")

	// ErrDimensionMismatch is returned when a point does not match the
	// dimension of the fitted centers.
	ErrDimensionMismatch = errors.New("clustering: dimension mismatch")
)

const (
	// DefaultTolerance stops Lloyd iterations when no center moves
	// farther than this.
	DefaultTolerance = 1e-8

	// DefaultMaxIterations caps Lloyd iterations.
	DefaultMaxIterations = 300
)
