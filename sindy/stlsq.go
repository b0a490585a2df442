package sindy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// STLSQ is the sequentially thresholded least-squares optimizer: solve
// the least-squares problem, zero every coefficient with magnitude
// below Threshold, and re-solve restricted to the surviving features
// until the support is stable.
type STLSQ struct {
	// Threshold prunes coefficients with |xi| < Threshold.
	Threshold float64

	// MaxIterations caps threshold-and-refit rounds.
	MaxIterations int

	// Ridge adds an L2 penalty to each solve, stabilizing
	// ill-conditioned libraries. Zero disables it.
	Ridge float64
}

// DefaultSTLSQ returns the standard optimizer settings.
func DefaultSTLSQ() STLSQ {
	return STLSQ{Threshold: DefaultThreshold, MaxIterations: DefaultMaxIterations, Ridge: 0}
}

// fit solves for the coefficient matrix Xi (features x targets) in
// Theta * Xi ~ y, one target column at a time.
func (o STLSQ) fit(theta, y *mat.Dense) (*mat.Dense, error) {
	if o.Threshold < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, o.Threshold)
	}
	maxIter := o.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	rows, features := theta.Dims()
	yRows, targets := y.Dims()
	if rows != yRows {
		return nil, fmt.Errorf("%w: %d design rows vs %d target rows", ErrDimensionMismatch, rows, yRows)
	}
	if rows < features {
		return nil, fmt.Errorf("%w: %d samples for %d features", ErrTooFewSamples, rows, features)
	}

	xi := mat.NewDense(features, targets, nil)
	for col := 0; col < targets; col++ {
		weights, err := o.fitColumn(theta, y.ColView(col))
		if err != nil {
			return nil, err
		}
		for f := 0; f < features; f++ {
			xi.Set(f, col, weights[f])
		}
	}

	return xi, nil
}

// fitColumn runs the threshold-and-refit loop for a single target.
func (o STLSQ) fitColumn(theta *mat.Dense, y mat.Vector) ([]float64, error) {
	_, features := theta.Dims()
	active := make([]int, features)
	for f := range active {
		active[f] = f
	}

	weights := make([]float64, features)
	maxIter := o.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	for iter := 0; iter < maxIter; iter++ {
		if len(active) == 0 {
			return weights, nil // every candidate was pruned: the zero function
		}

		sol, err := o.solve(theta, y, active)
		if err != nil {
			return nil, err
		}

		var survivors []int
		for i := range weights {
			weights[i] = 0
		}
		for k, f := range active {
			if math.Abs(sol[k]) >= o.Threshold {
				weights[f] = sol[k]
				survivors = append(survivors, f)
			}
		}
		if len(survivors) == len(active) {
			return weights, nil // support is stable
		}
		active = survivors
	}

	return weights, nil
}

// solve computes the (optionally ridge-regularized) least-squares
// solution restricted to the active feature columns.
func (o STLSQ) solve(theta *mat.Dense, y mat.Vector, active []int) ([]float64, error) {
	rows, _ := theta.Dims()
	k := len(active)

	extra := 0
	if o.Ridge > 0 {
		extra = k
	}
	a := mat.NewDense(rows+extra, k, nil)
	b := mat.NewVecDense(rows+extra, nil)
	for r := 0; r < rows; r++ {
		for c, f := range active {
			a.Set(r, c, theta.At(r, f))
		}
		b.SetVec(r, y.AtVec(r))
	}
	if o.Ridge > 0 {
		// Augmented rows sqrt(ridge)*I implement the L2 penalty within a
		// plain least-squares solve.
		s := math.Sqrt(o.Ridge)
		for c := 0; c < k; c++ {
			a.Set(rows+c, c, s)
		}
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("sindy: least squares solve: %w", err)
	}

	out := make([]float64, k)
	for i := 0; i < k; i++ {
		out[i] = sol.AtVec(i)
	}

	return out, nil
}
