package msm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lagtime/lagtime/markov"
)

// MaximumLikelihoodEstimator fits a MarkovStateModel to a transition
// count matrix.
//
// Without the reversibility constraint the maximum-likelihood transition
// matrix is the row-normalized count matrix. With Reversible, the
// estimator runs the classic self-consistent iteration on the symmetric
// flow variables
//
//	x_ij <- (c_ij + c_ji) / (c_i/x_i + c_j/x_j)
//
// until the implied stationary distribution is stable, which yields the
// maximum-likelihood transition matrix satisfying detailed balance.
type MaximumLikelihoodEstimator struct {
	// Reversible enforces detailed balance on the estimate.
	Reversible bool

	// Tolerance bounds the stationary-distribution change between
	// iterations of the reversible fixed point.
	Tolerance float64

	// MaxIterations caps the reversible fixed point.
	MaxIterations int
}

// DefaultMaximumLikelihoodEstimator returns a non-reversible estimator
// with the default tolerances.
func DefaultMaximumLikelihoodEstimator() MaximumLikelihoodEstimator {
	return MaximumLikelihoodEstimator{
		Reversible:    false,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Fit estimates a MarkovStateModel from the given count model.
//
// Every state must have outgoing count mass (ErrCountsNotConnected
// otherwise); callers typically restrict to the largest connected set
// first. The count model is read through its public accessors only and
// is not modified.
func (e MaximumLikelihoodEstimator) Fit(counts *markov.TransitionCountModel) (*MarkovStateModel, error) {
	if counts == nil {
		return nil, ErrNilCountModel
	}

	n := counts.NStates()
	c := counts.CountMatrix()
	rowSums := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rowSums[i] += c.At(i, j)
		}
		if rowSums[i] <= 0 {
			return nil, fmt.Errorf("%w: state %d", ErrCountsNotConnected, i)
		}
	}

	tol := e.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxIter := e.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	if !e.Reversible {
		p := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				p.Set(i, j, c.At(i, j)/rowSums[i])
			}
		}
		pi := stationaryByPower(p, tol, maxIter)

		return newModel(p, pi, counts.Lagtime(), false), nil
	}

	return e.fitReversible(c, rowSums, counts.Lagtime(), tol, maxIter)
}

// fitReversible runs the detailed-balance fixed point on the symmetric
// flows x_ij, starting from C + C^T.
func (e MaximumLikelihoodEstimator) fitReversible(c mat.Matrix, rowSums []float64, lag int, tol float64, maxIter int) (*MarkovStateModel, error) {
	n := len(rowSums)
	x := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x.Set(i, j, c.At(i, j)+c.At(j, i))
		}
	}

	xi := make([]float64, n)
	piPrev := make([]float64, n)
	pi := make([]float64, n)
	next := mat.NewDense(n, n, nil)

	for iter := 0; iter < maxIter; iter++ {
		sumRowsInto(x, xi)
		normalizeInto(pi, xi)

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				num := c.At(i, j) + c.At(j, i)
				if num == 0 {
					next.Set(i, j, 0)
					continue
				}
				den := rowSums[i]/xi[i] + rowSums[j]/xi[j]
				next.Set(i, j, num/den)
			}
		}
		x, next = next, x

		if iter > 0 && maxAbsDiff(pi, piPrev) < tol {
			sumRowsInto(x, xi)
			normalizeInto(pi, xi)
			p := mat.NewDense(n, n, nil)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					p.Set(i, j, x.At(i, j)/xi[i])
				}
			}

			return newModel(p, pi, lag, true), nil
		}
		copy(piPrev, pi)
	}

	return nil, fmt.Errorf("%w after %d iterations", ErrNotConverged, maxIter)
}

// stationaryByPower computes the stationary distribution of a stochastic
// matrix by fixed-point iteration of pi <- pi P from the uniform start.
// Deterministic; converges for irreducible aperiodic chains and is
// tolerant of mild periodicity through averaging with the previous
// iterate.
func stationaryByPower(p *mat.Dense, tol float64, maxIter int) []float64 {
	n, _ := p.Dims()
	pi := make([]float64, n)
	next := make([]float64, n)
	for i := range pi {
		pi[i] = 1 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		for j := 0; j < n; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += pi[i] * p.At(i, j)
			}
			next[j] = s
		}
		// Damping step: guards against oscillation on periodic chains.
		for j := 0; j < n; j++ {
			next[j] = 0.5 * (next[j] + pi[j])
		}
		normalizeInto(next, next)

		if maxAbsDiff(next, pi) < tol {
			copy(pi, next)

			break
		}
		copy(pi, next)
	}

	return pi
}

// sumRowsInto writes the row sums of m into out.
func sumRowsInto(m *mat.Dense, out []float64) {
	n, cols := m.Dims()
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < cols; j++ {
			s += m.At(i, j)
		}
		out[i] = s
	}
}

// normalizeInto writes v scaled to unit sum into out (aliasing allowed).
func normalizeInto(out, v []float64) {
	var s float64
	for _, x := range v {
		s += x
	}
	for i := range v {
		out[i] = v[i] / s
	}
}

// maxAbsDiff returns the maximum elementwise absolute difference.
func maxAbsDiff(a, b []float64) float64 {
	var m float64
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > m {
			m = d
		}
	}

	return m
}
