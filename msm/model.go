package msm

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// MarkovStateModel is an immutable Markov state model: a row-stochastic
// transition matrix at a fixed lag time together with its stationary
// distribution.
type MarkovStateModel struct {
	p          *mat.Dense
	pi         []float64
	lag        int
	reversible bool
}

// newModel takes ownership of p and pi.
func newModel(p *mat.Dense, pi []float64, lag int, reversible bool) *MarkovStateModel {
	return &MarkovStateModel{p: p, pi: pi, lag: lag, reversible: reversible}
}

// NStates returns the number of states.
func (m *MarkovStateModel) NStates() int {
	n, _ := m.p.Dims()

	return n
}

// Lagtime returns the lag time of the underlying counts, in trajectory
// time steps.
func (m *MarkovStateModel) Lagtime() int { return m.lag }

// Reversible reports whether the model was estimated under the
// detailed-balance constraint.
func (m *MarkovStateModel) Reversible() bool { return m.reversible }

// TransitionMatrix returns a read-only view of the transition matrix.
func (m *MarkovStateModel) TransitionMatrix() mat.Matrix {
	return m.p
}

// StationaryDistribution returns a copy of the stationary distribution.
func (m *MarkovStateModel) StationaryDistribution() []float64 {
	out := make([]float64, len(m.pi))
	copy(out, m.pi)

	return out
}

// Eigenvalues returns the eigenvalues of the transition matrix sorted by
// modulus, descending. The leading eigenvalue of a stochastic matrix is
// one (up to numerical error).
func (m *MarkovStateModel) Eigenvalues() []complex128 {
	var eig mat.Eigen
	if ok := eig.Factorize(m.p, mat.EigenNone); !ok {
		// Factorization of a finite stochastic matrix does not fail in
		// practice; surface an empty spectrum rather than panicking.
		return nil
	}
	values := eig.Values(nil)
	sort.SliceStable(values, func(a, b int) bool {
		return cmplx.Abs(values[a]) > cmplx.Abs(values[b])
	})

	return values
}

// Timescales returns the k leading implied relaxation timescales
//
//	t_i = -lag / ln|lambda_i|
//
// computed from the eigenvalues after the stationary one. Eigenvalues
// with modulus >= 1 map to +Inf. If fewer than k non-stationary
// eigenvalues exist, the result is correspondingly shorter.
func (m *MarkovStateModel) Timescales(k int) []float64 {
	values := m.Eigenvalues()
	if len(values) <= 1 || k <= 0 {
		return nil
	}
	rest := values[1:]
	if k < len(rest) {
		rest = rest[:k]
	}

	out := make([]float64, len(rest))
	for i, v := range rest {
		modulus := cmplx.Abs(v)
		switch {
		case modulus >= 1:
			out[i] = math.Inf(1)
		case modulus == 0:
			out[i] = 0
		default:
			out[i] = -float64(m.lag) / math.Log(modulus)
		}
	}

	return out
}

// Propagate evolves an initial distribution k lag steps forward and
// returns the resulting distribution. Returns ErrDimensionMismatch when
// p0 does not match the state count.
func (m *MarkovStateModel) Propagate(p0 []float64, k int) ([]float64, error) {
	n := m.NStates()
	if len(p0) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(p0), n)
	}

	cur := make([]float64, n)
	copy(cur, p0)
	next := make([]float64, n)
	for step := 0; step < k; step++ {
		for j := 0; j < n; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += cur[i] * m.p.At(i, j)
			}
			next[j] = s
		}
		cur, next = next, cur
	}

	return cur, nil
}
