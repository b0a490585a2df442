package msm

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lagtime/lagtime/markov"
)

// TransitionMatrixSampler draws transition matrices from the posterior
// distribution implied by a transition count matrix under the sparse
// prior: each row is an independent Dirichlet with the observed counts
// as concentration parameters, so transitions that were never observed
// keep probability zero in every sample.
//
// Samples are non-reversible. The sampler is deterministic for a fixed
// seed; it is not safe for concurrent use.
type TransitionMatrixSampler struct {
	alpha *mat.Dense // Dirichlet concentrations, one row per state
	lag   int
	src   *rand.PCG
	tol   float64
	iters int
}

// NewTransitionMatrixSampler validates the count model and prepares a
// seeded sampler. Every state needs outgoing counts
// (ErrCountsNotConnected otherwise).
func NewTransitionMatrixSampler(counts *markov.TransitionCountModel, seed uint64) (*TransitionMatrixSampler, error) {
	if counts == nil {
		return nil, ErrNilCountModel
	}

	n := counts.NStates()
	c := counts.CountMatrix()
	alpha := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			alpha.Set(i, j, c.At(i, j))
			rowSum += c.At(i, j)
		}
		if rowSum <= 0 {
			return nil, fmt.Errorf("%w: state %d", ErrCountsNotConnected, i)
		}
	}

	return &TransitionMatrixSampler{
		alpha: alpha,
		lag:   counts.Lagtime(),
		src:   rand.NewPCG(seed, 0x9e3779b97f4a7c15),
		tol:   DefaultTolerance,
		iters: DefaultMaxIterations,
	}, nil
}

// Sample draws n transition matrices and wraps each in a
// MarkovStateModel with its own stationary distribution.
func (s *TransitionMatrixSampler) Sample(n int) ([]*MarkovStateModel, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleCount, n)
	}

	models := make([]*MarkovStateModel, n)
	for k := 0; k < n; k++ {
		p := s.sampleMatrix()
		pi := stationaryByPower(p, s.tol, s.iters)
		models[k] = newModel(p, pi, s.lag, false)
	}

	return models, nil
}

// sampleMatrix draws one row-stochastic matrix via normalized Gamma
// variates (the standard Dirichlet construction). Zero concentrations
// yield exact zeros, preserving the count matrix sparsity pattern.
func (s *TransitionMatrixSampler) sampleMatrix() *mat.Dense {
	n, _ := s.alpha.Dims()
	p := mat.NewDense(n, n, nil)
	row := make([]float64, n)

	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			a := s.alpha.At(i, j)
			if a == 0 {
				row[j] = 0
				continue
			}
			g := distuv.Gamma{Alpha: a, Beta: 1, Src: s.src}
			row[j] = g.Rand()
			sum += row[j]
		}
		for j := 0; j < n; j++ {
			p.Set(i, j, row[j]/sum)
		}
	}

	return p
}

// TimescaleStatistics aggregates the k leading implied timescales over a
// sample of models and returns their means and standard deviations.
// Non-finite timescale samples (eigenvalues pinned at modulus one) are
// excluded per index; an index with no finite sample reports +Inf mean
// and NaN deviation.
func TimescaleStatistics(models []*MarkovStateModel, k int) (mean, std []float64) {
	mean = make([]float64, k)
	std = make([]float64, k)
	buckets := make([][]float64, k)

	for _, m := range models {
		for i, ts := range m.Timescales(k) {
			if math.IsInf(ts, 0) || math.IsNaN(ts) {
				continue
			}
			buckets[i] = append(buckets[i], ts)
		}
	}

	for i, b := range buckets {
		if len(b) == 0 {
			mean[i] = math.Inf(1)
			std[i] = math.NaN()
			continue
		}
		mean[i] = stat.Mean(b, nil)
		std[i] = stat.StdDev(b, nil)
	}

	return mean, std
}
