package markov

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TransitionCountEstimator counts transitions in discrete trajectories
// at a fixed lag time. The estimator itself is an immutable
// configuration value; CountTransitions produces an immutable
// TransitionCountModel and leaves the estimator untouched.
type TransitionCountEstimator struct {
	lag     int
	mode    CountingMode
	nStates int // 0 => infer from the largest observed symbol
}

// EstimatorOption configures a TransitionCountEstimator.
type EstimatorOption func(*TransitionCountEstimator)

// WithStateCount fixes the number of states to at least n, regardless of
// the largest symbol actually observed. Useful when several trajectory
// batches over a common state space are counted separately. Values below
// one are ignored.
func WithStateCount(n int) EstimatorOption {
	return func(e *TransitionCountEstimator) {
		if n >= 1 {
			e.nStates = n
		}
	}
}

// NewTransitionCountEstimator validates the lag time and counting mode
// and returns an estimator. Returns ErrInvalidLagtime for lag < 1 and
// ErrUnknownCountingMode for modes outside the defined set.
func NewTransitionCountEstimator(lag int, mode CountingMode, opts ...EstimatorOption) (*TransitionCountEstimator, error) {
	if lag < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLagtime, lag)
	}
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCountingMode, int(mode))
	}

	est := &TransitionCountEstimator{lag: lag, mode: mode}
	for _, opt := range opts {
		opt(est)
	}

	return est, nil
}

// Lagtime returns the configured lag time.
func (e *TransitionCountEstimator) Lagtime() int { return e.lag }

// Mode returns the configured counting mode.
func (e *TransitionCountEstimator) Mode() CountingMode { return e.mode }

// CountTransitions builds a root TransitionCountModel from one or more
// discrete trajectories. Counts accumulate additively across
// trajectories; pairs never cross a trajectory boundary. The model is
// either fully built or not built at all: any validation failure leaves
// no partial state behind.
//
// Errors: ErrNoTrajectories when no trajectory is given,
// ErrNegativeSymbol on negative symbols, ErrInvalidLagtime when some
// trajectory is too short to contribute a single transition pair at the
// configured lag.
func (e *TransitionCountEstimator) CountTransitions(dtrajs ...[]int) (*TransitionCountModel, error) {
	if len(dtrajs) == 0 {
		return nil, ErrNoTrajectories
	}

	nStates := e.nStates
	for ti, dtraj := range dtrajs {
		if len(dtraj) <= e.lag {
			return nil, fmt.Errorf("%w: lag %d, trajectory %d has length %d", ErrInvalidLagtime, e.lag, ti, len(dtraj))
		}
		for t, sym := range dtraj {
			if sym < 0 {
				return nil, fmt.Errorf("%w: symbol %d at trajectory %d, frame %d", ErrNegativeSymbol, sym, ti, t)
			}
			if sym+1 > nStates {
				nStates = sym + 1
			}
		}
	}

	counts := mat.NewDense(nStates, nStates, nil)
	hist := make([]int64, nStates)
	for _, dtraj := range dtrajs {
		for _, sym := range dtraj {
			hist[sym]++
		}
		e.accumulate(counts, dtraj)
	}

	if e.mode == CountSlidingEffective {
		scaleRows(counts, uniformScale(nStates, 1/float64(e.lag)))
	}
	if e.mode == CountEffective {
		scaleRows(counts, inverseInefficiencies(dtrajs, nStates))
	}

	symbols := make([]int, nStates)
	for i := range symbols {
		symbols[i] = i
	}

	return newCountModel(counts, hist, e.lag, e.mode, symbols), nil
}

// accumulate adds the transition pairs of a single trajectory to counts,
// according to the pairing rule of the counting mode.
func (e *TransitionCountEstimator) accumulate(counts *mat.Dense, dtraj []int) {
	tau := e.lag
	switch e.mode {
	case CountSample:
		// Stride the trajectory at tau, then count successive pairs.
		for t := 0; t+tau < len(dtraj); t += tau {
			bump(counts, dtraj[t], dtraj[t+tau])
		}
	case CountSliding, CountSlidingEffective, CountEffective:
		for t := 0; t+tau < len(dtraj); t++ {
			bump(counts, dtraj[t], dtraj[t+tau])
		}
	}
}

// bump increments a single count matrix cell.
func bump(counts *mat.Dense, i, j int) {
	counts.Set(i, j, counts.At(i, j)+1)
}

// scaleRows multiplies every entry of row i by factor[i].
func scaleRows(counts *mat.Dense, factor []float64) {
	n, _ := counts.Dims()
	for i := 0; i < n; i++ {
		if factor[i] == 1 {
			continue
		}
		for j := 0; j < n; j++ {
			counts.Set(i, j, counts.At(i, j)*factor[i])
		}
	}
}

// uniformScale returns a constant per-row scale vector.
func uniformScale(n int, s float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s
	}

	return out
}

// inverseInefficiencies estimates, per state, the reciprocal statistical
// inefficiency 1/g of the state's indicator time series, pooled over all
// trajectories by length. Effective counting scales row i of the sliding
// count matrix by 1/g_i so that the rescaled counts approximate the
// information content of independent samples.
//
// g is estimated with the initial-positive-sequence estimator:
// g = 1 + 2*sum_k rho_k, where rho_k is the lag-k autocorrelation of the
// indicator series and the sum runs until the first non-positive term
// (capped at half the trajectory length).
func inverseInefficiencies(dtrajs [][]int, nStates int) []float64 {
	inv := make([]float64, nStates)
	weight := make([]float64, nStates)
	for i := range inv {
		inv[i] = 1
	}

	g := make([]float64, nStates)
	for state := 0; state < nStates; state++ {
		var gSum, wSum float64
		for _, dtraj := range dtrajs {
			if gt, ok := indicatorInefficiency(dtraj, state); ok {
				gSum += gt * float64(len(dtraj))
				wSum += float64(len(dtraj))
			}
		}
		if wSum > 0 {
			g[state] = gSum / wSum
			weight[state] = wSum
		}
	}

	for state := 0; state < nStates; state++ {
		if weight[state] > 0 && g[state] > 1 {
			inv[state] = 1 / g[state]
		}
	}

	return inv
}

// indicatorInefficiency computes the statistical inefficiency of the
// {0,1} indicator series of one state within one trajectory. The second
// return value is false when the indicator is constant (never or always
// in the state), in which case no inefficiency is defined.
func indicatorInefficiency(dtraj []int, state int) (float64, bool) {
	n := len(dtraj)
	var mean float64
	for _, sym := range dtraj {
		if sym == state {
			mean++
		}
	}
	mean /= float64(n)
	variance := mean * (1 - mean)
	if variance == 0 {
		return 0, false
	}

	ind := func(t int) float64 {
		if dtraj[t] == state {
			return 1
		}

		return 0
	}

	g := 1.0
	for k := 1; k <= n/2; k++ {
		var cov float64
		for t := 0; t+k < n; t++ {
			cov += (ind(t) - mean) * (ind(t+k) - mean)
		}
		cov /= float64(n - k)
		rho := cov / variance
		if rho <= 0 {
			break
		}
		g += 2 * rho
	}

	return g, true
}
