// Package markov defines core types, options, and sentinel errors for
// transition counting over discrete trajectories.
package markov

import (
	"errors"
	"fmt"
)

// Sentinel errors for transition counting and submodel extraction.
var (
	// ErrInvalidLagtime indicates a non-positive lag time, or a lag time
	// that leaves no complete transition pair in some input trajectory.
	ErrInvalidLagtime = errors.New("markov: lag time must be positive and shorter than every trajectory")

	// ErrUnknownCountingMode indicates a CountingMode outside the defined set.
	ErrUnknownCountingMode = errors.New("markov: unknown counting mode")

	// ErrNoTrajectories indicates that no input trajectory was supplied.
	ErrNoTrajectories = errors.New("markov: at least one discrete trajectory is required")

	// ErrNegativeSymbol indicates a trajectory element below zero.
	ErrNegativeSymbol = errors.New("markov: discrete trajectories must contain non-negative symbols")

	// ErrInvalidStateSelection indicates a submodel selection containing
	// duplicates or states outside the model's state range.
	ErrInvalidStateSelection = errors.New("markov: state selection must be duplicate-free and within the state range")

	// ErrEmptyConnectedSet indicates that no connected set satisfies the
	// requested connectivity constraint.
	ErrEmptyConnectedSet = errors.New("markov: no connected set satisfies the connectivity constraint")
)

// CountingMode selects how transition pairs are extracted from a
// trajectory of length T at lag tau.
//
//   - CountSample: non-overlapping strided pairs (k*tau -> (k+1)*tau).
//     Yields floor((T-1)/tau) pairs; a tail shorter than tau is dropped.
//     Statistically conservative.
//   - CountSliding: overlapping pairs (t -> t+tau) for t = 0..T-tau-1.
//     Yields T-tau pairs. Inflates counts by roughly a factor of tau
//     relative to CountSample when used in likelihood estimation; this
//     is a documented caveat and is not corrected here.
//   - CountSlidingEffective: same pairing as CountSliding, with the
//     accumulated matrix divided elementwise by tau. Approximates the
//     count scale of statistically independent samples in the
//     large-data limit.
//   - CountEffective: sliding counts rescaled per origin state by the
//     reciprocal statistical inefficiency of that state's indicator
//     series, yielding approximately decorrelated counts.
type CountingMode int

const (
	// CountSample counts non-overlapping strided transition pairs.
	CountSample CountingMode = iota

	// CountSliding counts all overlapping transition pairs.
	CountSliding

	// CountSlidingEffective counts sliding pairs and divides by the lag.
	CountSlidingEffective

	// CountEffective estimates statistically decorrelated counts.
	CountEffective
)

// String returns the canonical name of the counting mode.
func (m CountingMode) String() string {
	switch m {
	case CountSample:
		return "sample"
	case CountSliding:
		return "sliding"
	case CountSlidingEffective:
		return "sliding-effective"
	case CountEffective:
		return "effective"
	default:
		return fmt.Sprintf("CountingMode(%d)", int(m))
	}
}

// ParseCountingMode maps a canonical mode name back to its CountingMode.
// Returns ErrUnknownCountingMode for unrecognized names.
func ParseCountingMode(name string) (CountingMode, error) {
	switch name {
	case "sample":
		return CountSample, nil
	case "sliding":
		return CountSliding, nil
	case "sliding-effective":
		return CountSlidingEffective, nil
	case "effective":
		return CountEffective, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCountingMode, name)
	}
}

// valid reports whether m is one of the defined counting modes.
func (m CountingMode) valid() bool {
	return m >= CountSample && m <= CountEffective
}

// ConnectivityOptions tunes connectivity analysis and largest-submodel
// selection.
type ConnectivityOptions struct {
	// Directed selects strongly connected components when true, and
	// weakly connected components of the symmetrized adjacency otherwise.
	Directed bool

	// Threshold is the edge cutoff: an edge i->j exists iff the count
	// matrix entry C[i][j] is strictly greater than Threshold.
	Threshold float64

	// PopulationWeighted makes SubmodelLargest select the component with
	// the largest total state visitation count instead of the largest
	// cardinality.
	PopulationWeighted bool
}

// DefaultConnectivityOptions returns the standard connectivity settings:
// directed components, zero threshold (any positive count is an edge),
// cardinality-based largest-set selection.
func DefaultConnectivityOptions() ConnectivityOptions {
	return ConnectivityOptions{
		Directed:           true,
		Threshold:          0,
		PopulationWeighted: false,
	}
}

// SentinelState is the placeholder emitted by TransformDiscreteTrajectory
// for symbols that are not part of the model's state selection.
const SentinelState = -1
