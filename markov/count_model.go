package markov

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// TransitionCountModel is an immutable transition-count matrix over a set
// of states, together with the visitation histogram and the mapping from
// local state indices to the symbols of the root model it was derived
// from. A model built directly by a TransitionCountEstimator is a root
// model: its states coincide with the raw trajectory symbols 0..n-1.
// Submodels restrict a model to a subset of states and carry the
// composed symbol mapping back to the ultimate root.
//
// All accessors either return copies or read-only views; the model never
// shares mutable storage with a parent or a derived submodel.
type TransitionCountModel struct {
	counts  *mat.Dense // n x n, entries >= 0 and finite
	hist    []int64    // visitation count per local state
	lag     int
	mode    CountingMode
	symbols []int       // local state -> root symbol, injective
	lookup  map[int]int // root symbol -> local state
}

// newCountModel assembles a model and builds the symbol lookup table.
// Takes ownership of counts, hist and symbols.
func newCountModel(counts *mat.Dense, hist []int64, lag int, mode CountingMode, symbols []int) *TransitionCountModel {
	lookup := make(map[int]int, len(symbols))
	for state, sym := range symbols {
		lookup[sym] = state
	}

	return &TransitionCountModel{
		counts:  counts,
		hist:    hist,
		lag:     lag,
		mode:    mode,
		symbols: symbols,
		lookup:  lookup,
	}
}

// NStates returns the number of states of this model.
func (m *TransitionCountModel) NStates() int {
	return len(m.symbols)
}

// Lagtime returns the lag time the counts were estimated at.
func (m *TransitionCountModel) Lagtime() int {
	return m.lag
}

// Mode returns the counting mode the counts were estimated with.
func (m *TransitionCountModel) Mode() CountingMode {
	return m.mode
}

// CountMatrix returns a read-only view of the count matrix. Entry (i, j)
// is the (possibly fractional) number of observed transitions from state
// i to state j at the model's lag time.
func (m *TransitionCountModel) CountMatrix() mat.Matrix {
	return m.counts
}

// StateHistogram returns a copy of the per-state visitation counts,
// accumulated over every frame of the input trajectories.
func (m *TransitionCountModel) StateHistogram() []int64 {
	out := make([]int64, len(m.hist))
	copy(out, m.hist)

	return out
}

// StateSymbols returns a copy of the mapping from local state indices to
// root symbols. For a root model this is the identity 0..NStates()-1.
func (m *TransitionCountModel) StateSymbols() []int {
	out := make([]int, len(m.symbols))
	copy(out, m.symbols)

	return out
}

// TotalCount returns the sum over all count matrix entries.
func (m *TransitionCountModel) TotalCount() float64 {
	var sum float64
	n := m.NStates()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += m.counts.At(i, j)
		}
	}

	return sum
}

// ActiveStates returns the local states with a nonzero row or column in
// the count matrix, ascending. These are exactly the states covered by
// the connected-set partition.
func (m *TransitionCountModel) ActiveStates() []int {
	n := m.NStates()
	active := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if m.rowOrColNonzero(i) {
			active = append(active, i)
		}
	}

	return active
}

// rowOrColNonzero reports whether state i has any incoming or outgoing
// count mass.
func (m *TransitionCountModel) rowOrColNonzero(i int) bool {
	n := m.NStates()
	for j := 0; j < n; j++ {
		if m.counts.At(i, j) > 0 || m.counts.At(j, i) > 0 {
			return true
		}
	}

	return false
}

// Submodel restricts the model to the given states, in the given order.
// The states are local indices of the receiver; the returned model's
// count matrix is the corresponding row/column selection, its state
// symbols compose transitively back to the root model. For a root model,
// local indices and symbols coincide, so Submodel may equally be called
// with raw symbols there.
//
// Returns ErrInvalidStateSelection if the selection is empty, out of
// range, or contains duplicates.
func (m *TransitionCountModel) Submodel(states []int) (*TransitionCountModel, error) {
	n := m.NStates()
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: selection is empty", ErrInvalidStateSelection)
	}
	seen := make(map[int]struct{}, len(states))
	for _, s := range states {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: state %d outside [0, %d)", ErrInvalidStateSelection, s, n)
		}
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: state %d selected twice", ErrInvalidStateSelection, s)
		}
		seen[s] = struct{}{}
	}

	k := len(states)
	counts := mat.NewDense(k, k, nil)
	for i, si := range states {
		for j, sj := range states {
			counts.Set(i, j, m.counts.At(si, sj))
		}
	}

	hist := make([]int64, k)
	symbols := make([]int, k)
	for i, s := range states {
		hist[i] = m.hist[s]
		symbols[i] = m.symbols[s]
	}

	return newCountModel(counts, hist, m.lag, m.mode, symbols), nil
}

// SubmodelLargest extracts the submodel over the largest connected set
// under the given connectivity options. "Largest" means highest
// cardinality, or highest total visitation count when
// opts.PopulationWeighted is set; ties resolve to the set containing the
// smallest symbol. The selected states are passed to Submodel in
// ascending order.
//
// Returns ErrEmptyConnectedSet when no state survives the connectivity
// constraint.
func (m *TransitionCountModel) SubmodelLargest(opts ConnectivityOptions) (*TransitionCountModel, error) {
	comps := m.connectedStates(opts)
	if len(comps) == 0 {
		return nil, ErrEmptyConnectedSet
	}

	best := comps[0]
	if opts.PopulationWeighted {
		bestMass := m.componentMass(best)
		for _, c := range comps[1:] {
			mass := m.componentMass(c)
			// comps are pre-sorted, so strict improvement keeps the
			// smallest-symbol tie-break intact.
			if mass > bestMass {
				best, bestMass = c, mass
			}
		}
	}

	states := make([]int, len(best))
	copy(states, best)
	sort.Ints(states)

	return m.Submodel(states)
}

// componentMass sums the visitation histogram over a component.
func (m *TransitionCountModel) componentMass(states []int) int64 {
	var mass int64
	for _, s := range states {
		mass += m.hist[s]
	}

	return mass
}

// SymbolsToStates maps root symbols to this model's local state indices.
// Symbols that are not part of the model's selection are silently
// dropped, so the result may be shorter than the input. This is a
// convenience for assembling state selections; use
// TransformDiscreteTrajectory when positional alignment matters.
func (m *TransitionCountModel) SymbolsToStates(symbols []int) []int {
	out := make([]int, 0, len(symbols))
	for _, sym := range symbols {
		if state, ok := m.lookup[sym]; ok {
			out = append(out, state)
		}
	}

	return out
}

// TransformDiscreteTrajectory maps every element of a discrete
// trajectory through the symbol-to-state table. Symbols outside the
// model's selection map to SentinelState (-1) instead of being dropped,
// preserving the trajectory length and its alignment with the original
// time axis.
func (m *TransitionCountModel) TransformDiscreteTrajectory(dtraj []int) []int {
	out := make([]int, len(dtraj))
	for t, sym := range dtraj {
		if state, ok := m.lookup[sym]; ok {
			out[t] = state
		} else {
			out[t] = SentinelState
		}
	}

	return out
}

// TransformDiscreteTrajectories applies TransformDiscreteTrajectory to
// each trajectory in turn.
func (m *TransitionCountModel) TransformDiscreteTrajectories(dtrajs [][]int) [][]int {
	out := make([][]int, len(dtrajs))
	for i, dtraj := range dtrajs {
		out[i] = m.TransformDiscreteTrajectory(dtraj)
	}

	return out
}
