package markov_test

import (
	"testing"

	"github.com/lagtime/lagtime/markov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countPingPongModel builds the reference root model at lag 1, sliding mode.
func countPingPongModel(t *testing.T) *markov.TransitionCountModel {
	t.Helper()
	est, err := markov.NewTransitionCountEstimator(1, markov.CountSliding)
	require.NoError(t, err)
	model, err := est.CountTransitions(pingPongTrajectory)
	require.NoError(t, err)

	return model
}

// TestSubmodel_RestrictsCountMatrix verifies that Submodel selects the
// parent's rows and columns in the given order and records the
// selection as its state symbols.
func TestSubmodel_RestrictsCountMatrix(t *testing.T) {
	root := countPingPongModel(t)

	states := []int{0, 1, 7}
	sub, err := root.Submodel(states)
	require.NoError(t, err)

	assert.Equal(t, states, sub.StateSymbols(), "round-trip of the selected symbols")
	assert.Equal(t, 3, sub.NStates())

	rootC := root.CountMatrix()
	subC := sub.CountMatrix()
	for i, si := range states {
		for j, sj := range states {
			assert.Equal(t, rootC.At(si, sj), subC.At(i, j),
				"submodel entry (%d,%d) must equal parent entry (%d,%d)", i, j, si, sj)
		}
	}

	hist := sub.StateHistogram()
	rootHist := root.StateHistogram()
	for i, s := range states {
		assert.Equal(t, rootHist[s], hist[i], "histogram restricted alongside the counts")
	}
}

// TestSubmodel_SelectionErrors verifies ErrInvalidStateSelection for
// empty, out-of-range, and duplicated selections.
func TestSubmodel_SelectionErrors(t *testing.T) {
	root := countPingPongModel(t)

	cases := []struct {
		name   string
		states []int
	}{
		{"Empty", []int{}},
		{"OutOfRange", []int{0, 8}},
		{"Negative", []int{-1, 2}},
		{"Duplicate", []int{1, 2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := root.Submodel(tc.states)
			assert.ErrorIs(t, err, markov.ErrInvalidStateSelection)
		})
	}
}

// TestSymbolsToStates_DropsUnknown checks the documented drop policy:
// symbols absent from the selection vanish from the output.
func TestSymbolsToStates_DropsUnknown(t *testing.T) {
	root := countPingPongModel(t)
	sub, err := root.Submodel([]int{0, 1, 7})
	require.NoError(t, err)

	got := sub.SymbolsToStates([]int{0, 1, 7, 8})
	assert.Equal(t, []int{0, 1, 2}, got, "symbol 8 is dropped, the rest map to local indices")
	assert.Len(t, got, 3)
}

// TestTransformDiscreteTrajectory_Sentinel checks the complementary
// sentinel policy: unknown symbols become -1 and the length is kept.
func TestTransformDiscreteTrajectory_Sentinel(t *testing.T) {
	root := countPingPongModel(t)
	sub, err := root.Submodel([]int{0, 1, 7})
	require.NoError(t, err)

	dtraj := []int{0, 8, 1, 7, 3}
	got := sub.TransformDiscreteTrajectory(dtraj)
	assert.Equal(t, []int{0, markov.SentinelState, 1, 2, markov.SentinelState}, got)
	assert.Len(t, got, len(dtraj), "trajectory length must be preserved")

	for _, state := range got {
		valid := state == markov.SentinelState || (state >= 0 && state < sub.NStates())
		assert.True(t, valid, "each output is a local index or the sentinel")
	}
}

// TestTransformDiscreteTrajectories applies the sentinel mapping across
// a batch of trajectories.
func TestTransformDiscreteTrajectories(t *testing.T) {
	root := countPingPongModel(t)
	sub, err := root.Submodel([]int{1, 2})
	require.NoError(t, err)

	got := sub.TransformDiscreteTrajectories([][]int{{1, 2}, {5, 1}})
	assert.Equal(t, [][]int{{0, 1}, {markov.SentinelState, 0}}, got)
}

// TestSubmodelOfSubmodel_ComposesSymbols verifies the transitive mapping
// back to root symbols through two levels of restriction.
func TestSubmodelOfSubmodel_ComposesSymbols(t *testing.T) {
	root := countPingPongModel(t)

	mid, err := root.Submodel([]int{1, 2, 3, 5})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 5}, mid.StateSymbols())

	leaf, err := mid.Submodel([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, leaf.StateSymbols(), "local states of mid compose to root symbols")

	// The leaf matrix restricts mid's matrix, which restricts root's.
	rootC := root.CountMatrix()
	leafC := leaf.CountMatrix()
	assert.Equal(t, rootC.At(1, 1), leafC.At(0, 0))
	assert.Equal(t, rootC.At(1, 3), leafC.At(0, 1))
	assert.Equal(t, rootC.At(3, 1), leafC.At(1, 0))
	assert.Equal(t, rootC.At(3, 3), leafC.At(1, 1))
}

// TestSubmodel_ValueSemantics checks that a submodel owns its storage:
// its matrix view and histogram are unaffected by anything done with the
// parent's accessors.
func TestSubmodel_ValueSemantics(t *testing.T) {
	root := countPingPongModel(t)
	sub, err := root.Submodel([]int{0, 1})
	require.NoError(t, err)

	hist := sub.StateHistogram()
	hist[0] = -42
	assert.NotEqual(t, int64(-42), sub.StateHistogram()[0], "accessor must return a copy")

	symbols := sub.StateSymbols()
	symbols[0] = 99
	assert.Equal(t, []int{0, 1}, sub.StateSymbols(), "accessor must return a copy")
}

// TestActiveStates lists states with any incoming or outgoing count.
func TestActiveStates(t *testing.T) {
	est, err := markov.NewTransitionCountEstimator(1, markov.CountSliding, markov.WithStateCount(6))
	require.NoError(t, err)
	model, err := est.CountTransitions([]int{0, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, model.ActiveStates(), "states 2..5 were never visited")
}
