package markov_test

import (
	"fmt"

	"github.com/lagtime/lagtime/markov"
)

// ExampleTransitionCountEstimator counts sliding transitions in a short
// two-state trajectory.
func ExampleTransitionCountEstimator() {
	est, _ := markov.NewTransitionCountEstimator(1, markov.CountSliding)
	model, _ := est.CountTransitions([]int{0, 0, 1, 0, 1, 1})

	c := model.CountMatrix()
	fmt.Printf("C = [[%.0f %.0f] [%.0f %.0f]]\n", c.At(0, 0), c.At(0, 1), c.At(1, 0), c.At(1, 1))
	fmt.Println("total:", model.TotalCount())
	// Output:
	// C = [[1 2] [1 1]]
	// total: 5
}

// ExampleTransitionCountModel_SubmodelLargest restricts a count model to
// its largest strongly connected set. The rarely visited tail states
// drop out once single-count edges are thresholded away.
func ExampleTransitionCountModel_SubmodelLargest() {
	dtraj := []int{0, 1, 2, 3, 4, 5, 4, 3, 2, 1, 0, 1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1, 7}

	est, _ := markov.NewTransitionCountEstimator(1, markov.CountSliding)
	model, _ := est.CountTransitions(dtraj)

	opts := markov.DefaultConnectivityOptions()
	opts.Threshold = 1
	largest, _ := model.SubmodelLargest(opts)

	fmt.Println("states:", largest.NStates())
	fmt.Println("symbols:", largest.StateSymbols())
	fmt.Println("relabeled:", largest.TransformDiscreteTrajectory([]int{1, 7, 5}))
	// Output:
	// states: 5
	// symbols: [1 2 3 4 5]
	// relabeled: [0 -1 4]
}

// ExampleTransitionCountModel_ConnectedSets partitions the visited
// states under the default directed adjacency.
func ExampleTransitionCountModel_ConnectedSets() {
	est, _ := markov.NewTransitionCountEstimator(1, markov.CountSliding)
	model, _ := est.CountTransitions([]int{0, 1, 0, 1, 2})

	for _, set := range model.ConnectedSets(markov.DefaultConnectivityOptions()) {
		fmt.Println(set)
	}
	// Output:
	// [0 1]
	// [2]
}
