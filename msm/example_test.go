package msm_test

import (
	"fmt"

	"github.com/lagtime/lagtime/markov"
	"github.com/lagtime/lagtime/msm"
)

// Example estimates an MSM from a discrete trajectory and reports its
// stationary distribution.
func Example() {
	dtraj := []int{0, 0, 0, 1, 0, 1}

	est, _ := markov.NewTransitionCountEstimator(1, markov.CountSliding)
	counts, _ := est.CountTransitions(dtraj)
	active, _ := counts.SubmodelLargest(markov.DefaultConnectivityOptions())

	model, _ := msm.DefaultMaximumLikelihoodEstimator().Fit(active)
	pi := model.StationaryDistribution()
	fmt.Printf("pi = [%.3f %.3f]\n", pi[0], pi[1])
	fmt.Printf("t1 = %.3f\n", model.Timescales(1)[0])
	// Output:
	// pi = [0.667 0.333]
	// t1 = 1.443
}
