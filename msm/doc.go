// Package msm estimates Markov state models from transition counts and
// analyzes their kinetic content.
//
// A MaximumLikelihoodEstimator turns a markov.TransitionCountModel into
// an immutable MarkovStateModel, either by plain row normalization or
// under the detailed-balance (reversibility) constraint via the
// self-consistent flow iteration. The model exposes the transition
// matrix, its stationary distribution, the eigenvalue spectrum, implied
// relaxation timescales, and distribution propagation.
//
// TransitionMatrixSampler draws transition matrices from the Dirichlet
// posterior with the observed counts as concentrations (sparse prior),
// providing Bayesian error bars for derived quantities; see
// TimescaleStatistics.
//
// Count matrices must be restricted to a connected state set before
// estimation; markov.SubmodelLargest does exactly that:
//
//	active, _ := counts.SubmodelLargest(markov.DefaultConnectivityOptions())
//	model, err := msm.MaximumLikelihoodEstimator{Reversible: true}.Fit(active)
package msm
