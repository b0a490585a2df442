// Package lagtime is a toolkit for analyzing time-series data from
// dynamical systems: transition counting, Markov state model (MSM)
// estimation, sparse system identification, clustering, and synthetic
// benchmark data generation.
//
// The library follows a uniform estimator/model split: an estimator is an
// immutable configuration value whose Fit (or CountTransitions) method
// produces an immutable model value. Models never share mutable storage
// with their inputs or with derived submodels.
//
// Packages:
//
//	markov/     transition counting, connectivity analysis, submodels
//	msm/        maximum-likelihood MSMs, timescales, posterior sampling
//	sindy/      sparse identification of nonlinear dynamics (STLSQ)
//	clustering/ k-means discretization of observable space
//	datasets/   SDE/ODE benchmark systems and trajectory utilities
//
// A typical pipeline discretizes an observed trajectory with clustering,
// counts transitions at a lag time with markov, restricts to the largest
// connected set, and estimates an MSM with msm:
//
//	est, _ := markov.NewTransitionCountEstimator(10, markov.CountSliding)
//	counts, _ := est.CountTransitions(dtraj)
//	active, _ := counts.SubmodelLargest(markov.DefaultConnectivityOptions())
//	model, _ := msm.DefaultMaximumLikelihoodEstimator().Fit(active)
//	fmt.Println(model.Timescales(3))
//
// The cmd/lagtime CLI wires the same pipeline behind a YAML-configurable
// command-line tool.
package lagtime
