// Package clustering discretizes continuous trajectory data into state
// assignments for transition counting.
//
// KMeans partitions the observed points with k-means++ seeding and
// Lloyd iteration; the fitted Model assigns new points to their nearest
// center, turning a time-ordered series into a discrete trajectory:
//
//	model, err := clustering.NewKMeans(4, seed).Fit(points)
//	dtraj, err := model.Assign(points)
//	// dtraj feeds markov.TransitionCountEstimator.CountTransitions
//
// Fits are deterministic under a fixed seed.
package clustering
