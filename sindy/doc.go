// Package sindy implements sparse identification of nonlinear dynamics
// (SINDy): given sampled states x(t) and derivatives x'(t), it selects
// a small set of terms from a library of candidate functions such that
// x' ~ Theta(x) Xi, with Xi sparse.
//
// The Library builds the design matrix Theta from multivariate
// polynomial (and optionally trigonometric) features; the STLSQ
// optimizer performs sequentially thresholded least squares to find the
// sparse coefficient matrix; the Estimator ties both together and can
// approximate missing derivatives by central finite differences.
//
//	est := sindy.DefaultEstimator()
//	est.Optimizer.Threshold = 0.05
//	model, err := est.Fit(x, xDot)
//	fmt.Println(model.Equations([]string{"x", "y"}))
package sindy
