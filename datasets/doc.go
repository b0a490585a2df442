// Package datasets generates synthetic trajectory data for the model
// estimation pipeline: benchmark dynamical systems, fixed-step
// integrators, and helpers that turn continuous trajectories into
// inputs for the markov, msm, and sindy packages.
//
// Stochastic systems (DoubleWell1D, OrnsteinUhlenbeck, PrinzPotential,
// TripleWell2D) pair a drift with additive isotropic noise and are
// integrated with the EulerMaruyama scheme; deterministic systems
// (Lorenz) integrate with RK4Trajectory. Both integrators are
// deterministic given their inputs, EulerMaruyama under a fixed seed.
//
// UniformEdges and Quantize1D discretize one-dimensional trajectories
// onto a uniform bin grid; TimeshiftedSplit builds the lagged pair
// matrices (x_t, x_{t+lag}) without crossing trajectory boundaries.
//
// Errors:
//
//   - ErrInvalidStepSize    integrator step size not positive
//   - ErrInvalidStepCount   fewer than one output sample requested
//   - ErrDimensionMismatch  initial state or trajectory dimension conflict
//   - ErrInvalidLag         time shift not positive, or no pairs remain
//   - ErrInvalidBins        bin grid empty or edges not ascending
package datasets
