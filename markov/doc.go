// Package markov builds transition-count models from discretized
// trajectory data and analyzes their connectivity structure.
//
// A discrete trajectory is an ordered sequence of non-negative integer
// symbols, each the observed state at one time step. A
// TransitionCountEstimator extracts transition pairs at a lag time tau
// under one of four counting modes (sample, sliding, sliding-effective,
// effective) and accumulates them into an immutable
// TransitionCountModel: a square count matrix with a per-state
// visitation histogram.
//
// The model supports connectivity analysis and restriction:
//
//   - ConnectedSets partitions the visited states into strongly (Tarjan)
//     or weakly connected components under a threshold-induced adjacency
//     relation, with deterministic ordering.
//   - Submodel restricts the model to an ordered state selection,
//     yielding a fresh model whose state symbols map transitively back
//     to the root model's symbol space.
//   - SubmodelLargest combines the two, extracting the largest connected
//     set by cardinality or visitation population.
//   - SymbolsToStates and TransformDiscreteTrajectory translate between
//     root symbols and a submodel's local state indices; the former
//     drops unknown symbols, the latter preserves trajectory length and
//     maps them to the SentinelState (-1).
//
// The whole pipeline is a chain of pure value transformations: raw
// trajectories -> count matrix -> connectivity partition -> submodel ->
// relabeled trajectories. Identical inputs always yield identical
// outputs.
//
// Errors:
//
//   - ErrInvalidLagtime          lag < 1, or a trajectory shorter than lag+1
//   - ErrUnknownCountingMode     counting mode outside the defined set
//   - ErrNoTrajectories          no input trajectory supplied
//   - ErrNegativeSymbol          trajectory contains a negative symbol
//   - ErrInvalidStateSelection   submodel selection empty, duplicated, or out of range
//   - ErrEmptyConnectedSet       no component satisfies the connectivity constraint
package markov
