// Package relax defines the relaxation oracle consumed by the branch-and-bound
// driver and a simplex-backed implementation of it.
//
// The base model is handed over once (Problem): bounds 0 ≤ x_k ≤ 1, covering
// rows Σ_{k∈row} x_k ≥ 1 and the objective min Σ cost_k·x_k. Each Solve call then
// carries the complete set of fixed assignments x_k = v for the node being
// evaluated and answers with the optimal objective and fractional values of the
// continuous relaxation, or reports infeasibility.
//
// Infeasibility is a value (Relaxation.Feasible == false), never an error.
// Errors are reserved for malformed fix sets and cancellation.
package relax
