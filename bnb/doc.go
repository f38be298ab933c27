// Package bnb implements branch-and-bound search for minimum-cost
// distinguishing test selection.
//
// Search enumerates 0/1 assignments as a binary tree explored depth-first,
// solving the continuous relaxation at every node through a relax.Oracle and
// pruning subtrees whose relaxation bound cannot beat the incumbent.
//
// Rationale (succinct):
//  1. Root: solve the relaxation with nothing fixed. Infeasible ⇒ the instance
//     is infeasible. Otherwise the Brancher picks the first branch variable from
//     the root's fractional values, exactly like at any internal node.
//  2. Pending decisions form a LIFO stack; each entry records the path depth at
//     which it was pushed. Popping an entry truncates the path to that depth and
//     appends the decision, so backtracking is a slice truncation, not a search.
//  3. Each node issues one coherent Solve(ctx, path) call. Infeasible or
//     bound ≥ incumbent − Eps ⇒ prune (ties keep the incumbent).
//  4. Full-depth nodes are leaves; a leaf strictly better than the incumbent
//     replaces it with an immutable snapshot.
//  5. Value 1 is explored before value 0 for every branch variable.
//  6. Time, node and context budgets are checked once per iteration; on expiry
//     the best incumbent so far is returned with a limit status.
//
// Complexity:
//   - Worst case 2^(n+1)−1 nodes, one relaxation solve each.
//   - Per node: O(n) bookkeeping on top of the oracle call.
//   - Memory: O(n) for the path and O(n) pending entries (two per level).
//
// Determinism: no randomness anywhere; for a deterministic oracle the visit
// sequence and the incumbent are identical across runs.
package bnb
