// Package solver implements the 0/1 knapsack strategies compared by this module.
//
// Every strategy answers the same question: given an ordered list of items,
// each with a value and a cost, and a capacity, which subset maximizes total
// value without its total cost exceeding the capacity?
//
// Key Components:
//
//   - Solver: the interface every strategy implements
//   - GreedySolver: density-ordered selection, fast but approximate
//   - RecursiveSolver: exhaustive include/exclude recursion, exponential
//   - MemoizedSolver: the same recurrence with a per-call cache of (i, c) states
//   - BottomUpSolver: iterative table filling over the same recurrence
//
// Recurrence:
//
// The three exact strategies share one recurrence over the state (i, c), the
// best value using items 0..i with remaining capacity c:
//
//	best(i, c) = 0                                            if i < 0
//	best(i, c) = max(best(i-1, c), value[i] + best(i-1, c-cost[i]))  if cost[i] <= c
//	best(i, c) = best(i-1, c)                                 otherwise
//
// They also share one tie rule during reconstruction: an item is selected only
// when including it is strictly better than leaving it out. As a consequence
// the recursive, memoized and bottom-up strategies return the same selection,
// always in ascending index order. The greedy strategy returns indices in the
// order it accepted them.
//
// Example usage:
//
//	s, err := solver.NewSolver(solver.BottomUp)
//	if err != nil {
//	    return err
//	}
//	sol, err := s.Solve(ctx, items, 10)
//	if err != nil {
//	    log.Error(err, "solve failed")
//	    return err
//	}
//	log.Info("solved", "value", sol.Value, "selected", sol.Names(items))
//
// Limits:
//
// The recursive strategy is bounded by Limits.MaxRecursiveItems and the two
// table-based strategies by Limits.MaxTableCells. An instance over either bound
// fails with core.ErrResourceExhausted before any work is done.
//
// The solvers are designed to be:
//   - Stateless: nothing survives a Solve call, so calls may run in parallel
//   - Deterministic: same inputs produce same outputs
//   - Observable: structured logging and an optional metrics Recorder
package solver
