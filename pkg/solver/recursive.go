package solver

import (
	"context"
	"fmt"
	"slices"

	"github.com/llm-d/llm-d-knapsack/pkg/core"
)

// RecursiveSolver explores every include/exclude decision without caching.
// Time is O(2^n) and the recursion depth is n, so the item count is bounded by
// Limits.MaxRecursiveItems.
type RecursiveSolver struct {
	opts options
}

// NewRecursiveSolver creates a new RecursiveSolver instance.
func NewRecursiveSolver(opts ...Option) *RecursiveSolver {
	return &RecursiveSolver{opts: newOptions(opts)}
}

// Solve returns the optimal selection in ascending index order.
func (s *RecursiveSolver) Solve(ctx context.Context, items []core.Item, capacity int) (core.Solution, error) {
	maxItems := s.opts.limits.MaxRecursiveItems
	return run(ctx, Recursive, s.opts.recorder, items, capacity,
		func(items []core.Item, capacity int, stats *Stats) (core.Solution, error) {
			if len(items) > maxItems {
				return core.Solution{}, fmt.Errorf("%w: recursive strategy accepts at most %d items, got %d",
					core.ErrResourceExhausted, maxItems, len(items))
			}
			r := &recursion{items: items, zeroCost: zeroCostPrefix(items), stats: stats}
			return r.run(capacity), nil
		})
}

type recursion struct {
	items    []core.Item
	zeroCost []bool
	stats    *Stats
}

func (r *recursion) run(capacity int) core.Solution {
	n := len(r.items)
	best := r.best(n-1, capacity)

	// Reconstruct by re-solving: item i was taken wherever adding it changes the optimum.
	chosen := []int{}
	c := capacity
	for i := n - 1; i >= 0; i-- {
		if r.best(i, c) != r.best(i-1, c) {
			chosen = append(chosen, i)
			c -= r.items[i].Cost
		}
	}
	slices.Reverse(chosen)
	return core.NewSolution(best, chosen)
}

// best is the optimal value using items 0..i with capacity c.
func (r *recursion) best(i, c int) int {
	r.stats.Evaluations++
	if i < 0 || (c <= 0 && !r.zeroCost[i]) {
		return 0
	}
	it := r.items[i]
	exclude := r.best(i-1, c)
	include := 0
	if it.Cost <= c {
		include = it.Value + r.best(i-1, c-it.Cost)
	}
	return max(include, exclude)
}
