package solver

import (
	"cmp"
	"context"
	"slices"

	"github.com/llm-d/llm-d-knapsack/pkg/core"
)

// GreedySolver picks items by descending value/cost density while they fit.
// It runs in O(n log n) and is not guaranteed to be optimal.
type GreedySolver struct {
	opts options
}

// NewGreedySolver creates a new GreedySolver instance.
func NewGreedySolver(opts ...Option) *GreedySolver {
	return &GreedySolver{opts: newOptions(opts)}
}

// Solve returns the greedy selection, with indices in acceptance order.
func (s *GreedySolver) Solve(ctx context.Context, items []core.Item, capacity int) (core.Solution, error) {
	return run(ctx, Greedy, s.opts.recorder, items, capacity, solveGreedy)
}

func solveGreedy(items []core.Item, capacity int, stats *Stats) (core.Solution, error) {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	// stable: equal densities keep their original order
	slices.SortStableFunc(order, func(a, b int) int {
		return compareDensity(items[a], items[b])
	})

	value, used := 0, 0
	chosen := []int{}
	for _, i := range order {
		stats.Evaluations++
		it := items[i]
		if it.Cost <= capacity-used {
			chosen = append(chosen, i)
			used += it.Cost
			value += it.Value
		}
	}
	return core.NewSolution(value, chosen), nil
}

// compareDensity orders a before b when a has the higher value/cost density.
// Zero-cost items rank ahead of everything else and tie among themselves.
func compareDensity(a, b core.Item) int {
	switch {
	case a.Cost == 0 && b.Cost == 0:
		return 0
	case a.Cost == 0:
		return -1
	case b.Cost == 0:
		return 1
	}
	da := float64(a.Value) / float64(a.Cost)
	db := float64(b.Value) / float64(b.Cost)
	return cmp.Compare(db, da)
}
