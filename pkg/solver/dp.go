package solver

import (
	"context"
	"slices"

	"github.com/llm-d/llm-d-knapsack/pkg/core"
)

// BottomUpSolver fills the full (n+1) x (capacity+1) table iteratively.
// Time and space are O(n * capacity); there is no recursion.
type BottomUpSolver struct {
	opts options
}

// NewBottomUpSolver creates a new BottomUpSolver instance.
func NewBottomUpSolver(opts ...Option) *BottomUpSolver {
	return &BottomUpSolver{opts: newOptions(opts)}
}

// Solve returns the optimal selection in ascending index order.
func (s *BottomUpSolver) Solve(ctx context.Context, items []core.Item, capacity int) (core.Solution, error) {
	maxCells := s.opts.limits.MaxTableCells
	return run(ctx, BottomUp, s.opts.recorder, items, capacity,
		func(items []core.Item, capacity int, stats *Stats) (core.Solution, error) {
			if err := checkTableCells(len(items)+1, capacity+1, maxCells); err != nil {
				return core.Solution{}, err
			}
			table := fillTable(items, capacity, stats)
			return reconstruct(table, items, capacity), nil
		})
}

// fillTable builds T where T[i][c] is the best value using the first i items with capacity c.
func fillTable(items []core.Item, capacity int, stats *Stats) [][]int {
	n := len(items)
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, capacity+1)
	}

	for i := 1; i <= n; i++ {
		it := items[i-1]
		prev, row := table[i-1], table[i]
		for c := 0; c <= capacity; c++ {
			stats.Evaluations++
			if it.Cost > c {
				row[c] = prev[c]
				continue
			}
			row[c] = max(prev[c], it.Value+prev[c-it.Cost])
		}
	}
	return table
}

// reconstruct backtracks from T[n][capacity]; item i-1 was taken wherever row i differs from row i-1.
func reconstruct(table [][]int, items []core.Item, capacity int) core.Solution {
	n := len(items)
	chosen := []int{}
	c := capacity
	for i := n; i > 0; i-- {
		if table[i][c] != table[i-1][c] {
			chosen = append(chosen, i-1)
			c -= items[i-1].Cost
		}
	}
	slices.Reverse(chosen)
	return core.NewSolution(table[n][capacity], chosen)
}
