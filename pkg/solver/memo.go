package solver

import (
	"context"
	"slices"

	"github.com/llm-d/llm-d-knapsack/pkg/core"
)

// MemoizedSolver runs the recursive recurrence top-down, computing each (i, c)
// state at most once. Time and space are O(n * capacity).
//
// The recursion is driven by an explicit stack of pending states rather than
// the call stack, so depth does not grow with n.
type MemoizedSolver struct {
	opts options
}

// NewMemoizedSolver creates a new MemoizedSolver instance.
func NewMemoizedSolver(opts ...Option) *MemoizedSolver {
	return &MemoizedSolver{opts: newOptions(opts)}
}

// Solve returns the optimal selection in ascending index order.
func (s *MemoizedSolver) Solve(ctx context.Context, items []core.Item, capacity int) (core.Solution, error) {
	maxCells := s.opts.limits.MaxTableCells
	return run(ctx, Memoized, s.opts.recorder, items, capacity,
		func(items []core.Item, capacity int, stats *Stats) (core.Solution, error) {
			if err := checkTableCells(len(items), capacity+1, maxCells); err != nil {
				return core.Solution{}, err
			}
			t := newMemoTable(items, stats)
			return t.run(capacity), nil
		})
}

// state identifies the subproblem "items 0..i with remaining capacity c".
type state struct {
	i, c int
}

// memoTable is the cache of one Solve call. It is never shared.
type memoTable struct {
	items    []core.Item
	zeroCost []bool
	values   map[state]int
	stats    *Stats
}

func newMemoTable(items []core.Item, stats *Stats) *memoTable {
	return &memoTable{
		items:    items,
		zeroCost: zeroCostPrefix(items),
		values:   make(map[state]int),
		stats:    stats,
	}
}

func (t *memoTable) run(capacity int) core.Solution {
	n := len(t.items)
	best := t.best(n-1, capacity)

	// Walk the filled cache; ties resolve to "not selected".
	chosen := []int{}
	c := capacity
	for i := n - 1; i >= 0; i-- {
		it := t.items[i]
		exclude := t.best(i-1, c)
		include := -1
		if it.Cost <= c {
			include = it.Value + t.best(i-1, c-it.Cost)
		}
		if include > exclude {
			chosen = append(chosen, i)
			c -= it.Cost
		}
	}
	slices.Reverse(chosen)
	return core.NewSolution(best, chosen)
}

// lookup returns the value of (i, c) if it is a base case or already cached.
func (t *memoTable) lookup(i, c int) (int, bool) {
	if i < 0 || (c <= 0 && !t.zeroCost[i]) {
		return 0, true
	}
	v, ok := t.values[state{i: i, c: c}]
	return v, ok
}

// best returns the optimal value of (i, c), filling the cache for every state it depends on.
func (t *memoTable) best(i, c int) int {
	if v, ok := t.lookup(i, c); ok {
		return v
	}

	stack := []state{{i: i, c: c}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, ok := t.lookup(top.i, top.c); ok {
			stack = stack[:len(stack)-1]
			continue
		}

		it := t.items[top.i]
		exclude, excludeReady := t.lookup(top.i-1, top.c)
		fits := it.Cost <= top.c
		include, includeReady := 0, true
		if fits {
			var rest int
			rest, includeReady = t.lookup(top.i-1, top.c-it.Cost)
			include = it.Value + rest
		}

		if excludeReady && includeReady {
			t.values[top] = max(include, exclude)
			t.stats.Evaluations++
			stack = stack[:len(stack)-1]
			continue
		}
		if !excludeReady {
			stack = append(stack, state{i: top.i - 1, c: top.c})
		}
		if !includeReady {
			stack = append(stack, state{i: top.i - 1, c: top.c - it.Cost})
		}
	}

	v, _ := t.lookup(i, c)
	return v
}
