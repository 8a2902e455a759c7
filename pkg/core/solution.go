package core

import "fmt"

// Solution is the answer of a strategy: total value and the original indices selected.
// Selected is never nil.
type Solution struct {
	Value    int
	Selected []int
}

// NewSolution creates a Solution, replacing a nil selection with an empty one.
func NewSolution(value int, selected []int) Solution {
	if selected == nil {
		selected = []int{}
	}
	return Solution{Value: value, Selected: selected}
}

// EmptySolution is the answer for an empty item list or a capacity nothing fits in.
func EmptySolution() Solution {
	return NewSolution(0, nil)
}

// Cost sums the cost of the selected items.
func (s Solution) Cost(items []Item) int {
	total := 0
	for _, i := range s.Selected {
		if i >= 0 && i < len(items) {
			total += items[i].Cost
		}
	}
	return total
}

// Names maps the selected indices back to item names, in selection order.
func (s Solution) Names(items []Item) []string {
	names := make([]string, 0, len(s.Selected))
	for _, i := range s.Selected {
		if i >= 0 && i < len(items) {
			names = append(names, items[i].Name)
		}
	}
	return names
}

// Verify checks that the selection is a duplicate-free subset of item indices,
// that its cost fits capacity and that its values add up to s.Value.
func (s Solution) Verify(items []Item, capacity int) error {
	capacity = NormalizeCapacity(capacity)
	seen := make(map[int]bool, len(s.Selected))
	value, cost := 0, 0
	for _, i := range s.Selected {
		if i < 0 || i >= len(items) {
			return fmt.Errorf("%w: index %d out of range [0, %d)", ErrInconsistentSolution, i, len(items))
		}
		if seen[i] {
			return fmt.Errorf("%w: index %d selected twice", ErrInconsistentSolution, i)
		}
		seen[i] = true
		// 0 <= cost <= capacity holds here, so capacity-cost cannot overflow
		if items[i].Cost > capacity-cost {
			return fmt.Errorf("%w: selected costs exceed capacity %d at index %d", ErrInconsistentSolution, capacity, i)
		}
		value += items[i].Value
		cost += items[i].Cost
	}
	if value != s.Value {
		return fmt.Errorf("%w: selected values sum to %d, declared %d", ErrInconsistentSolution, value, s.Value)
	}
	return nil
}
