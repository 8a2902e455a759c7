package core

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Item is a single knapsack candidate. Name is for display only.
type Item struct {
	Name  string
	Value int
	Cost  int
}

// NewItem creates an Item.
func NewItem(name string, value, cost int) Item {
	return Item{Name: name, Value: value, Cost: cost}
}

// String returns the item as (name, value, cost).
func (it Item) String() string {
	return fmt.Sprintf("(%s, %d, %d)", it.Name, it.Value, it.Cost)
}

// ValidateItems rejects items with a negative value or cost.
// The returned error wraps ErrInvalidInput and lists every offending field.
func ValidateItems(items []Item) error {
	var errs field.ErrorList
	root := field.NewPath("items")
	for i, it := range items {
		if it.Value < 0 {
			errs = append(errs, field.Invalid(root.Index(i).Child("value"), it.Value, "must be non-negative"))
		}
		if it.Cost < 0 {
			errs = append(errs, field.Invalid(root.Index(i).Child("cost"), it.Cost, "must be non-negative"))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, errs.ToAggregate())
}

// NormalizeCapacity returns capacity, or 0 if capacity is negative.
func NormalizeCapacity(capacity int) int {
	if capacity < 0 {
		return 0
	}
	return capacity
}
