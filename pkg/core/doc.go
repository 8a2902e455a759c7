// Package core provides the data model shared by every knapsack strategy.
//
// This package contains the types that describe a 0/1 knapsack instance and
// its answer:
//
//   - Item: a candidate with a display name, a value and a resource cost
//   - Solution: total value achieved plus the original indices selected
//
// Strategies in the solver package consume an ordered []Item and a capacity and
// return a Solution. Index order in the input is significant: a Solution refers
// to items by their position in the slice the solver was given.
//
// Example usage:
//
//	items := []core.Item{
//	    core.NewItem("A", 12, 4),
//	    core.NewItem("B", 10, 3),
//	}
//	if err := core.ValidateItems(items); err != nil {
//	    return err
//	}
//
//	sol := core.NewSolution(22, []int{0, 1})
//	if err := sol.Verify(items, 10); err != nil {
//	    log.Error(err, "inconsistent solution")
//	}
//	fmt.Println(sol.Names(items)) // [A B]
//
// The core package is designed to be:
//   - Immutable where possible (value types)
//   - Free of solver logic
//   - Strict about invalid input (negative values or costs are rejected)
package core
