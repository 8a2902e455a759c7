// Package scenario holds the built-in knapsack instances run by the demo command.
package scenario

import (
	"github.com/llm-d/llm-d-knapsack/internal/config"
)

// Built-in scenario names
const (
	ProjectsName = "projects"
	ToughName    = "greedy-fails"
)

// Projects is the four-project instance with 10 hours of capacity.
func Projects() config.ScenarioConfig {
	return config.ScenarioConfig{
		Name:        ProjectsName,
		Description: "four projects competing for 10 hours",
		Capacity:    10,
		Items: []config.ItemConfig{
			{Name: "A", Value: 12, Cost: 4},
			{Name: "B", Value: 10, Cost: 3},
			{Name: "C", Value: 7, Cost: 2},
			{Name: "D", Value: 4, Cost: 3},
		},
	}
}

// Tough is the instance where value density misleads the greedy strategy:
// Proj_X has the best density but taking it leaves no room for Proj_Y and Proj_Z together.
func Tough() config.ScenarioConfig {
	return config.ScenarioConfig{
		Name:        ToughName,
		Description: "highest density item is not part of the optimum",
		Capacity:    50,
		Items: []config.ItemConfig{
			{Name: "Proj_X", Value: 60, Cost: 10},
			{Name: "Proj_Y", Value: 100, Cost: 20},
			{Name: "Proj_Z", Value: 120, Cost: 30},
		},
	}
}

// Builtin returns the demo scenarios in run order.
func Builtin() []config.ScenarioConfig {
	return []config.ScenarioConfig{Projects(), Tough()}
}
