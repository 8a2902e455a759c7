// Package v1alpha1 contains the serialized documents produced by the knapsack tools.
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupVersion is the apiVersion of every document in this package.
	GroupVersion = "knapsack.llm-d.ai/v1alpha1"
	// SolveReportKind is the kind of SolveReport documents.
	SolveReportKind = "SolveReport"
)

// SolveReport is the result of running one or more strategies over one or more scenarios.
type SolveReport struct {
	metav1.TypeMeta `json:",inline"`

	// RunID identifies the invocation that produced the report.
	RunID string `json:"runID"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt metav1.Time `json:"generatedAt"`

	// Scenarios holds one entry per scenario, in run order.
	Scenarios []ScenarioReport `json:"scenarios"`
}

// ItemSpec is one knapsack item as given in the input.
type ItemSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Cost  int    `json:"cost"`
}

// ScenarioReport holds the outcome of every strategy run on one scenario.
type ScenarioReport struct {
	// Name of the scenario.
	Name string `json:"name"`

	// Description is free text copied from the scenario.
	// +optional
	Description string `json:"description,omitempty"`

	// Capacity as given in the input. Negative capacity is solved as 0.
	Capacity int `json:"capacity"`

	// Items as given in the input. Selected indices refer to positions in this list.
	Items []ItemSpec `json:"items"`

	// Optimum is the optimal value, known when at least one exact strategy succeeded.
	// +optional
	Optimum *int `json:"optimum,omitempty"`

	// Results holds one entry per strategy, in run order.
	Results []StrategyResult `json:"results"`
}

// StrategyResult is the outcome of one strategy on one scenario.
type StrategyResult struct {
	// Strategy is the canonical strategy name.
	Strategy string `json:"strategy"`

	// Exact is true for strategies that always find the optimum.
	Exact bool `json:"exact"`

	// Value is the total value of the selection.
	Value int `json:"value"`

	// Cost is the total cost of the selection.
	Cost int `json:"cost"`

	// Selected lists the original indices chosen, in the order the strategy reports them.
	Selected []int `json:"selected"`

	// SelectedNames maps Selected onto item names.
	SelectedNames []string `json:"selectedNames"`

	// Evaluations counts the subproblems the strategy evaluated.
	Evaluations int `json:"evaluations"`

	// Duration is the wall time of the solve call.
	Duration metav1.Duration `json:"duration"`

	// Gap is Optimum minus Value, set when the optimum is known.
	// +optional
	Gap *int `json:"gap,omitempty"`

	// Error is set when the strategy failed; the other fields are then zero.
	// +optional
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the strategy produced a solution.
func (r *StrategyResult) Succeeded() bool {
	return r.Error == ""
}

// Optimal reports whether the strategy reached the known optimum.
func (r *StrategyResult) Optimal() bool {
	return r.Succeeded() && r.Gap != nil && *r.Gap == 0
}

// Result returns the entry for strategy, or nil.
func (s *ScenarioReport) Result(strategy string) *StrategyResult {
	for i := range s.Results {
		if s.Results[i].Strategy == strategy {
			return &s.Results[i]
		}
	}
	return nil
}

// Suboptimal returns the successful results that fell short of the optimum.
func (s *ScenarioReport) Suboptimal() []StrategyResult {
	var out []StrategyResult
	for _, r := range s.Results {
		if r.Succeeded() && r.Gap != nil && *r.Gap > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Scenario returns the report for the named scenario, or nil.
func (r *SolveReport) Scenario(name string) *ScenarioReport {
	for i := range r.Scenarios {
		if r.Scenarios[i].Name == name {
			return &r.Scenarios[i]
		}
	}
	return nil
}
