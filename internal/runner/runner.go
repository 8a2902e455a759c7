/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-knapsack/api/v1alpha1"
	"github.com/llm-d/llm-d-knapsack/internal/config"
	"github.com/llm-d/llm-d-knapsack/internal/logging"
	"github.com/llm-d/llm-d-knapsack/pkg/core"
	"github.com/llm-d/llm-d-knapsack/pkg/solver"
)

// ErrStrategiesDisagree is returned when two exact strategies report different optima.
var ErrStrategiesDisagree = errors.New("exact strategies disagree on the optimum")

// Config holds configuration for the Runner
type Config struct {
	// Limits applied to every scenario unless the scenario overrides them.
	Limits solver.Limits
	// Recorder is notified of every solve call. Optional.
	Recorder solver.Recorder
}

// Runner solves scenarios with the requested strategies and reports the results.
type Runner struct {
	config   *Config
	now      func() time.Time
	newRunID func() string
}

// NewRunner creates a new Runner instance.
func NewRunner(config *Config) (*Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Runner{
		config:   config,
		now:      time.Now,
		newRunID: uuid.NewString,
	}, nil
}

// Run solves every scenario and returns the combined report.
func (r *Runner) Run(ctx context.Context, scenarios []config.ScenarioConfig) (*v1alpha1.SolveReport, error) {
	runID := r.newRunID()
	logger := logging.FromContext(ctx).WithValues("run", runID)
	ctx = logging.IntoContext(ctx, logger)

	report := &v1alpha1.SolveReport{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.GroupVersion,
			Kind:       v1alpha1.SolveReportKind,
		},
		RunID:       runID,
		GeneratedAt: metav1.NewTime(r.now().UTC()),
		Scenarios:   make([]v1alpha1.ScenarioReport, 0, len(scenarios)),
	}

	for _, sc := range scenarios {
		sr, err := r.RunScenario(ctx, sc)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		report.Scenarios = append(report.Scenarios, sr)
	}

	logger.Info("Run completed", "scenarios", len(report.Scenarios))
	return report, nil
}

// RunScenario solves one scenario with each of its strategies.
func (r *Runner) RunScenario(ctx context.Context, sc config.ScenarioConfig) (v1alpha1.ScenarioReport, error) {
	logger := logging.FromContext(ctx).WithValues("scenario", sc.Name)
	ctx = logging.IntoContext(ctx, logger)

	if err := sc.Validate(); err != nil {
		return v1alpha1.ScenarioReport{}, err
	}

	items := sc.ToItems()
	limits := sc.Limits(r.config.Limits)
	sr := v1alpha1.ScenarioReport{
		Name:        sc.Name,
		Description: sc.Description,
		Capacity:    sc.Capacity,
		Items:       toItemSpecs(items),
	}

	for _, strategy := range sc.StrategyList() {
		result, err := r.solveOne(ctx, strategy, limits, items, sc.Capacity)
		if err != nil {
			return v1alpha1.ScenarioReport{}, err
		}
		sr.Results = append(sr.Results, result)
	}

	if err := compare(&sr); err != nil {
		return v1alpha1.ScenarioReport{}, err
	}

	for _, res := range sr.Suboptimal() {
		logger.Info("Strategy fell short of the optimum",
			"strategy", res.Strategy,
			"value", res.Value,
			"optimum", ptr.Deref(sr.Optimum, 0),
			"gap", ptr.Deref(res.Gap, 0))
	}
	return sr, nil
}

// solveOne runs a single strategy. A strategy over its limits is not a run
// failure: the error is kept in the result.
func (r *Runner) solveOne(
	ctx context.Context,
	strategy solver.Strategy,
	limits solver.Limits,
	items []core.Item,
	capacity int,
) (v1alpha1.StrategyResult, error) {
	logger := logging.FromContext(ctx)
	capture := &captureRecorder{next: r.config.Recorder}

	s, err := solver.NewSolver(strategy, solver.WithLimits(limits), solver.WithRecorder(capture))
	if err != nil {
		return v1alpha1.StrategyResult{}, err
	}

	result := v1alpha1.StrategyResult{
		Strategy:      strategy.String(),
		Exact:         strategy.Exact(),
		Selected:      []int{},
		SelectedNames: []string{},
	}

	sol, err := s.Solve(ctx, items, capacity)
	result.Duration = metav1.Duration{Duration: capture.elapsed}
	result.Evaluations = capture.stats.Evaluations
	if err != nil {
		if errors.Is(err, core.ErrResourceExhausted) {
			logger.Info("Strategy skipped", "strategy", strategy.String(), "reason", err.Error())
			result.Error = err.Error()
			return result, nil
		}
		return v1alpha1.StrategyResult{}, err
	}
	if err := sol.Verify(items, capacity); err != nil {
		return v1alpha1.StrategyResult{}, fmt.Errorf("%s strategy: %w", strategy, err)
	}

	result.Value = sol.Value
	result.Cost = sol.Cost(items)
	result.Selected = sol.Selected
	result.SelectedNames = sol.Names(items)

	logger.V(logging.DEBUG).Info("Strategy result",
		"strategy", result.Strategy,
		"value", result.Value,
		"cost", result.Cost,
		"selected", result.SelectedNames,
		"evaluations", result.Evaluations)
	return result, nil
}

// compare sets the optimum from the exact strategies and the gap of every successful result.
func compare(sr *v1alpha1.ScenarioReport) error {
	var optimum *int
	var from string
	for _, res := range sr.Results {
		if !res.Exact || !res.Succeeded() {
			continue
		}
		if optimum == nil {
			optimum = ptr.To(res.Value)
			from = res.Strategy
			continue
		}
		if *optimum != res.Value {
			return fmt.Errorf("%w: %s found %d, %s found %d", ErrStrategiesDisagree, from, *optimum, res.Strategy, res.Value)
		}
	}
	if optimum == nil {
		return nil
	}

	sr.Optimum = optimum
	for i := range sr.Results {
		res := &sr.Results[i]
		if res.Succeeded() {
			res.Gap = ptr.To(*optimum - res.Value)
		}
	}
	return nil
}

func toItemSpecs(items []core.Item) []v1alpha1.ItemSpec {
	specs := make([]v1alpha1.ItemSpec, len(items))
	for i, it := range items {
		specs[i] = v1alpha1.ItemSpec{Name: it.Name, Value: it.Value, Cost: it.Cost}
	}
	return specs
}

// captureRecorder keeps the stats of the last solve and forwards to next.
type captureRecorder struct {
	next    solver.Recorder
	elapsed time.Duration
	stats   solver.Stats
}

func (c *captureRecorder) ObserveSolve(strategy solver.Strategy, elapsed time.Duration, stats solver.Stats, err error) {
	c.elapsed = elapsed
	c.stats = stats
	if c.next != nil {
		c.next.ObserveSolve(strategy, elapsed, stats, err)
	}
}
