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

// Package metrics exposes solver activity as Prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/llm-d/llm-d-knapsack/pkg/core"
	"github.com/llm-d/llm-d-knapsack/pkg/solver"
)

const namespace = "knapsack"

// Result label values
const (
	ResultSuccess           = "success"
	ResultInvalidInput      = "invalid_input"
	ResultResourceExhausted = "resource_exhausted"
	ResultError             = "error"
)

// Metrics implements solver.Recorder on top of Prometheus collectors.
type Metrics struct {
	solves      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evaluations *prometheus.HistogramVec
}

var _ solver.Recorder = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of solve calls by strategy and result.",
		}, []string{"strategy", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of solve calls by strategy.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 9),
		}, []string{"strategy"}),
		evaluations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "subproblem_evaluations",
			Help:      "Subproblems evaluated per solve call by strategy.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 14),
		}, []string{"strategy"}),
	}
}

// ObserveSolve records one solve call.
func (m *Metrics) ObserveSolve(strategy solver.Strategy, elapsed time.Duration, stats solver.Stats, err error) {
	name := strategy.String()
	m.solves.WithLabelValues(name, resultLabel(err)).Inc()
	m.duration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err == nil {
		m.evaluations.WithLabelValues(name).Observe(float64(stats.Evaluations))
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, core.ErrInvalidInput):
		return ResultInvalidInput
	case errors.Is(err, core.ErrResourceExhausted):
		return ResultResourceExhausted
	default:
		return ResultError
	}
}

// WriteText writes every metric family gathered from g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
