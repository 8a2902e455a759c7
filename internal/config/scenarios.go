package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-knapsack/internal/logging"
	"github.com/llm-d/llm-d-knapsack/pkg/core"
	"github.com/llm-d/llm-d-knapsack/pkg/solver"
)

// ItemConfig is one item entry of a scenario.
type ItemConfig struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
	Cost  int    `yaml:"cost" json:"cost"`
}

// ScenarioConfig describes one knapsack instance and the strategies to run on it.
type ScenarioConfig struct {
	// Name identifies the scenario. Defaults to the key of the entry.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Description is free text shown in reports.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Capacity bounds the total cost of a selection. Negative values behave as 0.
	Capacity int `yaml:"capacity" json:"capacity"`

	// Items are the candidates, in order. Selections refer to items by position.
	Items []ItemConfig `yaml:"items" json:"items"`

	// Strategies to run, by name or alias. Empty means all.
	Strategies []string `yaml:"strategies,omitempty" json:"strategies,omitempty"`

	// Optional per-scenario overrides of the solver limits.
	// Use pointers to allow omitting these fields and inheriting the global settings.
	MaxRecursiveItems *int `yaml:"maxRecursiveItems,omitempty" json:"maxRecursiveItems,omitempty"`
	MaxTableCells     *int `yaml:"maxTableCells,omitempty" json:"maxTableCells,omitempty"`
}

// Validate checks for invalid scenario values.
func (s *ScenarioConfig) Validate() error {
	var err error
	for i, it := range s.Items {
		if it.Name == "" {
			err = multierr.Append(err, fmt.Errorf("items[%d].name must not be empty", i))
		}
	}
	if verr := core.ValidateItems(s.ToItems()); verr != nil {
		err = multierr.Append(err, verr)
	}
	if _, perr := solver.ParseStrategies(s.Strategies); perr != nil {
		err = multierr.Append(err, perr)
	}
	if s.MaxRecursiveItems != nil && *s.MaxRecursiveItems < 0 {
		err = multierr.Append(err, fmt.Errorf("maxRecursiveItems must be >= 0, got %d", *s.MaxRecursiveItems))
	}
	if s.MaxTableCells != nil && *s.MaxTableCells < 0 {
		err = multierr.Append(err, fmt.Errorf("maxTableCells must be >= 0, got %d", *s.MaxTableCells))
	}
	return err
}

// ToItems converts the item entries into core items, preserving order.
func (s *ScenarioConfig) ToItems() []core.Item {
	items := make([]core.Item, len(s.Items))
	for i, it := range s.Items {
		items[i] = core.NewItem(it.Name, it.Value, it.Cost)
	}
	return items
}

// Limits merges the scenario overrides onto base.
func (s *ScenarioConfig) Limits(base solver.Limits) solver.Limits {
	return solver.Limits{
		MaxRecursiveItems: ptr.Deref(s.MaxRecursiveItems, base.MaxRecursiveItems),
		MaxTableCells:     ptr.Deref(s.MaxTableCells, base.MaxTableCells),
	}
}

// StrategyList returns the parsed strategies. Call Validate first.
func (s *ScenarioConfig) StrategyList() []solver.Strategy {
	strategies, err := solver.ParseStrategies(s.Strategies)
	if err != nil {
		return nil
	}
	return strategies
}

// ParseScenarios parses a YAML document mapping scenario keys to scenarios.
// The document format:
//
//	<key>:
//	  capacity: 10
//	  strategies: [greedy, dp]
//	  items:
//	    - {name: A, value: 12, cost: 4}
//
// Scenarios are returned sorted by key. Any invalid entry fails the whole parse;
// the returned error lists every problem found.
func ParseScenarios(data []byte) ([]ScenarioConfig, error) {
	raw := make(map[string]ScenarioConfig)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scenario document is empty")
		}
		return nil, fmt.Errorf("parsing scenario document: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("scenario document is empty")
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs error
	seen := make(map[string]string)
	out := make([]ScenarioConfig, 0, len(keys))
	for _, key := range keys {
		sc := raw[key]
		if sc.Name == "" {
			sc.Name = key
		}
		if err := sc.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("scenario %q: %w", key, err))
			continue
		}
		if firstKey, exists := seen[sc.Name]; exists {
			errs = multierr.Append(errs, fmt.Errorf("scenario %q: name %q already used by %q", key, sc.Name, firstKey))
			continue
		}
		seen[sc.Name] = key
		out = append(out, sc)
	}
	if errs != nil {
		return nil, errs
	}

	logging.Log.V(logging.DEBUG).Info("Parsed scenarios", "scenarioCount", len(out))
	return out, nil
}
