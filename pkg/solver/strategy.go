package solver

import (
	"fmt"
	"strings"
)

// Strategy is an enumeration of the knapsack strategies
type Strategy int

// enumeration of Strategy
const (
	Greedy Strategy = iota
	Recursive
	Memoized
	BottomUp
)

// strategyNames lists, per strategy, the names ParseStrategy accepts. The first name is canonical.
var strategyNames = map[Strategy][]string{
	Greedy:    {"greedy", "gulosa"},
	Recursive: {"recursive", "pure", "pure-recursive", "recursiva"},
	Memoized:  {"memoized", "memo", "memoization", "top-down"},
	BottomUp:  {"bottom-up", "dp", "iterative", "table"},
}

// AllStrategies returns every strategy in report order.
func AllStrategies() []Strategy {
	return []Strategy{Greedy, Recursive, Memoized, BottomUp}
}

// String returns the canonical name of the strategy.
func (s Strategy) String() string {
	if names, ok := strategyNames[s]; ok {
		return names[0]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Exact reports whether the strategy always returns the optimal value.
func (s Strategy) Exact() bool {
	return s == Recursive || s == Memoized || s == BottomUp
}

// ParseStrategy matches name, case-insensitively, against the known strategy names.
func ParseStrategy(name string) (Strategy, error) {
	value := strings.ToLower(strings.TrimSpace(name))
	for _, s := range AllStrategies() {
		for _, v := range strategyNames[s] {
			if value == v {
				return s, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown solver strategy: %q", name)
}

// ParseStrategies parses a list of names. "all" expands to AllStrategies; an empty list also does.
// Duplicates are dropped, keeping first occurrence.
func ParseStrategies(names []string) ([]Strategy, error) {
	if len(names) == 0 {
		return AllStrategies(), nil
	}
	seen := make(map[Strategy]bool)
	var out []Strategy
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			for _, s := range AllStrategies() {
				if !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
			continue
		}
		s, err := ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}
