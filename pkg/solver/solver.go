package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/llm-d/llm-d-knapsack/internal/logging"
	"github.com/llm-d/llm-d-knapsack/pkg/core"
)

const (
	// DefaultMaxRecursiveItems bounds the item count accepted by the recursive strategy.
	// 2^25 leaves is a few seconds of work on current hardware.
	DefaultMaxRecursiveItems = 25
	// DefaultMaxTableCells bounds (items+1)*(capacity+1) for the table-based strategies.
	DefaultMaxTableCells = 50_000_000
)

// Solver is an interface that defines the method for solving a 0/1 knapsack instance
type Solver interface {
	// Solve returns the selection this strategy makes for items under capacity
	Solve(ctx context.Context, items []core.Item, capacity int) (core.Solution, error)
}

// Limits bounds the instance size a strategy accepts. Zero fields take the defaults.
type Limits struct {
	MaxRecursiveItems int
	MaxTableCells     int
}

// Unlimited disables both bounds.
func Unlimited() Limits {
	return Limits{MaxRecursiveItems: math.MaxInt, MaxTableCells: math.MaxInt}
}

func (l Limits) withDefaults() Limits {
	if l.MaxRecursiveItems <= 0 {
		l.MaxRecursiveItems = DefaultMaxRecursiveItems
	}
	if l.MaxTableCells <= 0 {
		l.MaxTableCells = DefaultMaxTableCells
	}
	return l
}

type options struct {
	limits   Limits
	recorder Recorder
}

// Option configures a Solver created by NewSolver.
type Option func(*options)

// WithLimits sets the instance size bounds.
func WithLimits(limits Limits) Option {
	return func(o *options) {
		o.limits = limits
	}
}

// WithRecorder sets the Recorder notified after every Solve call.
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

func newOptions(opts []Option) options {
	o := options{recorder: noopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	o.limits = o.limits.withDefaults()
	return o
}

// NewSolver is a factory that creates a new Solver based on the provided strategy
func NewSolver(strategy Strategy, opts ...Option) (Solver, error) {
	switch strategy {
	case Greedy:
		return NewGreedySolver(opts...), nil
	case Recursive:
		return NewRecursiveSolver(opts...), nil
	case Memoized:
		return NewMemoizedSolver(opts...), nil
	case BottomUp:
		return NewBottomUpSolver(opts...), nil
	default:
		return nil, fmt.Errorf("unsupported solver strategy: %v", strategy)
	}
}

// solveFunc is the strategy-specific part of a solve. items is non-empty and
// validated, capacity is non-negative.
type solveFunc func(items []core.Item, capacity int, stats *Stats) (core.Solution, error)

// run validates the input, handles the empty cases shared by every strategy,
// and logs and records the outcome of fn.
func run(
	ctx context.Context,
	strategy Strategy,
	recorder Recorder,
	items []core.Item,
	capacity int,
	fn solveFunc,
) (core.Solution, error) {
	logger := logging.FromContext(ctx).WithValues("strategy", strategy.String())
	start := time.Now()
	var stats Stats

	sol, err := func() (core.Solution, error) {
		if err := core.ValidateItems(items); err != nil {
			return core.Solution{}, err
		}
		if capacity < 0 {
			logger.V(logging.DEBUG).Info("Negative capacity treated as zero", "capacity", capacity)
			capacity = 0
		}
		if len(items) == 0 {
			return core.EmptySolution(), nil
		}
		return fn(items, capacity, &stats)
	}()

	elapsed := time.Since(start)
	recorder.ObserveSolve(strategy, elapsed, stats, err)
	if err != nil {
		logger.V(logging.DEBUG).Info("Solve failed", "items", len(items), "capacity", capacity, "error", err.Error())
		return core.Solution{}, fmt.Errorf("%s strategy: %w", strategy, err)
	}

	logger.V(logging.DEBUG).Info("Solve completed",
		"items", len(items),
		"capacity", capacity,
		"value", sol.Value,
		"selected", sol.Selected,
		"evaluations", stats.Evaluations,
		"elapsed", elapsed)
	return sol, nil
}

// checkTableCells fails if a rows x cols table would exceed maxCells.
// cols <= 0 means capacity+1 overflowed.
func checkTableCells(rows, cols, maxCells int) error {
	if rows > 0 && (cols <= 0 || cols > maxCells/rows) {
		return fmt.Errorf("%w: table of %d x %d cells exceeds limit of %d", core.ErrResourceExhausted, rows, cols, maxCells)
	}
	return nil
}

// zeroCostPrefix reports, for each index i, whether any item in 0..i has zero cost.
// Such an item still fits once capacity reaches zero, so the c <= 0 base case
// must not short-circuit past it.
func zeroCostPrefix(items []core.Item) []bool {
	prefix := make([]bool, len(items))
	seen := false
	for i, it := range items {
		if it.Cost == 0 {
			seen = true
		}
		prefix[i] = seen
	}
	return prefix
}
