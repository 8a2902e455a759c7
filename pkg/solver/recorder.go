package solver

import "time"

// Stats describes the work done by one Solve call.
type Stats struct {
	// Evaluations counts subproblems computed: recursive calls for the recursive
	// strategy, cache fills for the memoized one, table cells for bottom-up and
	// items considered for greedy.
	Evaluations int
}

// Recorder is notified once per Solve call, including failed ones.
type Recorder interface {
	ObserveSolve(strategy Strategy, elapsed time.Duration, stats Stats, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSolve(Strategy, time.Duration, Stats, error) {}
