package core

import "errors"

var (
	// ErrInvalidInput is returned when an item has a negative value or cost.
	ErrInvalidInput = errors.New("invalid knapsack input")
	// ErrResourceExhausted is returned when an instance is larger than a strategy's configured bound.
	ErrResourceExhausted = errors.New("knapsack instance exceeds strategy limits")
	// ErrInconsistentSolution is returned by Solution.Verify.
	ErrInconsistentSolution = errors.New("inconsistent knapsack solution")
)
