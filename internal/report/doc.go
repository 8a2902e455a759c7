// Package report renders solve reports for the console.
//
// A report is produced by the runner and rendered in one of three formats:
//
//   - table: one section per scenario with a lipgloss table of the strategy
//     results, followed by a line for every strategy that fell short of the
//     optimum
//   - json: the SolveReport document, indented
//   - yaml: the SolveReport document as YAML
//
// # Table Output
//
//	projects (capacity 10): four projects competing for 10 hours
//	┌───────────┬───────┬──────┬──────────┬─────┬─────────────┬──────────┐
//	│ STRATEGY  │ VALUE │ COST │ SELECTED │ GAP │ EVALUATIONS │ DURATION │
//	├───────────┼───────┼──────┼──────────┼─────┼─────────────┼──────────┤
//	│ greedy    │ 29    │ 9    │ C, B, A  │ 0   │ 0           │ 12µs     │
//	...
//
// Strategies that did not run because the instance exceeded their limits show
// the error in place of the value.
//
// The json and yaml outputs carry the same document, so they can be fed to
// other tools.
package report
