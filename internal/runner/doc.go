// Package runner drives the knapsack strategies over a set of scenarios and
// assembles the results into a v1alpha1.SolveReport.
//
// The runner follows a pipeline pattern per scenario:
//
//	Validate → Solve (each strategy) → Verify → Compare
//
// Example usage:
//
//	r, err := runner.NewRunner(&runner.Config{
//	    Limits:   cfg.Solver.Limits(),
//	    Recorder: metrics.NewMetrics(registry),
//	})
//	if err != nil {
//	    return err
//	}
//	report, err := r.Run(ctx, scenario.Builtin())
//	if err != nil {
//	    log.Error(err, "run failed")
//	    return err
//	}
//
// Run Flow:
//
//  1. Validate the scenario
//     - Reject negative values or costs, unknown strategy names
//
//  2. Solve with each requested strategy
//     - A strategy over its configured limits is reported with an error
//       and the run continues
//
//  3. Verify every solution
//     - Selection cost within capacity, values add up, no duplicate indices
//
//  4. Compare
//     - Exact strategies must agree on the optimum
//     - Every successful result gets its gap to the optimum
//
// Error Handling:
//   - Invalid scenario → Run fails, nothing is solved
//   - Strategy over limits → recorded in the result, run continues
//   - Inconsistent solution or exact strategies disagreeing → Run fails
package runner
