// Package config provides configuration management for the knapsack tools.
//
// This package handles loading, validation, and access to configuration from
// command-line flags, environment variables and an optional YAML file.
//
// Configuration Types:
//
//   - SolverConfig: instance size bounds for the exact strategies
//   - LoggingConfig: log level and encoder selection
//   - OutputConfig: report format and metrics dump
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (prefix KNAPSACK_, e.g. KNAPSACK_SOLVER_MAXTABLECELLS)
//  3. YAML config file
//  4. Default values (lowest priority)
//
// Example usage:
//
//	flags := pflag.NewFlagSet("knapsack", pflag.ContinueOnError)
//	config.AddFlags(flags)
//	_ = flags.Parse(os.Args[1:])
//
//	cfg, err := config.Load(afero.NewOsFs(), "", flags)
//	if err != nil {
//	    return err
//	}
//	s, err := solver.NewSolver(solver.BottomUp, solver.WithLimits(cfg.Solver.Limits()))
//
// Example file:
//
//	solver:
//	  maxRecursiveItems: 20
//	  maxTableCells: 1000000
//	logging:
//	  level: debug
//	output:
//	  format: yaml
//
// All values are validated on load; every problem found is reported, not just
// the first.
package config
