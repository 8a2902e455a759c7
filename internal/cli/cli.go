// Package cli wires configuration, logging, metrics, the runner and the report
// renderer into the knapsack command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	iconfig "github.com/llm-d/llm-d-knapsack/internal/config"
	"github.com/llm-d/llm-d-knapsack/internal/logging"
	"github.com/llm-d/llm-d-knapsack/internal/metrics"
	"github.com/llm-d/llm-d-knapsack/internal/report"
	"github.com/llm-d/llm-d-knapsack/internal/runner"
	"github.com/llm-d/llm-d-knapsack/internal/scenario"
	"github.com/llm-d/llm-d-knapsack/pkg/config"
)

const (
	flagFile     = "file"
	flagStrategy = "strategy"
)

type app struct {
	fs  afero.Fs
	out io.Writer
	cfg *config.Config
}

// NewRootCommand returns the knapsack command. Files are read from fs and
// reports are written to out.
func NewRootCommand(fs afero.Fs, out io.Writer) *cobra.Command {
	a := &app{fs: fs, out: out}

	root := &cobra.Command{
		Use:   "knapsack",
		Short: "Compare 0/1 knapsack strategies",
		Long: "knapsack solves 0/1 knapsack instances with a greedy approximation, " +
			"pure recursion, memoized recursion and bottom-up dynamic programming, " +
			"and reports where the approximation falls short of the optimum.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	config.AddFlags(root.PersistentFlags())
	root.SetOut(out)

	root.AddCommand(a.demoCommand(), a.solveCommand())
	return root
}

// setup loads the configuration and installs the logger, unless the command
// context already carries one.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.fs, "", cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := logr.FromContext(ctx); err != nil {
		logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			return err
		}
		ctx = logging.IntoContext(ctx, logger)
	}
	cmd.SetContext(ctx)
	return nil
}

func (a *app) demoCommand() *cobra.Command {
	var strategies []string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run every strategy on the built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), withStrategies(scenario.Builtin(), strategies))
		},
	}
	cmd.Flags().StringSliceVar(&strategies, flagStrategy, nil, "strategies to run (default all)")
	return cmd
}

func (a *app) solveCommand() *cobra.Command {
	var (
		files      []string
		strategies []string
	)
	cmd := &cobra.Command{
		Use:   "solve -f FILE [-f FILE...]",
		Short: "Run strategies on the scenarios in YAML files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenarios, err := a.readScenarios(files)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), withStrategies(scenarios, strategies))
		},
	}
	cmd.Flags().StringSliceVarP(&files, flagFile, "f", nil, "scenario file")
	cmd.Flags().StringSliceVar(&strategies, flagStrategy, nil, "strategies to run, overriding the files (default all)")
	_ = cmd.MarkFlagRequired(flagFile)
	return cmd
}

func (a *app) readScenarios(files []string) ([]iconfig.ScenarioConfig, error) {
	var (
		all  []iconfig.ScenarioConfig
		errs error
	)
	for _, f := range files {
		data, err := afero.ReadFile(a.fs, f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reading %s: %w", f, err))
			continue
		}
		scenarios, err := iconfig.ParseScenarios(data)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		all = append(all, scenarios...)
	}
	if errs != nil {
		return nil, errs
	}
	return all, nil
}

func (a *app) run(ctx context.Context, scenarios []iconfig.ScenarioConfig) error {
	reg := prometheus.NewRegistry()
	r, err := runner.NewRunner(&runner.Config{
		Limits:   a.cfg.Solver.Limits(),
		Recorder: metrics.NewMetrics(reg),
	})
	if err != nil {
		return err
	}

	rep, err := r.Run(ctx, scenarios)
	if err != nil {
		return err
	}
	if err := report.Render(a.out, rep, a.cfg.Output.Format); err != nil {
		return err
	}
	if a.cfg.Output.Metrics {
		fmt.Fprintln(a.out)
		return metrics.WriteText(a.out, reg)
	}
	return nil
}

// withStrategies replaces the strategies of every scenario when strategies is set.
func withStrategies(scenarios []iconfig.ScenarioConfig, strategies []string) []iconfig.ScenarioConfig {
	if len(strategies) == 0 {
		return scenarios
	}
	for i := range scenarios {
		scenarios[i].Strategies = strategies
	}
	return scenarios
}
