// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diim/analysis"
	"github.com/katalvlaran/diim/iim"
	"github.com/katalvlaran/diim/internal/config"
	"github.com/katalvlaran/diim/internal/logging"
	"github.com/katalvlaran/diim/internal/metrics"
	"github.com/katalvlaran/diim/scenario"
)

var version = "0.1.0-dev"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Registry
}

func main() {
	if err := newRootCmd(metrics.DefaultRegistry()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(reg *metrics.Registry) *cobra.Command {
	a := &app{metrics: reg}

	rootCmd := &cobra.Command{
		Use:   "diim",
		Short: "Inoperability input-output models for interdependent infrastructures",
		Long: `diim builds static and dynamic inoperability input-output models from a
scenario file and reports how a perturbation propagates across
interdependent infrastructure sectors.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("scenario", "", "Scenario file (YAML)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, csv or json")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace, warn or error")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	rootCmd.PersistentFlags().Bool("sheet-out", false, "Also write the result sheet into the scenario workbook")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStaticCmd(a),
		newDynamicCmd(a),
		newRecoveryCmd(a),
		newInfluenceCmd(a),
		newInterdependencyCmd(a),
		newCascadeCmd(a),
		newSweepCmd(a),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "diim version %s\n", version)
		},
	}
}

// configure resolves settings: defaults, config file, environment, then flags.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	return nil
}

// loadModel reads the --scenario file and builds its model.
func (a *app) loadModel(cmd *cobra.Command) (*scenario.Scenario, *iim.Model, error) {
	path, _ := cmd.Flags().GetString("scenario")
	if path == "" {
		return nil, nil, fmt.Errorf("--scenario is required")
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, nil, err
	}

	m, err := sc.Build(a.logger)
	var rho float64
	if err == nil {
		_, rho = m.DominantEigenvalue()
	}
	a.metrics.RecordBuild(sc.Model.Kind, rho, err)
	if err != nil {
		return nil, nil, fmt.Errorf("building model from %s: %w", path, err)
	}
	a.logger.Info("model loaded", "scenario", path, "sectors", m.Len(), "kind", m.Kind(), "rho", rho)

	return sc, m, nil
}

// finish prints t and performs the optional sheet and metrics exports.
func (a *app) finish(cmd *cobra.Command, sc *scenario.Scenario, t analysis.Table) error {
	if err := render(cmd.OutOrStdout(), a.cfg.Output, t); err != nil {
		return err
	}

	if sheetOut, _ := cmd.Flags().GetBool("sheet-out"); sheetOut {
		book := sc.Workbook()
		if book == "" {
			return fmt.Errorf("--sheet-out needs a scenario whose table is read from an .xlsx workbook")
		}
		if err := scenario.WriteSheet(book, t.Name, t.Header, t.Rows); err != nil {
			return err
		}
		a.logger.Info("sheet written", "workbook", book, "sheet", t.Name)
	}

	if a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
