// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diim/analysis"
	"github.com/katalvlaran/diim/perturbation"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Perturb every sector (or pair of sectors) and rank the impact",
		Long: `sweep replaces the scenario's perturbation with a uniform attack on each
sector in turn (or each pair with --pairs), simulates, and reports the
impact of every case. Cases run concurrently on independent copies of the
perturbation; the model matrices are shared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, m, err := a.loadModel(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			pairs, _ := flags.GetBool("pairs")
			sim, _ := flags.GetString("simulation")
			window, _ := flags.GetFloat64Slice("window")
			sectors, _ := flags.GetStringSlice("sectors")
			steps, _ := flags.GetInt("steps")

			cfg := analysis.SweepConfig{
				Simulation: analysis.Simulation(sim),
				Magnitude:  a.cfg.Sweep.Magnitude,
				TimeSteps:  steps,
				Workers:    a.cfg.Sweep.Workers,
				Logger:     a.logger,
				Metrics:    a.metrics,
			}
			if flags.Changed("magnitude") {
				cfg.Magnitude, _ = flags.GetFloat64("magnitude")
			}
			if flags.Changed("workers") {
				cfg.Workers, _ = flags.GetInt("workers")
			}
			if len(sectors) > 0 {
				cfg.Sectors = sectors
			}
			switch len(window) {
			case 0:
			case 2:
				cfg.Window = perturbation.Window{Start: window[0], End: window[1]}
			default:
				return fmt.Errorf("--window takes two values: start,end")
			}

			sweep, name := analysis.SweepSingle, "Sweep_single"
			if pairs {
				sweep, name = analysis.SweepPairs, "Sweep_pairs"
			}
			results, err := sweep(cmd.Context(), m, cfg)
			if err != nil {
				return err
			}
			return a.finish(cmd, sc, analysis.SweepTable(name, m.Infrastructures(), results))
		},
	}
	cmd.Flags().Bool("pairs", false, "Perturb every pair of sectors instead of single sectors")
	cmd.Flags().String("simulation", "static", "Simulation per case: static or dynamic")
	cmd.Flags().Float64("magnitude", 0.1, "Demand reduction applied to each perturbed sector")
	cmd.Flags().Float64Slice("window", nil, "Perturbation window start,end (default 0,0)")
	cmd.Flags().StringSlice("sectors", nil, "Restrict the sweep to these sectors")
	cmd.Flags().Int("steps", 0, "Time steps for dynamic cases (default: the scenario's time_steps)")
	cmd.Flags().Int("workers", 4, "Concurrent cases")
	return cmd
}
