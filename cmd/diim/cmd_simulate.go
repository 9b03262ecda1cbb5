// SPDX-License-Identifier: MIT

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diim/analysis"
	"github.com/katalvlaran/diim/iim"
)

func newStaticCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "static",
		Short: "Equilibrium inoperability q = S·c*",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, m, err := a.loadModel(cmd)
			if err != nil {
				return err
			}
			start := time.Now()
			q, err := m.StaticInoperability()
			if err != nil {
				return err
			}
			a.metrics.RecordSimulation("static", time.Since(start))
			return a.finish(cmd, sc, analysis.VectorTable("Static_inoperability", m.Infrastructures(), "q", q))
		},
	}
}

func newDynamicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dynamic",
		Short: "Demand-reduction dynamic inoperability trajectory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTrajectory(cmd, "dynamic", (*iim.Model).DynamicInoperability)
		},
	}
	addTrajectoryFlags(cmd)
	return cmd
}

func newRecoveryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Exponential recovery trajectory from q(0)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTrajectory(cmd, "recovery", (*iim.Model).DynamicRecovery)
		},
	}
	addTrajectoryFlags(cmd)
	return cmd
}

func addTrajectoryFlags(cmd *cobra.Command) {
	cmd.Flags().Int("steps", 0, "Number of time steps (default: the scenario's time_steps)")
	cmd.Flags().Bool("impact", false, "Print the integrated impact per sector instead of the trajectory")
}

func (a *app) runTrajectory(cmd *cobra.Command, name string, run func(*iim.Model, int) (iim.Trajectory, error)) error {
	sc, m, err := a.loadModel(cmd)
	if err != nil {
		return err
	}
	steps, _ := cmd.Flags().GetInt("steps")
	if steps <= 0 {
		steps = m.TimeSteps()
	}

	start := time.Now()
	tr, err := run(m, steps)
	if err != nil {
		return err
	}
	a.metrics.RecordSimulation(name, time.Since(start))
	a.logger.Debug("simulation done", "model", name, "steps", tr.Len())

	labels := m.Infrastructures()
	if impact, _ := cmd.Flags().GetBool("impact"); impact {
		return a.finish(cmd, sc, analysis.VectorTable(sheetName(name)+"_impact", labels, "impact", iim.Impact(tr)))
	}
	return a.finish(cmd, sc, analysis.TrajectoryTable(sheetName(name), labels, tr))
}

func sheetName(model string) string {
	switch model {
	case "recovery":
		return "Dynamic_recovery"
	default:
		return "Dynamic_inoperability"
	}
}
