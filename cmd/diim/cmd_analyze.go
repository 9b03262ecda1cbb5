// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/diim/analysis"
)

func newInfluenceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "influence",
		Short: "Dependency and influence indices per sector (demand mode)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, m, err := a.loadModel(cmd)
			if err != nil {
				return err
			}
			rows, err := analysis.InfluenceTable(m)
			if err != nil {
				return err
			}
			return a.finish(cmd, sc, rows.Table())
		},
	}
}

func newInterdependencyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interdependency",
		Short: "Strongest n-th order interdependency of every sector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, m, err := a.loadModel(cmd)
			if err != nil {
				return err
			}
			orders, _ := cmd.Flags().GetIntSlice("orders")
			rows, err := analysis.InterdependencyTable(m, orders...)
			if err != nil {
				return err
			}
			return a.finish(cmd, sc, rows.Table())
		},
	}
	cmd.Flags().IntSlice("orders", []int{1, 2, 3}, "Interdependency orders to report")
	return cmd
}

func newCascadeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cascade SECTOR",
		Short: "Order in which an outage of SECTOR propagates through A*",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, m, err := a.loadModel(cmd)
			if err != nil {
				return err
			}
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			depth, _ := cmd.Flags().GetInt("max-depth")
			res, err := analysis.Cascade(m, args[0],
				analysis.WithCascadeContext(cmd.Context()),
				analysis.WithThreshold(threshold),
				analysis.WithMaxDepth(depth),
				analysis.WithOnVisit(func(sector string, d int) error {
					a.logger.Debug("cascade reached", "sector", sector, "depth", d)
					return nil
				}),
			)
			if err != nil {
				return err
			}
			return a.finish(cmd, sc, res.Table())
		},
	}
	cmd.Flags().Float64("threshold", 0, "Ignore dependencies a*_ji at or below this value")
	cmd.Flags().Int("max-depth", 0, "Stop after this many propagation orders (0: no limit)")
	return cmd
}
