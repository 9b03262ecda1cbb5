package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diim/analysis"
	"github.com/katalvlaran/diim/iim"
)

var labels = []string{"A", "B", "C"}

func model(t testing.TB, opts ...iim.Option) *iim.Model {
	t.Helper()
	m, err := iim.Build(labels, iim.InterdependencyTable{AStar: [][]float64{
		{0, 0.3, 0.1},
		{0.4, 0, 0.2},
		{0, 0.5, 0},
	}}, opts...)
	require.NoError(t, err)
	return m
}

func TestInfluenceTable(t *testing.T) {
	m := model(t)
	rows, err := analysis.InfluenceTable(m)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "B", rows[1].Sector)
	require.InDelta(t, 0.3, rows[1].Delta, 1e-12)
	require.InDelta(t, 0.4, rows[1].Rho, 1e-12)

	overall, _ := m.OverallDependency()
	require.InDelta(t, overall[2], rows[2].DeltaOverall, 1e-15)

	tbl := rows.Table()
	require.Equal(t, analysis.InfluenceSheet, tbl.Name)
	require.Equal(t, []string{"function", "delta", "delta_overall", "rho", "rho_overall"}, tbl.Header)
	require.Equal(t, "A", tbl.Rows[0][0])
	require.Len(t, tbl.Rows[0], 5)
}

func TestInfluenceTableSupplyMode(t *testing.T) {
	m, err := iim.Build([]string{"A", "B"}, iim.InputOutputTable{
		Transactions: [][]float64{{1, 2}, {3, 4}},
		Outputs:      []float64{10, 10},
		Mode:         iim.ModeSupply,
	})
	require.NoError(t, err)
	_, err = analysis.InfluenceTable(m)
	require.ErrorIs(t, err, analysis.ErrUndefinedInSupplyMode)
}

func TestInterdependencyTable(t *testing.T) {
	m := model(t)
	rows, err := analysis.InterdependencyTable(m)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, rows.Orders)
	require.Len(t, rows.Rows, 3)

	first := rows.Rows[2].Max[0]
	require.Equal(t, iim.MaxInterdependency{Sector: "C", On: "B", Value: 0.5}, first)

	second, err := m.MaxNthOrderInterdependency(2)
	require.NoError(t, err)
	require.Equal(t, second[0], rows.Rows[0].Max[1])

	tbl := rows.Table()
	require.Equal(t, []string{"i", "j", "max(aij)", "i", "j", "max(aij^2)", "i", "j", "max(aij^3)"}, tbl.Header)
	require.Equal(t, []any{"C", "B", 0.5}, tbl.Rows[2][:3])

	_, err = analysis.InterdependencyTable(m, 1, 0)
	require.ErrorIs(t, err, iim.ErrInvalidConfig)
}

func TestVectorAndTrajectoryTables(t *testing.T) {
	v := analysis.VectorTable("static", labels, "q", []float64{0.1, 0.2, 0.3})
	require.Equal(t, []string{"function", "q"}, v.Header)
	require.Equal(t, []any{"C", 0.3}, v.Rows[2])

	tr := iim.Trajectory{Steps: []int{0, 1}, Q: [][]float64{{0, 0, 0}, {0.1, 0.2, 0.3}}}
	d := analysis.TrajectoryTable("dynamic", labels, tr)
	require.Equal(t, []string{"k", "A", "B", "C"}, d.Header)
	require.Equal(t, []any{1, 0.1, 0.2, 0.3}, d.Rows[1])
}
