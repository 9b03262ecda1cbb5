package iim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diim/iim"
)

var triple = []string{"A", "B", "C"}

func threeSector(t testing.TB) *iim.Model {
	t.Helper()
	m, err := iim.Build(triple, iim.InterdependencyTable{AStar: [][]float64{
		{0, 0.3, 0.1},
		{0.4, 0, 0.2},
		{0, 0.5, 0},
	}})
	require.NoError(t, err)
	return m
}

func TestDependencyInfluence(t *testing.T) {
	m := threeSector(t)

	dep, ok := m.Dependency()
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{0.2, 0.3, 0.25}, dep, 1e-12)

	inf, ok := m.Influence()
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{0.2, 0.4, 0.15}, inf, 1e-12)
}

func TestOverallIndices(t *testing.T) {
	m := twoSector(t)

	dep, ok := m.OverallDependency()
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{0.3 / 0.88, 0.4 / 0.88}, dep, 1e-12)

	inf, ok := m.OverallInfluence()
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{0.4 / 0.88, 0.3 / 0.88}, inf, 1e-12)
}

func TestIndicesUndefinedInSupplyMode(t *testing.T) {
	tbl := iim.InputOutputTable{
		Transactions: [][]float64{{10, 20}, {30, 0}},
		Outputs:      []float64{100, 100},
		Mode:         iim.ModeSupply,
	}
	m, err := iim.Build(pair, tbl)
	require.NoError(t, err)

	for _, f := range []func() ([]float64, bool){m.Dependency, m.Influence, m.OverallDependency, m.OverallInfluence} {
		v, ok := f()
		require.False(t, ok)
		require.Nil(t, v)
	}
}

func TestIndicesSingleSector(t *testing.T) {
	m, err := iim.Build([]string{"A"}, iim.InterdependencyTable{AStar: [][]float64{{0.4}}})
	require.NoError(t, err)
	dep, ok := m.Dependency()
	require.True(t, ok)
	require.Equal(t, []float64{0}, dep)
	inf, ok := m.OverallInfluence()
	require.True(t, ok)
	require.Equal(t, []float64{0}, inf)
}

func TestInterdependencyIndex(t *testing.T) {
	m := twoSector(t)

	v, err := m.InterdependencyIndex("A", "B", 1)
	require.NoError(t, err)
	require.Equal(t, 0.3, v)

	// A*² = 0.12·I for this matrix.
	v, err = m.InterdependencyIndex("A", "A", 2)
	require.NoError(t, err)
	require.InDelta(t, 0.12, v, 1e-15)
	v, err = m.InterdependencyIndex("A", "B", 2)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	_, err = m.InterdependencyIndex("A", "Z", 1)
	require.ErrorIs(t, err, iim.ErrUnknownSector)
	_, err = m.InterdependencyIndex("Z", "A", 1)
	require.ErrorIs(t, err, iim.ErrUnknownSector)
	_, err = m.InterdependencyIndex("A", "B", 0)
	require.ErrorIs(t, err, iim.ErrInvalidConfig)
}

func TestMaxNthOrderInterdependency(t *testing.T) {
	m := threeSector(t)
	got, err := m.MaxNthOrderInterdependency(1)
	require.NoError(t, err)
	require.Equal(t, []iim.MaxInterdependency{
		{Sector: "A", On: "B", Value: 0.3},
		{Sector: "B", On: "A", Value: 0.4},
		{Sector: "C", On: "B", Value: 0.5},
	}, got)

	_, err = m.MaxNthOrderInterdependency(0)
	require.ErrorIs(t, err, iim.ErrInvalidConfig)

	// All-zero rows tie everywhere; the first column wins.
	z, err := iim.Build(triple, iim.InterdependencyTable{AStar: [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}})
	require.NoError(t, err)
	got, err = z.MaxNthOrderInterdependency(3)
	require.NoError(t, err)
	for _, r := range got {
		require.Equal(t, "A", r.On)
		require.Equal(t, 0.0, r.Value)
	}
}
