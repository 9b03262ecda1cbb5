package iim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diim/iim"
	"github.com/katalvlaran/diim/perturbation"
)

func TestStaticInoperability(t *testing.T) {
	m := twoSector(t, iim.WithPerturbation([]string{"B"}, nil, []float64{0.6}))
	q, err := m.StaticInoperability()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.18 / 0.88, 0.6 / 0.88}, q, 1e-12)
}

// Haimes & Jiang (2001): two sectors, sector 2 loses 60% of its demand.
func TestStaticHaimesJiang(t *testing.T) {
	m, err := iim.Build(pair,
		iim.InterdependencyTable{AStar: [][]float64{{0, 0.8}, {0.2, 0}}},
		iim.WithPerturbation([]string{"B"}, nil, []float64{0.6}),
	)
	require.NoError(t, err)
	q, err := m.StaticInoperability()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.571, 0.714}, q, 1e-3)
}

func TestStaticZeroForcing(t *testing.T) {
	m := twoSector(t)
	q, err := m.StaticInoperability()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, q)
}

func TestStaticClampsAtOne(t *testing.T) {
	m := twoSector(t, iim.WithPerturbation([]string{"A", "B"}, nil, []float64{1, 1}))
	q, err := m.StaticInoperability()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, q)
}

func TestDynamicSingleStep(t *testing.T) {
	q0 := []float64{0.2, 0.7}
	m := twoSector(t, iim.WithInitialInoperability(q0))
	for _, n := range []int{0, 1} {
		tr, err := m.DynamicInoperability(n)
		require.NoError(t, err)
		require.Equal(t, 1, tr.Len())
		require.Equal(t, []int{0}, tr.Steps)
		require.Equal(t, q0, tr.Final())
	}
}

func TestDynamicRecurrence(t *testing.T) {
	// K = I reduces the recurrence to q[k] = A*·q[k−1] + c*(k).
	m := twoSector(t, iim.WithPerturbation(
		[]string{"B"}, []perturbation.Window{{Start: 0, End: 1000}}, []float64{0.6}),
		iim.WithTimeSteps(200),
	)
	tr, err := m.Simulate()
	require.NoError(t, err)
	require.Equal(t, 200, tr.Len())
	require.Equal(t, []float64{0, 0}, tr.Q[0])
	require.InDeltaSlice(t, []float64{0, 0.6}, tr.Q[1], 1e-15)
	require.InDeltaSlice(t, []float64{0.18, 0.6}, tr.Q[2], 1e-15)
	require.Equal(t, 199, tr.Steps[199])

	// The fixed point is the static equilibrium.
	static, err := m.StaticInoperability()
	require.NoError(t, err)
	require.InDeltaSlice(t, static, tr.Final(), 1e-9)
}

func TestDynamicWindowInclusive(t *testing.T) {
	zero := iim.InterdependencyTable{AStar: [][]float64{{0, 0}, {0, 0}}}
	m, err := iim.Build(pair, zero, iim.WithPerturbation(
		[]string{"A"}, []perturbation.Window{{Start: 2, End: 4}}, []float64{0.3}))
	require.NoError(t, err)

	tr, err := m.DynamicInoperability(7)
	require.NoError(t, err)
	got := make([]float64, tr.Len())
	for r, q := range tr.Q {
		got[r] = q[0]
	}
	require.Equal(t, []float64{0, 0, 0.3, 0.3, 0.3, 0, 0}, got)
}

func TestDynamicClampsAtOne(t *testing.T) {
	m, err := iim.Build([]string{"A"},
		iim.InterdependencyTable{AStar: [][]float64{{0.5}}},
		iim.WithPerturbation([]string{"A"}, []perturbation.Window{{Start: 0, End: 10}}, []float64{0.9}),
	)
	require.NoError(t, err)
	tr, err := m.DynamicInoperability(4)
	require.NoError(t, err)
	require.InDelta(t, 0.9, tr.Q[1][0], 1e-15)
	require.Equal(t, 1.0, tr.Q[2][0])
	require.Equal(t, 1.0, tr.Q[3][0])
}

func TestDynamicRecovery(t *testing.T) {
	m, err := iim.Build([]string{"A"},
		iim.InterdependencyTable{AStar: [][]float64{{0}}},
		iim.WithK([][]float64{{0.5}}),
		iim.WithInitialInoperability([]float64{0.8}),
		iim.WithTimeSteps(5),
	)
	require.NoError(t, err)

	tr, err := m.Recover()
	require.NoError(t, err)
	require.Equal(t, 5, tr.Len())
	require.Equal(t, []float64{0}, tr.Q[0], "row 0 is zero, not q(0)")
	for k := 1; k < 5; k++ {
		require.InDelta(t, 0.8*math.Exp(-0.5*float64(k)), tr.Q[k][0], 1e-12, "k=%d", k)
	}

	single, err := m.DynamicRecovery(1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0}}, single.Q)
}

func TestDynamicRecoveryCoupled(t *testing.T) {
	m := twoSector(t,
		iim.WithK([][]float64{{0.3, 0.6}}),
		iim.WithInitialInoperability([]float64{0.5, 0.9}),
	)
	tr, err := m.DynamicRecovery(60)
	require.NoError(t, err)
	for _, q := range tr.Q {
		for _, v := range q {
			require.GreaterOrEqual(t, v, 0.0)
		}
	}
	// K(I − A*) has eigenvalues with positive real part: recovery decays to zero.
	require.InDeltaSlice(t, []float64{0, 0}, tr.Final(), 1e-3)
}

func TestImpact(t *testing.T) {
	zero := iim.Trajectory{Steps: []int{0, 1, 2}, Q: [][]float64{{0, 0}, {0, 0}, {0, 0}}}
	require.Equal(t, []float64{0, 0}, iim.Impact(zero))

	tr := iim.Trajectory{Steps: []int{0, 1, 2}, Q: [][]float64{{0, 1}, {1, 1}, {1, 0}}}
	require.Equal(t, []float64{1.5, 1.5}, iim.Impact(tr))

	single := iim.Trajectory{Steps: []int{0}, Q: [][]float64{{0.4, 0.2}}}
	require.Equal(t, []float64{0, 0}, iim.Impact(single))

	require.Nil(t, iim.Impact(iim.Trajectory{}))
}

func TestImpactMalformedTrajectory(t *testing.T) {
	// Without one step per row the spacing is one.
	noSteps := iim.Trajectory{Q: [][]float64{{0.1}, {0.2}}}
	require.NotPanics(t, func() { iim.Impact(noSteps) })
	require.InDeltaSlice(t, []float64{0.15}, iim.Impact(noSteps), 1e-15)

	short := iim.Trajectory{Steps: []int{0}, Q: [][]float64{{0, 2}, {2, 0}}}
	require.InDeltaSlice(t, []float64{1, 1}, iim.Impact(short), 1e-15)

	ragged := iim.Trajectory{Steps: []int{0, 1}, Q: [][]float64{{0, 1}, {1}}}
	require.NotPanics(t, func() { iim.Impact(ragged) })
	require.Nil(t, iim.Impact(ragged))
}

func TestTrajectoryTable(t *testing.T) {
	tr := iim.Trajectory{Steps: []int{0, 1}, Q: [][]float64{{0.1, 0.2}, {0.3, 0.4}}}
	d, err := tr.Table()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0.1, 0.2}, {1, 0.3, 0.4}}, d.ToSlices())

	_, err = iim.Trajectory{}.Table()
	require.Error(t, err)
}
