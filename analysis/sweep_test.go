package analysis_test

import (
	"bytes"
	"context"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diim/analysis"
	"github.com/katalvlaran/diim/iim"
	"github.com/katalvlaran/diim/internal/logging"
	"github.com/katalvlaran/diim/internal/metrics"
	"github.com/katalvlaran/diim/perturbation"
)

func TestSweepSingleStatic(t *testing.T) {
	m := model(t, iim.WithPerturbation([]string{"C"}, nil, []float64{0.9}))
	results, err := analysis.SweepSingle(context.Background(), m, analysis.SweepConfig{
		Simulation: analysis.SimStatic,
		Magnitude:  0.2,
		Workers:    2,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		require.Equal(t, []string{labels[i]}, r.Sectors, "results keep case order")

		want := m.Fork()
		require.NoError(t, want.SetPerturbation(r.Sectors, nil, []float64{0.2}))
		q, err := want.StaticInoperability()
		require.NoError(t, err)
		require.InDeltaSlice(t, q, r.Impact, 1e-15)
		require.InDelta(t, q[0]+q[1]+q[2], r.Total, 1e-15)
	}

	// The caller's perturbation is untouched.
	require.Equal(t, []float64{0, 0, 0.9}, m.Forcing(0))
}

func TestSweepPairsDynamic(t *testing.T) {
	m := model(t, iim.WithTimeSteps(20), iim.WithK([][]float64{{0.5, 0.5, 0.5}}))
	results, err := analysis.SweepPairs(context.Background(), m, analysis.SweepConfig{
		Simulation: analysis.SimDynamic,
		Magnitude:  0.1,
		Window:     perturbation.Window{Start: 0, End: 5},
		Workers:    3,
	})
	require.NoError(t, err)
	require.Len(t, results, 6)

	var got [][]string
	for _, r := range results {
		got = append(got, r.Sectors)
	}
	require.Equal(t, [][]string{
		{"A", "A"}, {"A", "B"}, {"A", "C"},
		{"B", "B"}, {"B", "C"},
		{"C", "C"},
	}, got)

	// A doubled sector is the single attack: later entry overwrites the earlier one.
	single, err := analysis.SweepSingle(context.Background(), m, analysis.SweepConfig{
		Simulation: analysis.SimDynamic,
		Magnitude:  0.1,
		Window:     perturbation.Window{Start: 0, End: 5},
	})
	require.NoError(t, err)
	require.InDeltaSlice(t, single[1].Impact, results[3].Impact, 1e-15)

	// A pair hurts at least as much as either of its members alone.
	require.GreaterOrEqual(t, results[1].Total, single[0].Total)
	require.GreaterOrEqual(t, results[1].Total, single[1].Total)
}

func TestSweepSkipsUnknownSectors(t *testing.T) {
	var buf bytes.Buffer
	reg := metrics.NewRegistry()
	m := model(t)

	results, err := analysis.SweepSingle(context.Background(), m, analysis.SweepConfig{
		Simulation: analysis.SimStatic,
		Magnitude:  0.1,
		Sectors:    []string{"A", "Z", "C"},
		Logger:     logging.NewLoggerWithRunID("info", &buf, "test"),
		Metrics:    reg,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, []string{"A"}, results[0].Sectors)
	require.Equal(t, []string{"C"}, results[1].Sectors)
	require.Contains(t, buf.String(), "sweep case skipped")

	var metric dto.Metric
	c, err := reg.SweepCasesTotal.GetMetricWithLabelValues("skipped")
	require.NoError(t, err)
	require.NoError(t, c.Write(&metric))
	require.Equal(t, 1.0, metric.GetCounter().GetValue())

	metric.Reset()
	c, err = reg.SweepCasesTotal.GetMetricWithLabelValues("ok")
	require.NoError(t, err)
	require.NoError(t, c.Write(&metric))
	require.Equal(t, 2.0, metric.GetCounter().GetValue())
}

func TestSweepRejects(t *testing.T) {
	m := model(t)
	ctx := context.Background()

	_, err := analysis.SweepSingle(ctx, m, analysis.SweepConfig{Simulation: analysis.SimRecovery})
	require.ErrorIs(t, err, iim.ErrInvalidConfig)

	_, err = analysis.SweepSingle(ctx, m, analysis.SweepConfig{Simulation: "monte-carlo"})
	require.ErrorIs(t, err, iim.ErrInvalidConfig)

	_, err = analysis.SweepSingle(ctx, m, analysis.SweepConfig{
		Simulation: analysis.SimDynamic,
		Magnitude:  0.1,
		Window:     perturbation.Window{Start: 4, End: 1},
	})
	require.ErrorIs(t, err, iim.ErrInvalidConfig, "non-skippable case errors abort the sweep")
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analysis.SweepPairs(ctx, model(t), analysis.SweepConfig{Simulation: analysis.SimStatic, Magnitude: 0.1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSweepTable(t *testing.T) {
	results := []analysis.SweepResult{
		{Sectors: []string{"A", "B"}, Impact: []float64{0.1, 0.2, 0}, Total: 0.3},
		{Sectors: []string{"C"}, Impact: []float64{0, 0, 0.5}, Total: 0.5},
	}
	tbl := analysis.SweepTable("pairs", labels, results)
	require.Equal(t, []string{"sector1", "sector2", "total", "A", "B", "C"}, tbl.Header)
	require.Equal(t, []any{"C", "", 0.5, 0.0, 0.0, 0.5}, tbl.Rows[1])
}
