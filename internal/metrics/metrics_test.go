package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.ModelBuildsTotal)
	require.NotNil(t, r.DominantEigenvalue)
	require.NotNil(t, r.SimulationsTotal)
	require.NotNil(t, r.SimulationDuration)
	require.NotNil(t, r.SweepCasesTotal)
	require.NotNil(t, r.GetPrometheusRegistry())
}

func TestDefaultRegistry(t *testing.T) {
	require.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRecordBuild(t *testing.T) {
	r := NewRegistry()
	r.RecordBuild("interdependency", 0.35, nil)
	r.RecordBuild("interdependency", 0.5, nil)
	r.RecordBuild("consequence", 0, errors.New("boom"))

	var m dto.Metric
	c, err := r.ModelBuildsTotal.GetMetricWithLabelValues("interdependency", "ok")
	require.NoError(t, err)
	require.NoError(t, c.Write(&m))
	require.Equal(t, 2.0, m.GetCounter().GetValue())

	c, err = r.ModelBuildsTotal.GetMetricWithLabelValues("consequence", "error")
	require.NoError(t, err)
	m.Reset()
	require.NoError(t, c.Write(&m))
	require.Equal(t, 1.0, m.GetCounter().GetValue())

	m.Reset()
	require.NoError(t, r.DominantEigenvalue.Write(&m))
	require.Equal(t, 0.5, m.GetGauge().GetValue(), "failed build leaves the gauge alone")
}

func TestRecordSimulationAndSweep(t *testing.T) {
	r := NewRegistry()
	r.RecordSimulation("dynamic", 3*time.Millisecond)
	r.RecordSweepCase("ok")
	r.RecordSweepCase("ok")
	r.RecordSweepCase("skipped")

	families, err := r.GetPrometheusRegistry().Gather()
	require.NoError(t, err)
	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}

	h := byName["diim_simulation_duration_seconds"]
	require.NotNil(t, h)
	require.Equal(t, uint64(1), h.GetMetric()[0].GetHistogram().GetSampleCount())

	sweeps := byName["diim_sweep_cases_total"]
	require.NotNil(t, sweeps)
	var total float64
	for _, m := range sweeps.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	require.Equal(t, 3.0, total)
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordSimulation("static", time.Millisecond)

	path := filepath.Join(t.TempDir(), "diim.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `diim_simulations_total{model="static"} 1`))
}
