// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus instruments for model builds,
// simulations and sweeps. A Registry is private to its owner; nothing is
// registered with the global default registerer.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all diim metrics.
type Registry struct {
	ModelBuildsTotal   *prometheus.CounterVec
	DominantEigenvalue prometheus.Gauge

	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec

	SweepCasesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry used by the CLI.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initModelMetrics()
	r.initSimulationMetrics()
	r.initSweepMetrics()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initModelMetrics() {
	r.ModelBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "diim_model_builds_total",
			Help: "Total number of model builds by table kind and result",
		},
		[]string{"kind", "result"},
	)

	r.DominantEigenvalue = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "diim_dominant_eigenvalue",
			Help: "Spectral radius of the interdependency matrix of the last successful build",
		},
	)
}

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "diim_simulations_total",
			Help: "Total number of simulations run by model",
		},
		[]string{"model"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diim_simulation_duration_seconds",
			Help:    "Simulation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"model"},
	)
}

func (r *Registry) initSweepMetrics() {
	r.SweepCasesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "diim_sweep_cases_total",
			Help: "Total number of sweep cases by result",
		},
		[]string{"result"},
	)
}

// RecordBuild records a model build. rho is only used when err is nil.
func (r *Registry) RecordBuild(kind string, rho float64, err error) {
	if err != nil {
		r.ModelBuildsTotal.WithLabelValues(kind, "error").Inc()
		return
	}
	r.ModelBuildsTotal.WithLabelValues(kind, "ok").Inc()
	r.DominantEigenvalue.Set(rho)
}

// RecordSimulation records one simulation run of the given model
// ("static", "dynamic" or "recovery").
func (r *Registry) RecordSimulation(model string, duration time.Duration) {
	r.SimulationsTotal.WithLabelValues(model).Inc()
	r.SimulationDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordSweepCase records the outcome of one sweep case
// ("ok", "skipped" or "error").
func (r *Registry) RecordSweepCase(result string) {
	r.SweepCasesTotal.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
