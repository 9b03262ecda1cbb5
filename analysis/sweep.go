// SPDX-License-Identifier: MIT

package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/diim/iim"
	"github.com/katalvlaran/diim/internal/logging"
	"github.com/katalvlaran/diim/internal/metrics"
	"github.com/katalvlaran/diim/perturbation"
)

// Simulation selects what a sweep case runs.
type Simulation string

const (
	SimStatic   Simulation = "static"
	SimDynamic  Simulation = "dynamic"
	SimRecovery Simulation = "recovery"
)

// SweepConfig controls SweepSingle and SweepPairs.
type SweepConfig struct {
	// Simulation is SimStatic or SimDynamic. Recovery is driven by q(0), not
	// by the perturbation, and is rejected.
	Simulation Simulation
	// Magnitude is the demand reduction applied to every perturbed sector.
	Magnitude float64
	// Window is when the perturbation is active. The zero value is [0,0].
	Window perturbation.Window
	// TimeSteps for dynamic runs; 0 uses the model's configured count.
	TimeSteps int
	// Sectors restricts the sweep; nil sweeps every infrastructure.
	// Unknown labels are skipped with a warning.
	Sectors []string
	// Workers bounds concurrency; <= 0 means GOMAXPROCS.
	Workers int

	Logger  *slog.Logger
	Metrics *metrics.Registry
}

// SweepResult is the outcome of one case. For static sweeps Impact holds the
// equilibrium inoperability; for dynamic sweeps it is the time integral.
type SweepResult struct {
	Sectors []string  `json:"sectors"`
	Impact  []float64 `json:"impact"`
	Total   float64   `json:"total"`
}

// SweepSingle perturbs each sector on its own.
func SweepSingle(ctx context.Context, m *iim.Model, cfg SweepConfig) ([]SweepResult, error) {
	labels := cfg.Sectors
	if labels == nil {
		labels = m.Infrastructures()
	}
	cases := make([][]string, len(labels))
	for i, l := range labels {
		cases[i] = []string{l}
	}

	return sweep(ctx, m, cfg, cases)
}

// SweepPairs perturbs every unordered pair {i, j} with i <= j; the i == j
// cases are the single-sector attacks.
func SweepPairs(ctx context.Context, m *iim.Model, cfg SweepConfig) ([]SweepResult, error) {
	labels := cfg.Sectors
	if labels == nil {
		labels = m.Infrastructures()
	}
	cases := make([][]string, 0, len(labels)*(len(labels)+1)/2)
	for i := range labels {
		for j := i; j < len(labels); j++ {
			cases = append(cases, []string{labels[i], labels[j]})
		}
	}

	return sweep(ctx, m, cfg, cases)
}

type caseResult struct {
	res     SweepResult
	skipped bool
}

func sweep(ctx context.Context, m *iim.Model, cfg SweepConfig, cases [][]string) ([]SweepResult, error) {
	switch cfg.Simulation {
	case SimStatic, SimDynamic:
	case SimRecovery:
		return nil, fmt.Errorf("sweep: %w: recovery does not depend on the perturbation", iim.ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("sweep: %w: unknown simulation %q", iim.ErrInvalidConfig, cfg.Simulation)
	}
	if math.IsNaN(cfg.Magnitude) || math.IsInf(cfg.Magnitude, 0) {
		return nil, fmt.Errorf("sweep: %w: magnitude %v", iim.ErrInvalidConfig, cfg.Magnitude)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	steps := cfg.TimeSteps
	if steps <= 0 {
		steps = m.TimeSteps()
	}

	results := make([]caseResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, sectors := range cases {
		if gctx.Err() != nil {
			break
		}
		idx, sectors := idx, sectors // per-iteration copies for go < 1.22 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runCase(m.Fork(), cfg, steps, sectors)
			switch {
			case errors.Is(err, iim.ErrUnknownSector):
				logger.Warn("sweep case skipped", "sectors", sectors, "err", err)
				results[idx].skipped = true
				record(cfg.Metrics, "skipped")
				return nil
			case err != nil:
				record(cfg.Metrics, "error")
				return fmt.Errorf("sweep case %v: %w", sectors, err)
			}
			logger.Log(gctx, logging.LevelTrace, "sweep case done", "sectors", sectors, "total", res.Total)
			results[idx].res = res
			record(cfg.Metrics, "ok")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]SweepResult, 0, len(results))
	for _, r := range results {
		if !r.skipped {
			out = append(out, r.res)
		}
	}
	logger.Debug("sweep finished", "cases", len(cases), "results", len(out), "simulation", cfg.Simulation)

	return out, nil
}

func runCase(m *iim.Model, cfg SweepConfig, steps int, sectors []string) (SweepResult, error) {
	windows := make([]perturbation.Window, len(sectors))
	magnitudes := make([]float64, len(sectors))
	for i := range sectors {
		windows[i] = cfg.Window
		magnitudes[i] = cfg.Magnitude
	}
	if err := m.SetPerturbation(sectors, windows, magnitudes); err != nil {
		return SweepResult{}, err
	}

	start := time.Now()
	var impact []float64
	switch cfg.Simulation {
	case SimStatic:
		q, err := m.StaticInoperability()
		if err != nil {
			return SweepResult{}, err
		}
		impact = q
	default:
		tr, err := m.DynamicInoperability(steps)
		if err != nil {
			return SweepResult{}, err
		}
		impact = iim.Impact(tr)
	}
	if cfg.Metrics != nil {
		cfg.Metrics.RecordSimulation(string(cfg.Simulation), time.Since(start))
	}

	var total float64
	for _, v := range impact {
		total += v
	}

	return SweepResult{Sectors: append([]string(nil), sectors...), Impact: impact, Total: total}, nil
}

func record(r *metrics.Registry, result string) {
	if r != nil {
		r.RecordSweepCase(result)
	}
}

// SweepTable renders sweep results as rows [sectors..., total, impact...].
func SweepTable(name string, labels []string, results []SweepResult) Table {
	width := 0
	for _, r := range results {
		width = max(width, len(r.Sectors))
	}
	t := Table{Name: name, Rows: make([][]any, len(results))}
	for i := 0; i < width; i++ {
		t.Header = append(t.Header, fmt.Sprintf("sector%d", i+1))
	}
	t.Header = append(t.Header, "total")
	t.Header = append(t.Header, labels...)
	for i, r := range results {
		row := make([]any, 0, width+1+len(r.Impact))
		for k := 0; k < width; k++ {
			s := ""
			if k < len(r.Sectors) {
				s = r.Sectors[k]
			}
			row = append(row, s)
		}
		row = append(row, r.Total)
		for _, v := range r.Impact {
			row = append(row, v)
		}
		t.Rows[i] = row
	}

	return t
}
