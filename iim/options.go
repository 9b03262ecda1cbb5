// SPDX-License-Identifier: MIT

// Package iim: functional configuration for Build.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: constructors panic only on nonsensical values
//     (programmer error); data-dependent problems surface from Build as
//     ErrInvalidConfig.
//   - Options are resolved once; the resulting Model is immutable except for
//     its perturbation source.
package iim

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/diim/perturbation"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTimeSteps is the trajectory length used by Simulate and Recover
	// when WithTimeSteps is not given.
	DefaultTimeSteps = 1

	// DefaultLambda is the residual inoperability fraction λ reached after the
	// recovery time τ when K is derived from recovery times.
	DefaultLambda = 0.01

	// MaxResilience caps every explicit or derived K entry.
	MaxResilience = 0.9999
)

const (
	panicTimeStepsInvalid = "iim: WithTimeSteps: n must be >= 0"
	panicLambdaNaN        = "iim: WithLambda: lambda must not be NaN"
)

// ---------- Public option type (functional) ----------

// Option mutates the build configuration.
type Option func(*options)

type options struct {
	timeSteps int
	k         [][]float64
	tau       []float64
	lambda    float64
	q0        []float64
	logger    *slog.Logger

	// perturbation
	hasPerturbation bool
	sectors         []string
	windows         []perturbation.Window
	magnitudes      []float64
}

func defaultOptions() options {
	return options{
		timeSteps: DefaultTimeSteps,
		lambda:    DefaultLambda,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o
}

// ---------- Constructors (WithX) ----------

// WithTimeSteps sets the trajectory length used by Simulate and Recover.
// Values 0 and 1 both produce a single-row trajectory.
//
// Errors:
//   - Panics when n < 0.
func WithTimeSteps(n int) Option {
	if n < 0 {
		panic(panicTimeStepsInvalid)
	}

	return func(o *options) { o.timeSteps = n }
}

// WithK supplies the resilience coefficients explicitly.
// Implementation:
//   - Stage 1: copy k (the caller may reuse its slice).
//   - Stage 2 (in Build): accept a 1×N row of diagonal entries or an N×N
//     matrix whose diagonal is taken; clamp entries to [0, MaxResilience].
//
// Behavior highlights:
//   - Takes priority over WithRecoveryTimes.
//   - Off-diagonal entries of an N×N input are dropped.
//
// Errors:
//   - Build returns ErrInvalidConfig for any other shape or non-finite entries.
func WithK(k [][]float64) Option {
	cp := copyRows(k)

	return func(o *options) { o.k = cp }
}

// WithRecoveryTimes derives K from per-sector recovery times τ:
//
//	k_i = (−ln λ / τ_i) / (1 − a*_ii)
//
// where λ is the residual inoperability after τ_i (WithLambda).
//
// Errors:
//   - Build returns ErrInvalidConfig when len(tau) != N or any τ_i <= 0.
//
// AI-Hints:
//   - τ is in the same unit as a time step; a sector that recovers in 30
//     steps to 1% residual gets k = ln(100)/30 ≈ 0.153 when a*_ii = 0.
func WithRecoveryTimes(tau []float64) Option {
	cp := make([]float64, len(tau))
	copy(cp, tau)

	return func(o *options) { o.tau = cp }
}

// WithLambda sets λ for WithRecoveryTimes. Build rejects λ outside (0,1).
func WithLambda(lambda float64) Option {
	if math.IsNaN(lambda) {
		panic(panicLambdaNaN)
	}

	return func(o *options) { o.lambda = lambda }
}

// WithInitialInoperability sets q(0). Entries are clamped to [0,1]; Build
// rejects a vector whose length is not N.
func WithInitialInoperability(q0 []float64) Option {
	cp := make([]float64, len(q0))
	copy(cp, q0)

	return func(o *options) { o.q0 = cp }
}

// WithPerturbation configures the initial perturbation set. Arguments follow
// perturbation.Source.Reconfigure: nil windows means [0,0] for every sector.
func WithPerturbation(sectors []string, windows []perturbation.Window, magnitudes []float64) Option {
	s := append([]string(nil), sectors...)
	w := append([]perturbation.Window(nil), windows...)
	m := append([]float64(nil), magnitudes...)

	return func(o *options) {
		o.hasPerturbation = true
		o.sectors, o.windows, o.magnitudes = s, w, m
	}
}

// WithLogger routes build diagnostics to l. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
