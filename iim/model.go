// SPDX-License-Identifier: MIT

package iim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/diim/matrix"
	"github.com/katalvlaran/diim/perturbation"
)

// Model is a built inoperability model over a fixed set of infrastructures.
//
// Every matrix is computed once by Build and never changes; accessors return
// copies. The perturbation source is the only mutable part (SetPerturbation).
// A Model must not be reconfigured from several goroutines at once; use Fork
// to give each goroutine its own perturbation source.
type Model struct {
	infra []string
	index map[string]int
	kind  Kind
	mode  Mode

	a     *matrix.Dense // technical coefficients (zero unless input-output)
	aStar *matrix.Dense // interdependency matrix A*
	s     *matrix.Dense // (I − A*)⁻¹
	k     *matrix.Dense // diagonal resilience coefficients
	q0    []float64

	rho       float64
	dominant  complex128
	timeSteps int

	src    *perturbation.Source
	logger *slog.Logger
}

// Build constructs a Model from infrastructure labels and a table.
// Implementation:
//   - Stage 1: validate labels (non-empty, unique) and table shape (N×N).
//   - Stage 2: derive A and A* according to the table variant.
//   - Stage 3: reject A* with spectral radius >= 1.
//   - Stage 4: S = (I − A*)⁻¹ via pivoted LU.
//   - Stage 5: resolve K, q(0) and the initial perturbation from options.
//
// Errors:
//   - ErrInvalidConfig: labels, table, K, τ, λ, q(0) or perturbation counts.
//   - ErrUnknownSector: a perturbed sector is not in infra.
//   - *UnstableError (ErrModelUnstable): spectral radius >= 1 or singular I − A*.
//
// Complexity:
//   - Time O(N³) (eigen decomposition and inverse), Space O(N²).
func Build(infra []string, table Table, opts ...Option) (*Model, error) {
	const op = "Build"
	if table == nil {
		return nil, configErrorf(op, "nil table")
	}
	o := gatherOptions(opts)

	n := len(infra)
	if n == 0 {
		return nil, configErrorf(op, "no infrastructures")
	}
	index := make(map[string]int, n)
	for i, label := range infra {
		if label == "" {
			return nil, configErrorf(op, "empty label at position %d", i)
		}
		if _, dup := index[label]; dup {
			return nil, configErrorf(op, "duplicate label %q", label)
		}
		index[label] = i
	}
	if table.size() != n {
		return nil, configErrorf(op, "%s table has %d rows for %d infrastructures", table.Kind(), table.size(), n)
	}

	rawA, rawAStar, err := table.interdependency()
	if err != nil {
		return nil, classify(op, err)
	}
	aStar, err := matrix.NewDenseFrom(rawAStar)
	if err != nil {
		return nil, classify(op, err)
	}
	var a *matrix.Dense
	if rawA != nil {
		if a, err = matrix.NewDenseFrom(rawA); err != nil {
			return nil, classify(op, err)
		}
	} else if a, err = matrix.NewDense(n, n); err != nil {
		return nil, classify(op, err)
	}

	rho, dominant, err := matrix.SpectralRadius(aStar)
	if err != nil {
		return nil, classify(op, err)
	}
	if rho >= 1 {
		o.logger.Debug("unstable interdependency matrix", "kind", table.Kind(), "rho", rho)
		return nil, &UnstableError{Magnitude: rho}
	}

	s, err := resilienceMatrix(aStar)
	if err != nil {
		return nil, &UnstableError{Magnitude: rho, Singular: true, Err: err}
	}

	k, err := coefficients(n, aStar, o)
	if err != nil {
		return nil, classify(op, err)
	}

	q0 := make([]float64, n)
	if o.q0 != nil {
		if len(o.q0) != n {
			return nil, configErrorf(op, "q(0) has %d entries for %d infrastructures", len(o.q0), n)
		}
		for i, v := range o.q0 {
			if math.IsNaN(v) {
				return nil, configErrorf(op, "q(0)[%d] is NaN", i)
			}
		}
		if q0, err = matrix.ClipVec(o.q0, 0, 1); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	src := perturbation.New(infra)
	if o.hasPerturbation {
		if err = src.Reconfigure(o.sectors, o.windows, o.magnitudes); err != nil {
			return nil, classify(op, err)
		}
	}

	mode := ModeDemand
	if io, ok := table.(InputOutputTable); ok && io.Mode == ModeSupply {
		mode = ModeSupply
	}

	m := &Model{
		infra:     append([]string(nil), infra...),
		index:     index,
		kind:      table.Kind(),
		mode:      mode,
		a:         a,
		aStar:     aStar,
		s:         s,
		k:         k,
		q0:        q0,
		rho:       rho,
		dominant:  dominant,
		timeSteps: o.timeSteps,
		src:       src,
		logger:    o.logger,
	}
	o.logger.Debug("model built",
		"n", n, "kind", m.kind, "mode", m.mode, "rho", rho, "time_steps", m.timeSteps)

	return m, nil
}

// resilienceMatrix returns (I − A*)⁻¹.
func resilienceMatrix(aStar *matrix.Dense) (*matrix.Dense, error) {
	id, err := matrix.Identity(aStar.Rows())
	if err != nil {
		return nil, err
	}
	lhs, err := matrix.Sub(id, aStar)
	if err != nil {
		return nil, err
	}

	return matrix.Inverse(lhs)
}

// Fork returns a Model sharing every immutable matrix with m but owning an
// independent copy of the current perturbation configuration.
func (m *Model) Fork() *Model {
	f := *m
	f.src = m.src.Clone()

	return &f
}

// SetPerturbation reconfigures the perturbation source in place. See
// perturbation.Source.Reconfigure for the meaning of nil windows and
// magnitudes. On error the previous configuration is kept.
func (m *Model) SetPerturbation(sectors []string, windows []perturbation.Window, magnitudes []float64) error {
	return classify("SetPerturbation", m.src.Reconfigure(sectors, windows, magnitudes))
}

// Perturbation returns the active perturbation entries.
func (m *Model) Perturbation() []perturbation.Entry { return m.src.Entries() }

// Forcing returns the forcing vector c*(t) of the current perturbation.
func (m *Model) Forcing(t float64) []float64 { return m.src.Forcing(t) }

// Infrastructures returns the ordered labels.
func (m *Model) Infrastructures() []string { return append([]string(nil), m.infra...) }

// Len returns the number of infrastructures N.
func (m *Model) Len() int { return len(m.infra) }

// Kind reports the representation the model was built from.
func (m *Model) Kind() Kind { return m.kind }

// Mode reports demand or supply. Only input-output tables can be supply-side.
func (m *Model) Mode() Mode { return m.mode }

// TimeSteps returns the configured trajectory length.
func (m *Model) TimeSteps() int { return m.timeSteps }

// IndexOf resolves a label to its position.
func (m *Model) IndexOf(label string) (int, bool) {
	i, ok := m.index[label]
	return i, ok
}

// TechnicalCoefficients returns A. It is all zeros unless the model was
// built from an input-output table.
func (m *Model) TechnicalCoefficients() *matrix.Dense { return m.a.Copy() }

// Interdependency returns A*.
func (m *Model) Interdependency() *matrix.Dense { return m.aStar.Copy() }

// Resilience returns S = (I − A*)⁻¹.
func (m *Model) Resilience() *matrix.Dense { return m.s.Copy() }

// Coefficients returns the diagonal K matrix.
func (m *Model) Coefficients() *matrix.Dense { return m.k.Copy() }

// InitialInoperability returns q(0).
func (m *Model) InitialInoperability() []float64 { return append([]float64(nil), m.q0...) }

// DominantEigenvalue returns the eigenvalue of A* with the largest modulus
// together with that modulus (the spectral radius).
func (m *Model) DominantEigenvalue() (complex128, float64) { return m.dominant, m.rho }
