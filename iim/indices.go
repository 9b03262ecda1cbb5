// SPDX-License-Identifier: MIT

package iim

import (
	"fmt"

	"github.com/katalvlaran/diim/matrix"
)

// Dependency returns δ_i = Σ_{j≠i} A*[i,j] / (N−1), how strongly each sector
// depends on the others (Setola et al. 2009, eq. 3).
//
// The indices are defined for demand-side models only; ok is false for
// supply mode and for a model whose matrices were never built. N == 1
// yields a zero vector.
func (m *Model) Dependency() (idx []float64, ok bool) {
	return m.offDiagonal(m.aStar, matrix.RowSums)
}

// Influence returns ρ_j = Σ_{i≠j} A*[i,j] / (N−1), how strongly each sector
// affects the others (Setola et al. 2009, eq. 4). Demand mode only.
func (m *Model) Influence() (idx []float64, ok bool) {
	return m.offDiagonal(m.aStar, matrix.ColSums)
}

// OverallDependency is Dependency computed on S instead of A*, so that
// higher-order paths are included. Demand mode only.
func (m *Model) OverallDependency() (idx []float64, ok bool) {
	return m.offDiagonal(m.s, matrix.RowSums)
}

// OverallInfluence is Influence computed on S. Demand mode only.
func (m *Model) OverallInfluence() (idx []float64, ok bool) {
	return m.offDiagonal(m.s, matrix.ColSums)
}

func (m *Model) offDiagonal(src *matrix.Dense, sums func(matrix.Matrix, bool) ([]float64, error)) ([]float64, bool) {
	if m.mode != ModeDemand {
		return nil, false
	}
	n := m.Len()
	if n == 1 {
		return make([]float64, n), true
	}
	out, err := sums(src, true)
	if err != nil {
		return nil, false
	}
	for i := range out {
		out[i] /= float64(n - 1)
	}

	return out, true
}

// InterdependencyIndex returns the order-th interdependency index of sector
// i on sector j, (A*^order)[i,j].
//
// Errors:
//   - ErrUnknownSector for an unknown label.
//   - ErrInvalidConfig when order < 1.
func (m *Model) InterdependencyIndex(i, j string, order int) (float64, error) {
	const op = "InterdependencyIndex"
	if order < 1 {
		return 0, configErrorf(op, "order %d < 1", order)
	}
	ii, ok := m.index[i]
	if !ok {
		return 0, fmt.Errorf("%s: %w: %q", op, ErrUnknownSector, i)
	}
	jj, ok := m.index[j]
	if !ok {
		return 0, fmt.Errorf("%s: %w: %q", op, ErrUnknownSector, j)
	}
	p, err := matrix.Pow(m.aStar, order)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return p.At(ii, jj)
}

// MaxInterdependency names, for one sector, the sector it depends on most at
// a given order.
type MaxInterdependency struct {
	Sector string
	On     string
	Value  float64
}

// MaxNthOrderInterdependency returns, for every row i of A*^order, the
// column with the largest entry. Ties resolve to the lowest column index.
func (m *Model) MaxNthOrderInterdependency(order int) ([]MaxInterdependency, error) {
	const op = "MaxNthOrderInterdependency"
	if order < 1 {
		return nil, configErrorf(op, "order %d < 1", order)
	}
	p, err := matrix.Pow(m.aStar, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]MaxInterdependency, m.Len())
	for i := range out {
		row, err := p.Row(i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		out[i] = MaxInterdependency{Sector: m.infra[i], On: m.infra[best], Value: row[best]}
	}

	return out, nil
}
