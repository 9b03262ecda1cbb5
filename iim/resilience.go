// SPDX-License-Identifier: MIT

package iim

import (
	"fmt"
	"math"

	"github.com/katalvlaran/diim/matrix"
)

// coefficients resolves the diagonal K matrix in priority order: explicit
// WithK data, derivation from recovery times, identity.
//
// Explicit and derived entries are clamped to [0, MaxResilience]; the
// identity default keeps its unit diagonal.
func coefficients(n int, aStar *matrix.Dense, o options) (*matrix.Dense, error) {
	var diag []float64
	switch {
	case o.k != nil:
		d, err := explicitDiagonal(n, o.k)
		if err != nil {
			return nil, err
		}
		diag = d
	case o.tau != nil:
		d, err := derivedDiagonal(n, aStar.Diag(), o.tau, o.lambda)
		if err != nil {
			return nil, err
		}
		diag = d
	default:
		return matrix.Identity(n)
	}
	clipped, err := matrix.ClipVec(diag, 0, MaxResilience)
	if err != nil {
		return nil, err
	}

	return matrix.NewDiagonal(clipped)
}

// explicitDiagonal accepts a 1×N row or an N×N matrix (its diagonal).
func explicitDiagonal(n int, k [][]float64) ([]float64, error) {
	var diag []float64
	switch {
	case len(k) == 1 && len(k[0]) == n:
		diag = append([]float64(nil), k[0]...)
	case len(k) == n:
		diag = make([]float64, n)
		for i, row := range k {
			if len(row) != n {
				return nil, fmt.Errorf("%w: K row %d has %d columns, want %d", ErrInvalidConfig, i, len(row), n)
			}
			diag[i] = row[i]
		}
	default:
		rows, cols := len(k), 0
		if rows > 0 {
			cols = len(k[0])
		}
		return nil, fmt.Errorf("%w: K is %dx%d, want 1x%d or %dx%d", ErrInvalidConfig, rows, cols, n, n, n)
	}
	for i, v := range diag {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: K[%d] is NaN", ErrInvalidConfig, i)
		}
	}

	return diag, nil
}

// derivedDiagonal computes k_i = (−ln λ / τ_i) / (1 − a*_ii).
func derivedDiagonal(n int, aDiag, tau []float64, lambda float64) ([]float64, error) {
	if len(tau) != n {
		return nil, fmt.Errorf("%w: %d recovery times for %d infrastructures", ErrInvalidConfig, len(tau), n)
	}
	if !(lambda > 0 && lambda < 1) {
		return nil, fmt.Errorf("%w: lambda %v outside (0,1)", ErrInvalidConfig, lambda)
	}
	rate := -math.Log(lambda)
	diag := make([]float64, n)
	for i, t := range tau {
		if !(t > 0) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: recovery time %v for infrastructure %d", ErrInvalidConfig, t, i)
		}
		den := 1 - aDiag[i]
		if den <= 0 {
			return nil, fmt.Errorf("%w: a*[%d][%d] = %v leaves no recovery", ErrInvalidConfig, i, i, aDiag[i])
		}
		diag[i] = rate / t / den
	}

	return diag, nil
}
