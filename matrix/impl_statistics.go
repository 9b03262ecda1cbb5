// SPDX-License-Identifier: MIT
// Package matrix - row/column reductions and element-wise comparisons.
//
// Purpose:
//   - Row/column sums, optionally excluding the main diagonal (the shape used by
//     dependency/influence style indices).
//   - Vector clipping and tolerance comparison helpers.
//
// Determinism:
//   - Fixed i→j traversal; sums are accumulated in index order.

package matrix

import (
	"math"
)

const (
	opRowSums = "RowSums"
	opColSums = "ColSums"
	opClipVec = "ClipVec"
)

// RowSums returns s[i] = Σ_j m[i,j]; with skipDiag, the j == i term is left out.
// Complexity: O(r*c).
func RowSums(m Matrix, skipDiag bool) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	out := make([]float64, d.r)
	var i, j int
	for i = 0; i < d.r; i++ {
		acc := ZeroSum
		for j = 0; j < d.c; j++ {
			if skipDiag && i == j {
				continue
			}
			acc += d.data[i*d.c+j]
		}
		out[i] = acc
	}

	return out, nil
}

// ColSums returns s[j] = Σ_i m[i,j]; with skipDiag, the i == j term is left out.
// Complexity: O(r*c).
func ColSums(m Matrix, skipDiag bool) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	out := make([]float64, d.c)
	var i, j int
	for j = 0; j < d.c; j++ {
		acc := ZeroSum
		for i = 0; i < d.r; i++ {
			if skipDiag && i == j {
				continue
			}
			acc += d.data[i*d.c+j]
		}
		out[j] = acc
	}

	return out, nil
}

// ClipVec returns a copy of v with every entry limited to [lo, hi]. An
// infinite bound leaves that side open. NaN entries stay NaN.
// Errors: ErrNaNInf when lo > hi or a bound is NaN.
// Complexity: O(n).
func ClipVec(v []float64, lo, hi float64) ([]float64, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return nil, matrixErrorf(opClipVec, ErrNaNInf)
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Min(math.Max(x, lo), hi)
	}

	return out, nil
}

// AllClose reports whether |a-b| ≤ atol + rtol*|b| element-wise.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf for negative or non-finite tolerances.
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if !(rtol >= 0 && atol >= 0) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range da.data {
		if math.Abs(da.data[k]-db.data[k]) > atol+rtol*math.Abs(db.data[k]) {
			return false, nil
		}
	}

	return true, nil
}
