// SPDX-License-Identifier: MIT
// Package matrix - spectral and factorization kernels backed by gonum.
//
// Purpose:
//   - General (non-symmetric) eigenvalues and the spectral radius.
//   - Inverse via partially pivoted LU with a condition-number guard.
//   - Matrix exponential (scaling and squaring with Padé approximants).
//
// Why gonum here:
//   - Interdependency matrices are not symmetric, so a Jacobi sweep does not apply.
//   - Inversion of (I − A*) must pivot; a zero leading minor is common when a
//     sector depends only on others.
//
// Determinism:
//   - gonum/LAPACK routines are deterministic for identical inputs on one platform.
//   - Every kernel copies its operand; the caller's Dense is never aliased.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// toGonum copies d into a gonum Dense with its own backing slice.
func toGonum(d *Dense) *mat.Dense {
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return mat.NewDense(d.r, d.c, buf)
}

// fromGonum copies any gonum matrix into a fresh Dense.
func fromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.data[i*c+j] = g.At(i, j)
		}
	}

	return out, nil
}

// squareDense runs the shared entry validation for spectral kernels.
func squareDense(tag string, m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	return d, nil
}

// Eigenvalues returns the (possibly complex) eigenvalues of a square matrix.
//
// Implementation:
//   - Stage 1: validate square, non-nil.
//   - Stage 2: gonum mat.Eigen with EigenNone (values only, Hessenberg QR).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrMatrixEigenFailed (no convergence).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Ordering follows LAPACK dgeev output; callers must not rely on it.
func Eigenvalues(m Matrix) ([]complex128, error) {
	d, err := squareDense(opEigen, m)
	if err != nil {
		return nil, err
	}
	var eig mat.Eigen
	if ok := eig.Factorize(toGonum(d), mat.EigenNone); !ok {
		return nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	return eig.Values(nil), nil
}

// SpectralRadius returns max_i |λ_i| together with the eigenvalue attaining it.
// Ties keep the first eigenvalue in solver order.
//
// Errors: as Eigenvalues.
// Complexity: O(n^3).
//
// AI-Hints:
//   - ρ(A) < 1 is exactly the convergence condition of the Neumann series Σ A^k = (I − A)^-1.
func SpectralRadius(m Matrix) (float64, complex128, error) {
	vals, err := Eigenvalues(m)
	if err != nil {
		return 0, 0, err
	}
	var (
		radius   float64
		dominant complex128
	)
	for _, v := range vals {
		if a := cmplx.Abs(v); a > radius {
			radius, dominant = a, v
		}
	}

	return radius, dominant, nil
}

// Inverse returns m^-1 using partially pivoted LU.
//
// Implementation:
//   - Stage 1: validate square, non-nil.
//   - Stage 2: gonum Dense.Inverse (dgetrf + dgetri); a reported condition
//     number above ConditionTolerance, or an exactly zero pivot, is ErrSingular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - The inverse is never returned alongside an error; an ill-conditioned result
//     is discarded rather than handed out as an approximation.
func Inverse(m Matrix) (*Dense, error) {
	d, err := squareDense(opInverse, m)
	if err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err = inv.Inverse(toGonum(d)); err != nil {
		return nil, matrixErrorf(opInverse, fmt.Errorf("%w (%v)", ErrSingular, err))
	}
	out, err := fromGonum(&inv)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err = ValidateFiniteVec(out.data); err != nil {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	return out, nil
}

// Exp returns the matrix exponential e^m.
//
// Implementation:
//   - Stage 1: validate square, non-nil.
//   - Stage 2: gonum Dense.Exp (Higham 2005 scaling and squaring).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (overflow in the result).
//
// Complexity:
//   - Time O(n^3 log ‖m‖), Space O(n^2).
func Exp(m Matrix) (*Dense, error) {
	d, err := squareDense(opExp, m)
	if err != nil {
		return nil, err
	}
	var e mat.Dense
	e.Exp(toGonum(d))
	out, err := fromGonum(&e)
	if err != nil {
		return nil, matrixErrorf(opExp, err)
	}
	for _, v := range out.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opExp, ErrNaNInf)
		}
	}

	return out, nil
}
