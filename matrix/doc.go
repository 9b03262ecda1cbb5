// Package matrix offers the dense linear algebra used by the inoperability models.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and a
//     finite-only numeric policy.
//   - Element-wise and product kernels (Sub, Scale, Mul, MatVec, Transpose, Pow)
//     that accept any Matrix and return a fresh *Dense.
//   - Row/column reductions (RowSums, ColSums) with optional diagonal exclusion,
//     and ClipVec for bounded state vectors.
//   - Spectral kernels: Eigenvalues and SpectralRadius for general (non-symmetric)
//     matrices, pivoted Inverse, and the matrix exponential Exp.
//
// Matrices here are small (one row per infrastructure sector), so every kernel
// favours clarity and determinism over blocking or parallelism.
package matrix
