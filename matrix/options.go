// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
//
// Design goals:
//   - Deterministic behavior: no global mutable state, no implicit randomness.
//   - A single source of truth for tolerances used by kernels and validators.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by AllClose-style checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// ConditionTolerance is the condition-number ceiling used by Inverse:
	// a matrix whose condition number exceeds it is reported as ErrSingular.
	ConditionTolerance = 1e16
)
