// SPDX-License-Identifier: MIT

package iim

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/diim/mapping"
	"github.com/katalvlaran/diim/perturbation"
)

var (
	// ErrInvalidConfig is returned for malformed tables, labels, option values
	// and perturbation settings. No model is produced.
	ErrInvalidConfig = errors.New("iim: invalid configuration")

	// ErrUnknownSector is returned when a label does not name an infrastructure.
	ErrUnknownSector = errors.New("iim: unknown sector")

	// ErrModelUnstable is matched by every *UnstableError.
	ErrModelUnstable = errors.New("iim: model unstable")
)

// UnstableError reports an interdependency matrix that cannot be inverted
// as a Neumann series: its spectral radius is at least one, or I − A* is
// numerically singular.
type UnstableError struct {
	// Magnitude is |λ| of the dominant eigenvalue of A*.
	Magnitude float64
	// Singular is set when the eigenvalue test passed but the inverse failed.
	Singular bool
	// Err is the underlying numeric error, if any.
	Err error
}

func (e *UnstableError) Error() string {
	if e.Singular {
		return fmt.Sprintf("iim: model unstable: I - A* is singular (|lambda| = %.6g): %v", e.Magnitude, e.Err)
	}

	return fmt.Sprintf("iim: model unstable: dominant eigenvalue magnitude %.6g >= 1", e.Magnitude)
}

// Is makes errors.Is(err, ErrModelUnstable) true.
func (e *UnstableError) Is(target error) bool { return target == ErrModelUnstable }

func (e *UnstableError) Unwrap() error { return e.Err }

// configErrorf wraps ErrInvalidConfig with an operation tag.
func configErrorf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// classify re-surfaces collaborator errors under this package's sentinels
// while keeping the original in the chain.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, perturbation.ErrUnknownSector):
		return fmt.Errorf("%s: %w: %w", op, ErrUnknownSector, err)
	case errors.Is(err, perturbation.ErrInvalidConfig),
		errors.Is(err, mapping.ErrUnknownScale),
		errors.Is(err, mapping.ErrInvalidScore):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidConfig, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
