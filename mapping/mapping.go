// SPDX-License-Identifier: MIT

package mapping

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Scale names an ordinal consequence scale.
type Scale string

// Supported scales.
const (
	FivePoint Scale = "5-point"
	FourPoint Scale = "4-point"

	// DefaultScale is used when no scale is configured.
	DefaultScale = FivePoint
)

var (
	// ErrUnknownScale is returned for any scale other than 4-point and 5-point.
	ErrUnknownScale = errors.New("mapping: unknown consequence scale")

	// ErrInvalidScore is returned for NaN/±Inf or negative scores.
	ErrInvalidScore = errors.New("mapping: invalid consequence score")
)

// powerLaw holds the fitted coefficients of a·C^b.
type powerLaw struct {
	a, b float64
}

var laws = map[Scale]powerLaw{
	FivePoint: {a: 0.008, b: 2.569323442},
	FourPoint: {a: 0.01, b: 2.821928095},
}

// ParseScale normalizes s ("5-point", "4-point", case-insensitive, surrounding
// space ignored). The empty string selects DefaultScale.
func ParseScale(s string) (Scale, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultScale, nil
	}
	sc := Scale(s)
	if _, ok := laws[sc]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScale, s)
	}

	return sc, nil
}

// Valid reports whether s is one of the defined scales.
func (s Scale) Valid() bool {
	_, ok := laws[s]
	return ok
}

func (s Scale) law() (powerLaw, error) {
	if s == "" {
		s = DefaultScale
	}
	l, ok := laws[s]
	if !ok {
		return powerLaw{}, fmt.Errorf("%w: %q", ErrUnknownScale, string(s))
	}

	return l, nil
}

// Map returns a·score^b for the given scale. A zero score maps to zero.
func Map(score float64, scale Scale) (float64, error) {
	l, err := scale.law()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}

	return l.a * math.Pow(score, l.b), nil
}

// MapMatrix applies Map element-wise and returns a new table; the input is not modified.
// Errors carry the offending cell.
func MapMatrix(scores [][]float64, scale Scale) ([][]float64, error) {
	l, err := scale.law()
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(scores))
	for i, row := range scores {
		out[i] = make([]float64, len(row))
		for j, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				return nil, fmt.Errorf("mapping: cell (%d,%d): %w: %v", i, j, ErrInvalidScore, c)
			}
			out[i][j] = l.a * math.Pow(c, l.b)
		}
	}

	return out, nil
}
