// SPDX-License-Identifier: MIT

package iim

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/diim/mapping"
	"github.com/katalvlaran/diim/matrix"
)

// Kind names the representation a raw table is given in.
type Kind string

const (
	KindInterdependency Kind = "interdependency"
	KindConsequence     Kind = "consequence"
	KindInputOutput     Kind = "input-output"
)

// Mode selects the demand-side or supply-side reading of an input-output table.
type Mode string

const (
	ModeDemand Mode = "demand"
	ModeSupply Mode = "supply"
)

// ParseKind accepts the kind names case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindInterdependency, KindConsequence, KindInputOutput:
		return k, nil
	default:
		return "", configErrorf("ParseKind", "unknown table kind %q", s)
	}
}

// ParseMode accepts "demand" or "supply"; empty selects demand.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDemand, nil
	case ModeDemand, ModeSupply:
		return m, nil
	default:
		return "", configErrorf("ParseMode", "unknown mode %q", s)
	}
}

// Table is one of InterdependencyTable, ConsequenceTable or InputOutputTable.
// The set is closed; Build dispatches on the concrete type.
type Table interface {
	Kind() Kind
	size() int
	interdependency() ([][]float64, [][]float64, error)
}

// InterdependencyTable is an A* matrix used verbatim.
type InterdependencyTable struct {
	AStar [][]float64
}

// ConsequenceTable holds ordinal consequence scores, mapped to A* with the
// power law of Scale (mapping.DefaultScale when empty).
type ConsequenceTable struct {
	Scores [][]float64
	Scale  mapping.Scale
}

// InputOutputTable holds inter-sector transactions x(i,j) and total outputs X(j).
type InputOutputTable struct {
	Transactions [][]float64
	Outputs      []float64
	Mode         Mode
}

func (InterdependencyTable) Kind() Kind { return KindInterdependency }
func (ConsequenceTable) Kind() Kind     { return KindConsequence }
func (InputOutputTable) Kind() Kind     { return KindInputOutput }

func (t InterdependencyTable) size() int { return len(t.AStar) }
func (t ConsequenceTable) size() int     { return len(t.Scores) }
func (t InputOutputTable) size() int     { return len(t.Transactions) }

// interdependency returns (A, A*). A is nil for the non input-output kinds.
func (t InterdependencyTable) interdependency() ([][]float64, [][]float64, error) {
	if err := checkSquare("interdependency table", t.AStar); err != nil {
		return nil, nil, err
	}

	return nil, copyRows(t.AStar), nil
}

func (t ConsequenceTable) interdependency() ([][]float64, [][]float64, error) {
	if err := checkSquare("consequence table", t.Scores); err != nil {
		return nil, nil, err
	}
	aStar, err := mapping.MapMatrix(t.Scores, t.Scale)
	if err != nil {
		return nil, nil, err
	}

	return nil, aStar, nil
}

func (t InputOutputTable) interdependency() ([][]float64, [][]float64, error) {
	n := len(t.Transactions)
	if err := checkSquare("transaction table", t.Transactions); err != nil {
		return nil, nil, err
	}
	if len(t.Outputs) != n {
		return nil, nil, fmt.Errorf("%w: %d outputs for %d sectors", ErrInvalidConfig, len(t.Outputs), n)
	}
	for j, x := range t.Outputs {
		if !isFinite(x) {
			return nil, nil, fmt.Errorf("%w: output %d is %v", ErrInvalidConfig, j, x)
		}
	}

	// A[i][j] = x(i,j) / X(j); a zero output leaves its column at zero.
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if t.Outputs[j] != 0 {
				a[i][j] = t.Transactions[i][j] / t.Outputs[j]
			}
		}
	}

	switch t.Mode {
	case ModeDemand, "":
		// Same division, recomputed from the transactions rather than
		// through an inverse of diag(X).
		aStar := make([][]float64, n)
		for i := range aStar {
			aStar[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				if t.Outputs[j] != 0 {
					aStar[i][j] = t.Transactions[i][j] / t.Outputs[j]
				}
			}
		}
		return a, aStar, nil
	case ModeSupply:
		da, err := matrix.NewDenseFrom(a)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: technical coefficients: %v", ErrInvalidConfig, err)
		}
		aStar, err := matrix.Transpose(da)
		if err != nil {
			return nil, nil, err
		}
		return a, aStar.ToSlices(), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, t.Mode)
	}
}

// ParseTable turns a raw 2-D array into a Table of the given kind.
//
// For KindInputOutput the last row of raw is the total-output row and the
// rows above it are the transactions. mode is ignored for the other kinds and
// scale is only read for KindConsequence.
func ParseTable(kind Kind, raw [][]float64, mode Mode, scale mapping.Scale) (Table, error) {
	const op = "ParseTable"
	switch kind {
	case KindInterdependency:
		return InterdependencyTable{AStar: copyRows(raw)}, nil
	case KindConsequence:
		if scale != "" && !scale.Valid() {
			return nil, classify(op, fmt.Errorf("%w: %q", mapping.ErrUnknownScale, string(scale)))
		}
		return ConsequenceTable{Scores: copyRows(raw), Scale: scale}, nil
	case KindInputOutput:
		if len(raw) < 2 {
			return nil, configErrorf(op, "input-output table needs transactions and an output row, got %d rows", len(raw))
		}
		if mode == "" {
			mode = ModeDemand
		}
		if mode != ModeDemand && mode != ModeSupply {
			return nil, configErrorf(op, "unknown mode %q", mode)
		}
		last := len(raw) - 1
		outputs := make([]float64, len(raw[last]))
		copy(outputs, raw[last])
		return InputOutputTable{Transactions: copyRows(raw[:last]), Outputs: outputs, Mode: mode}, nil
	default:
		return nil, configErrorf(op, "unknown table kind %q", kind)
	}
}

func checkSquare(what string, rows [][]float64) error {
	n := len(rows)
	if n == 0 {
		return fmt.Errorf("%w: empty %s", ErrInvalidConfig, what)
	}
	for i, r := range rows {
		if len(r) != n {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrInvalidConfig, what, i, len(r), n)
		}
		for j, v := range r {
			if !isFinite(v) {
				return fmt.Errorf("%w: %s cell (%d,%d) is %v", ErrInvalidConfig, what, i, j, v)
			}
		}
	}

	return nil
}

func copyRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(r))
		copy(out[i], r)
	}

	return out
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
