// SPDX-License-Identifier: MIT

package analysis

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/diim/iim"
)

// ErrUndefinedInSupplyMode is returned for index tables of supply-side models.
var ErrUndefinedInSupplyMode = errors.New("analysis: indices undefined in supply mode")

// Default sheet names.
const (
	InfluenceSheet       = "Analyze_influence"
	InterdependencySheet = "Analyze_interdependency"
)

// Table is a rendered result: a header and rows of strings and float64s.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// InfluenceRow holds the four sensitivity indices of one sector.
type InfluenceRow struct {
	Sector       string  `json:"sector"`
	Delta        float64 `json:"delta"`
	DeltaOverall float64 `json:"delta_overall"`
	Rho          float64 `json:"rho"`
	RhoOverall   float64 `json:"rho_overall"`
}

// InfluenceRows is the result of InfluenceTable.
type InfluenceRows []InfluenceRow

// InfluenceTable collects dependency, overall dependency, influence and
// overall influence for every sector, in infrastructure order.
func InfluenceTable(m *iim.Model) (InfluenceRows, error) {
	delta, ok := m.Dependency()
	if !ok {
		return nil, ErrUndefinedInSupplyMode
	}
	deltaOverall, _ := m.OverallDependency()
	rho, _ := m.Influence()
	rhoOverall, _ := m.OverallInfluence()

	labels := m.Infrastructures()
	rows := make(InfluenceRows, len(labels))
	for i, l := range labels {
		rows[i] = InfluenceRow{
			Sector:       l,
			Delta:        delta[i],
			DeltaOverall: deltaOverall[i],
			Rho:          rho[i],
			RhoOverall:   rhoOverall[i],
		}
	}

	return rows, nil
}

// Table renders the rows under the InfluenceSheet name.
func (rs InfluenceRows) Table() Table {
	t := Table{
		Name:   InfluenceSheet,
		Header: []string{"function", "delta", "delta_overall", "rho", "rho_overall"},
		Rows:   make([][]any, len(rs)),
	}
	for i, r := range rs {
		t.Rows[i] = []any{r.Sector, r.Delta, r.DeltaOverall, r.Rho, r.RhoOverall}
	}

	return t
}

// InterdependencyRow holds, for one sector, the strongest interdependency at
// each requested order (Max[k] belongs to Orders[k]).
type InterdependencyRow struct {
	Sector string                   `json:"sector"`
	Max    []iim.MaxInterdependency `json:"max"`
}

// InterdependencyRows is the result of InterdependencyTable.
type InterdependencyRows struct {
	Orders []int                `json:"orders"`
	Rows   []InterdependencyRow `json:"rows"`
}

// InterdependencyTable evaluates MaxNthOrderInterdependency for each order
// (1, 2 and 3 when none are given).
func InterdependencyTable(m *iim.Model, orders ...int) (InterdependencyRows, error) {
	if len(orders) == 0 {
		orders = []int{1, 2, 3}
	}
	out := InterdependencyRows{
		Orders: append([]int(nil), orders...),
		Rows:   make([]InterdependencyRow, m.Len()),
	}
	for i, l := range m.Infrastructures() {
		out.Rows[i] = InterdependencyRow{Sector: l, Max: make([]iim.MaxInterdependency, len(orders))}
	}
	for k, order := range orders {
		maxima, err := m.MaxNthOrderInterdependency(order)
		if err != nil {
			return InterdependencyRows{}, fmt.Errorf("InterdependencyTable: %w", err)
		}
		for i := range maxima {
			out.Rows[i].Max[k] = maxima[i]
		}
	}

	return out, nil
}

// Table renders the rows as repeated (i, j, max) column groups.
func (r InterdependencyRows) Table() Table {
	t := Table{Name: InterdependencySheet, Rows: make([][]any, len(r.Rows))}
	for _, order := range r.Orders {
		col := "max(aij)"
		if order != 1 {
			col = "max(aij^" + strconv.Itoa(order) + ")"
		}
		t.Header = append(t.Header, "i", "j", col)
	}
	for i, row := range r.Rows {
		for _, mx := range row.Max {
			t.Rows[i] = append(t.Rows[i], mx.Sector, mx.On, mx.Value)
		}
	}

	return t
}

// VectorTable renders one value per sector, e.g. a static inoperability or an impact.
func VectorTable(name string, labels []string, column string, v []float64) Table {
	t := Table{Name: name, Header: []string{"function", column}, Rows: make([][]any, len(labels))}
	for i, l := range labels {
		t.Rows[i] = []any{l, v[i]}
	}

	return t
}

// TrajectoryTable renders a trajectory as rows [k, q1..qN].
func TrajectoryTable(name string, labels []string, tr iim.Trajectory) Table {
	t := Table{Name: name, Header: append([]string{"k"}, labels...), Rows: make([][]any, tr.Len())}
	for r, q := range tr.Q {
		row := make([]any, 0, len(q)+1)
		row = append(row, tr.Steps[r])
		for _, v := range q {
			row = append(row, v)
		}
		t.Rows[r] = row
	}

	return t
}
