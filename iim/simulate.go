// SPDX-License-Identifier: MIT

package iim

import (
	"fmt"
	"math"

	"github.com/katalvlaran/diim/matrix"
)

// Trajectory is a sequence of inoperability vectors indexed by time step.
// Q[r] is the vector at time Steps[r].
type Trajectory struct {
	Steps []int
	Q     [][]float64
}

// Len returns the number of rows.
func (t Trajectory) Len() int { return len(t.Steps) }

// Final returns a copy of the last vector, or nil for an empty trajectory.
func (t Trajectory) Final() []float64 {
	if len(t.Q) == 0 {
		return nil
	}

	return append([]float64(nil), t.Q[len(t.Q)-1]...)
}

// Table returns the trajectory as rows [k, q1..qN].
func (t Trajectory) Table() (*matrix.Dense, error) {
	if len(t.Q) == 0 {
		return nil, fmt.Errorf("Trajectory.Table: %w", matrix.ErrInvalidDimensions)
	}
	rows := make([][]float64, len(t.Q))
	for r, q := range t.Q {
		rows[r] = make([]float64, 0, len(q)+1)
		rows[r] = append(rows[r], float64(t.Steps[r]))
		rows[r] = append(rows[r], q...)
	}

	return matrix.NewDenseFrom(rows)
}

// StaticInoperability returns the equilibrium q = S·c*(0), with entries above
// one clamped to one.
//
// Complexity:
//   - Time O(N²), Space O(N).
func (m *Model) StaticInoperability() ([]float64, error) {
	q, err := matrix.MatVec(m.s, m.src.Forcing(0))
	if err != nil {
		return nil, fmt.Errorf("StaticInoperability: %w", err)
	}
	if q, err = matrix.ClipVec(q, math.Inf(-1), 1); err != nil {
		return nil, fmt.Errorf("StaticInoperability: %w", err)
	}

	return q, nil
}

// DynamicInoperability runs the demand-reduction recurrence
//
//	q[k] = K(A*·q[k−1] + c*(k) − q[k−1]) + q[k−1]
//
// for k = 1..timeSteps−1, starting from q[0] = q(0). Each q[k] is clamped
// to at most one before the next step. timeSteps <= 1 yields the single
// row (0, q(0)).
//
// Complexity:
//   - Time O(T·N²), Space O(T·N).
func (m *Model) DynamicInoperability(timeSteps int) (Trajectory, error) {
	rows := max(timeSteps, 1)
	tr := Trajectory{Steps: make([]int, rows), Q: make([][]float64, rows)}
	tr.Q[0] = append([]float64(nil), m.q0...)

	kd := m.k.Diag()
	prev := tr.Q[0]
	for step := 1; step < rows; step++ {
		aq, err := matrix.MatVec(m.aStar, prev)
		if err != nil {
			return Trajectory{}, fmt.Errorf("DynamicInoperability: step %d: %w", step, err)
		}
		c := m.src.Forcing(float64(step))
		next := make([]float64, len(prev))
		for i := range next {
			next[i] = kd[i]*(aq[i]+c[i]-prev[i]) + prev[i]
		}
		if next, err = matrix.ClipVec(next, math.Inf(-1), 1); err != nil {
			return Trajectory{}, fmt.Errorf("DynamicInoperability: step %d: %w", step, err)
		}
		tr.Steps[step] = step
		tr.Q[step] = next
		prev = next
	}

	return tr, nil
}

// DynamicRecovery evaluates the closed-form recovery
//
//	q[k] = exp(−K(I − A*)·k)·q(0)
//
// for k = 1..timeSteps−1, clamping negatives to zero. Row 0 is the zero
// vector, not q(0). timeSteps <= 1 yields a single zero row.
//
// Complexity:
//   - Time O(T·N³) (one matrix exponential per step), Space O(N² + T·N).
func (m *Model) DynamicRecovery(timeSteps int) (Trajectory, error) {
	const op = "DynamicRecovery"
	n := m.Len()
	rows := max(timeSteps, 1)
	tr := Trajectory{Steps: make([]int, rows), Q: make([][]float64, rows)}
	tr.Q[0] = make([]float64, n)
	if rows == 1 {
		return tr, nil
	}

	id, err := matrix.Identity(n)
	if err != nil {
		return Trajectory{}, fmt.Errorf("%s: %w", op, err)
	}
	lhs, err := matrix.Sub(id, m.aStar)
	if err != nil {
		return Trajectory{}, fmt.Errorf("%s: %w", op, err)
	}
	rate, err := matrix.Mul(m.k, lhs)
	if err != nil {
		return Trajectory{}, fmt.Errorf("%s: %w", op, err)
	}

	for step := 1; step < rows; step++ {
		scaled, err := matrix.Scale(rate, -float64(step))
		if err != nil {
			return Trajectory{}, fmt.Errorf("%s: step %d: %w", op, step, err)
		}
		e, err := matrix.Exp(scaled)
		if err != nil {
			return Trajectory{}, fmt.Errorf("%s: step %d: %w", op, step, err)
		}
		q, err := matrix.MatVec(e, m.q0)
		if err != nil {
			return Trajectory{}, fmt.Errorf("%s: step %d: %w", op, step, err)
		}
		if q, err = matrix.ClipVec(q, 0, math.Inf(1)); err != nil {
			return Trajectory{}, fmt.Errorf("%s: step %d: %w", op, step, err)
		}
		tr.Steps[step] = step
		tr.Q[step] = q
	}

	return tr, nil
}

// Simulate runs DynamicInoperability with the configured time-step count.
func (m *Model) Simulate() (Trajectory, error) { return m.DynamicInoperability(m.timeSteps) }

// Recover runs DynamicRecovery with the configured time-step count.
func (m *Model) Recover() (Trajectory, error) { return m.DynamicRecovery(m.timeSteps) }

// Impact integrates each sector's inoperability over time with the
// trapezoidal rule. A trajectory with fewer than two rows has zero impact.
// When Steps does not hold one entry per row the spacing defaults to one.
// Rows of unequal width have no defined impact and yield nil.
func Impact(tr Trajectory) []float64 {
	if len(tr.Q) == 0 {
		return nil
	}
	width := len(tr.Q[0])
	for _, row := range tr.Q[1:] {
		if len(row) != width {
			return nil
		}
	}
	stepped := len(tr.Steps) == len(tr.Q)

	out := make([]float64, width)
	for r := 1; r < len(tr.Q); r++ {
		dt := 1.0
		if stepped {
			dt = float64(tr.Steps[r] - tr.Steps[r-1])
		}
		for j := range out {
			out[j] += dt * (tr.Q[r][j] + tr.Q[r-1][j]) / 2
		}
	}

	return out
}
