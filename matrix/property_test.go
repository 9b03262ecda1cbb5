package matrix_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/katalvlaran/diim/matrix"
)

// TestAlgebraProperties checks identities that must hold for any input.
func TestAlgebraProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	cell := gen.Float64Range(-1, 1)
	square := gen.SliceOfN(9, cell)

	properties.Property("transpose is an involution", prop.ForAll(
		func(vals []float64) bool {
			m := fromFlat(t, 3, vals)
			tt, err := matrix.Transpose(m)
			if err != nil {
				return false
			}
			back, err := matrix.Transpose(tt)
			if err != nil {
				return false
			}
			ok, err := matrix.AllClose(m, back, 0, 0)
			return err == nil && ok
		},
		square,
	))

	properties.Property("(AB)^T = B^T A^T", prop.ForAll(
		func(a, b []float64) bool {
			A, B := fromFlat(t, 3, a), fromFlat(t, 3, b)
			ab, _ := matrix.Mul(A, B)
			lhs, _ := matrix.Transpose(ab)
			at, _ := matrix.Transpose(A)
			bt, _ := matrix.Transpose(B)
			rhs, _ := matrix.Mul(bt, at)
			ok, err := matrix.AllClose(lhs, rhs, 1e-12, 1e-12)
			return err == nil && ok
		},
		square, square,
	))

	properties.Property("Pow(A,2) = A·A", prop.ForAll(
		func(a []float64) bool {
			A := fromFlat(t, 3, a)
			p, _ := matrix.Pow(A, 2)
			aa, _ := matrix.Mul(A, A)
			ok, err := matrix.AllClose(p, aa, 0, 0)
			return err == nil && ok
		},
		square,
	))

	properties.TestingRun(t)
}

func fromFlat(t *testing.T, n int, vals []float64) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = vals[i*n : (i+1)*n]
	}

	return mustFrom(t, rows)
}
