package matrix_test

import (
	"testing"

	"github.com/katalvlaran/diim/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type, forcing the non-*Dense entry path.
type hide struct{ matrix.Matrix }

func mustFrom(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func TestSub(t *testing.T) {
	a := mustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := mustFrom(t, [][]float64{{0.5, 0.5}, {1, -1}})

	diff, err := matrix.Sub(a, hide{b})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0.5, 1.5}, {2, 5}}, diff.ToSlices())

	// Operands are left untouched.
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, a.ToSlices())

	_, err = matrix.Sub(a, mustFrom(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Sub(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a, b [][]float64
		want [][]float64
	}{
		{"2x2", [][]float64{{1, 2}, {3, 4}}, [][]float64{{5, 6}, {7, 8}}, [][]float64{{19, 22}, {43, 50}}},
		{"row by col", [][]float64{{1, 2, 3}}, [][]float64{{1}, {0}, {-1}}, [][]float64{{-2}}},
		{"zeros skipped", [][]float64{{0, 0}, {0, 1}}, [][]float64{{9, 9}, {2, 3}}, [][]float64{{0, 0}, {2, 3}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := matrix.Mul(mustFrom(t, tc.a), hide{mustFrom(t, tc.b)})
			require.NoError(t, err)
			require.Equal(t, tc.want, got.ToSlices())
		})
	}

	_, err := matrix.Mul(mustFrom(t, [][]float64{{1, 2}}), mustFrom(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTransposeScale(t *testing.T) {
	a := mustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.ToSlices())

	sc, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, sc.ToSlices())
}

func TestMatVec(t *testing.T) {
	a := mustFrom(t, [][]float64{{1, 2}, {3, 4}})

	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1}, y)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestIdentityPow(t *testing.T) {
	I, err := matrix.Identity(3)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1}, I.Diag())

	a := mustFrom(t, [][]float64{{0, 0.5}, {0.5, 0}})

	p0, err := matrix.Pow(a, 0)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0}, {0, 1}}, p0.ToSlices())

	p1, err := matrix.Pow(a, 1)
	require.NoError(t, err)
	require.Equal(t, a.ToSlices(), p1.ToSlices())

	p3, err := matrix.Pow(a, 3)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0.125}, {0.125, 0}}, p3.ToSlices())

	_, err = matrix.Pow(a, -1)
	require.ErrorIs(t, err, matrix.ErrNegativePower)

	_, err = matrix.Pow(mustFrom(t, [][]float64{{1, 2}}), 2)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}
