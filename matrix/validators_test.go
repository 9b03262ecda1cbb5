package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/diim/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(nilDense), matrix.ErrNilMatrix)

	sq := mustFrom(t, [][]float64{{1, 0}, {0, 1}})
	rect := mustFrom(t, [][]float64{{1, 0, 0}})

	require.NoError(t, matrix.ValidateSquareNonNil(sq))
	require.ErrorIs(t, matrix.ValidateSquareNonNil(rect), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateBinarySameShape(sq, rect), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateMulCompatible(sq, rect), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateMulCompatible(rect, mustFrom(t, [][]float64{{1}, {2}, {3}})))

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateFiniteVec([]float64{0, -1, 1e300}))
	require.ErrorIs(t, matrix.ValidateFiniteVec([]float64{0, math.Inf(1)}), matrix.ErrNaNInf)
}
