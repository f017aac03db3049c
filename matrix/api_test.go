// SPDX-License-Identifier: MIT
// Package matrix_test covers constructors, row selection and stacking.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xieliaing/SparseSC/matrix"
)

// TestSelectRows verifies order preservation and bounds errors.
func TestSelectRows(t *testing.T) {
	X := mustRows(t, [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}})

	sub, err := matrix.SelectRows(X, []int{3, 1})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{3, 3}, {1, 1}}, toRows(t, sub))

	none, err := matrix.SelectRows(X, []int{})
	require.NoError(t, err)
	require.Equal(t, 0, none.Rows()) // legal empty partition
	require.Equal(t, 2, none.Cols())

	_, err = matrix.SelectRows(X, []int{4})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = matrix.SelectRows(nil, []int{0})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	generic, err := matrix.SelectRows(hide{X}, []int{0, 0})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0}, {0, 0}}, toRows(t, generic))
	require.NoError(t, generic.Set(0, 0, 9))
	require.Equal(t, [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, toRows(t, X))
}

// TestVStackOffsets checks that bottom rows land at top.Rows()+k.
func TestVStackOffsets(t *testing.T) {
	control := mustRows(t, [][]float64{{1, 1}, {2, 2}, {3, 3}})
	treated := mustRows(t, [][]float64{{7, 7}, {8, 8}})

	st, err := matrix.VStack(control, treated)
	require.NoError(t, err)
	require.Equal(t, 5, st.Rows())
	for k := 0; k < treated.Rows(); k++ {
		row, err := st.Row(control.Rows() + k)
		require.NoError(t, err)
		want, _ := treated.Row(k)
		require.Equal(t, want, row)
	}

	empty, err := matrix.SelectRows(treated, nil)
	require.NoError(t, err)
	onlyControl, err := matrix.VStack(control, empty)
	require.NoError(t, err)
	require.Equal(t, toRows(t, control), toRows(t, onlyControl))

	_, err = matrix.VStack(control, mustDense(t, 1, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDiagRoundTrip verifies Diag/DiagOf/NewIdentity.
func TestDiagRoundTrip(t *testing.T) {
	D, err := matrix.Diag([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}, toRows(t, D))

	d, err := matrix.DiagOf(D)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, d)

	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	d, err = matrix.DiagOf(I)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, d)

	_, err = matrix.Diag(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.Diag([]float64{math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.DiagOf(mustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestScaleColumns verifies M·diag(s) and length validation.
func TestScaleColumns(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}, {3, 4}})

	out, err := matrix.ScaleColumns(hide{m}, []float64{2, 0})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{2, 0}, {6, 0}}, toRows(t, out))

	_, err = matrix.ScaleColumns(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.ScaleColumns(m, []float64{1, math.Inf(-1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
