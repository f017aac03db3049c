// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xieliaing/SparseSC/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the AsDense copy path.
type hide struct{ matrix.Matrix }

// mustRows builds a *Dense from literal rows or fails the test.
func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return m
}

// mustDense allocates an r×c zero matrix or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)

	return m
}

// fillDenseRand fills m with values in [-1, 1) from a seeded source.
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			require.NoError(tb, m.Set(i, j, rng.Float64()*2-1))
		}
	}
}

// allClose reports whether |a-b| <= atol + rtol*|b| holds element-wise.
func allClose(tb testing.TB, a, b matrix.Matrix, rtol, atol float64) bool {
	tb.Helper()
	require.Equal(tb, a.Rows(), b.Rows())
	require.Equal(tb, a.Cols(), b.Cols())
	ra, rb := toRows(tb, a), toRows(tb, b)
	for i := range ra {
		for j := range ra[i] {
			if math.Abs(ra[i][j]-rb[i][j]) > atol+rtol*math.Abs(rb[i][j]) {
				return false
			}
		}
	}

	return true
}

// toRows dumps m back into [][]float64 for compact assertions.
func toRows(tb testing.TB, m matrix.Matrix) [][]float64 {
	tb.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(tb, err)
			out[i][j] = v
		}
	}

	return out
}
