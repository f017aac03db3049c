// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide column statistics used when deriving a default L2 penalty and
//     when summarizing design matrices in diagnostics.
//
// Exposed API:
//   - ColumnMeans(X)     -> means              // Σ_i X[i,j] / r
//   - ColumnVariances(X) -> vars               // population variance per column (divisor r)
//   - SumSquares(X)      -> Σ X[i,j]^2
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Every function normalizes its operand once through AsDense.
//
// AI-Hints:
//   - Population variance matches the numpy default (ddof=0).

package matrix

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnMeans     = "ColumnMeans"
	opColumnVariances = "ColumnVariances"
	opSumSquares      = "SumSquares"
)

// ColumnMeans returns the per-column mean of X.
// Zero-row matrices yield a zero vector of length Cols.
// Complexity: Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) ([]float64, error) {
	d, err := AsDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}

	r, c := d.r, d.c
	means := make([]float64, c) // always return correct length for callers
	if r == 0 {
		return means, nil
	}
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += d.data[base+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// ColumnVariances returns the population variance of every column.
// Implementation:
//   - Stage 1: ColumnMeans.
//   - Stage 2: accumulate squared deviations in i→j order, divide by r.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnVariances(X Matrix) ([]float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, matrixErrorf(opColumnVariances, err)
	}
	d, err := AsDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnVariances, err)
	}

	r, c := d.r, d.c
	vars := make([]float64, c)
	if r == 0 {
		return vars, nil
	}
	var i, j, base int
	var dev float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			dev = d.data[base+j] - means[j]
			vars[j] += dev * dev
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		vars[j] *= invR
	}

	return vars, nil
}

// SumSquares returns Σ_ij X[i,j]^2 (the squared Frobenius norm).
// Complexity: O(r*c).
func SumSquares(X Matrix) (float64, error) {
	d, err := AsDense(X)
	if err != nil {
		return 0, matrixErrorf(opSumSquares, err)
	}
	sum := ZeroSum
	for _, v := range d.data {
		sum += v * v
	}

	return sum, nil
}
