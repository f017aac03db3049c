// SPDX-License-Identifier: MIT
// Package matrix: constructors, row selection and stacking.
//
// Purpose:
//   - Build the partitions the cross-validation engine works on: donor/target
//     row subsets (SelectRows), control+treated stacks (VStack) and diagonal
//     V-matrices (Diag/DiagOf).
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Every result is a fresh copy; inputs are never aliased or mutated.
//   - Zero-row results are legal (e.g. a fold whose training set has no treated rows).
//
// AI-Hints:
//   - Stack first, then index: treated rows in VStack(X, XTreat) start at X.Rows().

package matrix

import (
	"fmt"
	"math"
)

const (
	opSelectRows = "SelectRows"
	opVStack     = "VStack"
	opDiag       = "Diag"
	opDiagOf     = "DiagOf"
	opScaleCols  = "ScaleColumns"
)

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// SelectRows copies the rows listed in idx (in that order) into a new Dense
// with the same column count.
// MAIN DESCRIPTION:
//   - Train/test partitioning primitive; duplicates in idx are copied twice.
//   - Delegates to Dense.Induced over every column, which takes the row-copy path.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange (index outside [0, Rows)).
//
// Complexity:
//   - Time O(len(idx)*c), Space O(len(idx)*c).
func SelectRows(m Matrix, idx []int) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	out, err := d.Induced(idx, allIndices(d.c))
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}

	return out, nil
}

// VStack stacks top above bottom (rows of top first).
// MAIN DESCRIPTION:
//   - Used to append treated rows below the control block. Row k of bottom
//     lands at index top.Rows()+k in the result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (column counts differ).
//
// Complexity:
//   - Time O((r1+r2)*c), Space O((r1+r2)*c).
func VStack(top, bottom Matrix) (*Dense, error) {
	dt, err := AsDense(top)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	db, err := AsDense(bottom)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	if dt.c != db.c {
		return nil, matrixErrorf(opVStack, fmt.Errorf("%d vs %d columns: %w", dt.c, db.c, ErrDimensionMismatch))
	}

	out, err := newDenseZeroOK(dt.r+db.r, dt.c)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	copy(out.data, dt.data)
	copy(out.data[len(dt.data):], db.data)

	return out, nil
}

// Diag builds the n×n diagonal matrix with v on its diagonal (n = len(v)).
// Errors: ErrInvalidDimensions (empty v), ErrNaNInf.
// Complexity: O(n^2).
func Diag(v []float64) (*Dense, error) {
	n := len(v)
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, matrixErrorf(opDiag, denseErrorf(ctxSet, i, i, ErrNaNInf))
		}
		out.data[i*n+i] = x
	}

	return out, nil
}

// DiagOf returns a copy of the main diagonal of a square matrix.
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square).
// Complexity: O(n).
func DiagOf(m Matrix) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opDiagOf, err)
	}
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opDiagOf, err)
	}
	out := make([]float64, d.r)
	for i := range out {
		out[i] = d.data[i*d.c+i]
	}

	return out, nil
}

// ScaleColumns returns M·diag(s): column j multiplied by s[j].
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(s) != Cols), ErrNaNInf.
// Complexity: O(r*c).
func ScaleColumns(m Matrix, s []float64) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	if err = ValidateVecLen(s, d.c); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	for j, x := range s {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, matrixErrorf(opScaleCols, fmt.Errorf("scale[%d]: %w", j, ErrNaNInf))
		}
	}

	out, err := newDenseZeroOK(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] = d.data[base+j] * s[j]
		}
	}

	return out, nil
}
