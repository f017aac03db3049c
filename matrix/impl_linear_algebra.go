// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling and LU-based solving. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare the linear-algebra kernels used by the ridge weight solver in package fit.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Every kernel normalizes its operands to *Dense once (asDense) and then works
//     on flat row-major slices; inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opLU        = "LU"
	opSolve     = "Solve"
	opAsDense   = "AsDense"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
//
// Inputs:
//   - tag: operation name/label (use package-level op* constants; no magic strings).
//   - err: underlying non-nil error to wrap.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// AsDense returns m itself when it already is a *Dense, otherwise a fresh Dense copy.
// MAIN DESCRIPTION:
//   - Single conversion point from the Matrix interface to flat storage.
//
// Implementation:
//   - Stage 1: ValidateNotNil.
//   - Stage 2: type-assert fast path; otherwise copy via At in fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (foreign matrix holding non-finite values), At errors.
//
// Complexity:
//   - Time O(1) for *Dense, O(r*c) otherwise.
//
// AI-Hints:
//   - The returned *Dense may alias m; Clone it before mutating.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAsDense, err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAsDense, err)
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opAsDense, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opAsDense, denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
			res.data[i*cols+j] = v
		}
	}

	return res, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opAdd/opSub).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res, err := newDenseZeroOK(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product C = A × B.
// MAIN DESCRIPTION:
//   - Classic triple loop in i→k→j order so the inner loop streams rows of B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: normalize to *Dense and accumulate C[i,:] += A[i,k]*B[k,:].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Determinism:
//   - Fixed loop order i→k→j; identical inputs give bit-identical outputs.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := da.r, da.c, db.c
	res, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	var aik float64
	var baseA, baseB, baseC int
	for i = 0; i < rows; i++ {
		baseA = i * inner
		baseC = i * cols
		for k = 0; k < inner; k++ {
			aik = da.data[baseA+k]
			if aik == 0 {
				continue
			}
			baseB = k * cols
			for j = 0; j < cols; j++ {
				res.data[baseC+j] += aik * db.data[baseB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new Dense Aᵀ.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := newDenseZeroOK(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[i*dm.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha*M as a new Dense.
// Errors: ErrNilMatrix, ErrNaNInf (alpha not finite).
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := newDenseZeroOK(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// LU performs a Doolittle decomposition A = L·U without pivoting.
// MAIN DESCRIPTION:
//   - L is unit lower-triangular, U upper-triangular.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil.
//   - Stage 2: row-by-row Doolittle recurrences with a zero-pivot guard.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (not square), ErrSingular (zero pivot).
//
// Determinism:
//   - No pivot search; fixed loop order.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Symmetric positive definite inputs (Gram matrices plus a ridge term) never
//     produce a zero pivot, which is the only use inside this module.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := dm.r
	L, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		// U[i][j] for j >= i
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = dm.data[i*n+j] - sum
		}
		if U.data[i*n+i] == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		// L[j][i] for j > i
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			L.data[j*n+i] = (dm.data[j*n+i] - sum) / U.data[i*n+i]
		}
	}

	return L, U, nil
}

// Solve returns X such that A·X = B, using LU forward/back substitution per column of B.
// MAIN DESCRIPTION:
//   - Used by the ridge weight solver; avoids forming A⁻¹ explicitly.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (A not square or A.Rows != B.Rows), ErrSingular.
//
// Complexity:
//   - Time O(n^3 + n^2*m), Space O(n*m).
func Solve(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	L, U, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := L.r
	if db.r != n {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}

	m := db.c
	res, err := newDenseZeroOK(n, m)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	y := make([]float64, n)
	var col, i, k int
	var sum float64
	for col = 0; col < m; col++ {
		// forward: L·y = b[:,col]
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * y[k]
			}
			y[i] = db.data[i*m+col] - sum
		}
		// backward: U·x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += U.data[i*n+k] * res.data[k*m+col]
			}
			res.data[i*m+col] = (y[i] - sum) / U.data[i*n+i]
		}
	}

	return res, nil
}
