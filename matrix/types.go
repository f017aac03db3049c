// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface consumed by the fitting backends and
// the cross-validation engine. Errors live in errors.go, kernels in impl_*.go.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Design matrices (X, Y, X_treat, Y_treat) are passed around as Matrix so that
// callers may plug in their own storage; the kernels in this package take a
// fast path when the concrete type is *Dense.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows (units) in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns (predictors or outcomes).
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
