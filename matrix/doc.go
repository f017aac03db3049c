// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra substrate of the
// cross-validation engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional NaN/Inf rejection policy.
//   - Kernels used by the ridge weight solver: Mul, Transpose, Add/Sub,
//     Scale, ScaleColumns, LU, Solve and SumSquares.
//   - Partitioning helpers used to carve folds out of design matrices:
//     SelectRows (built on Dense.Induced), VStack, Diag and DiagOf.
//   - Column statistics for the default ridge penalty (ColumnMeans,
//     ColumnVariances).
//
// Every function returns sentinel errors from errors.go wrapped with an
// operation tag; match them with errors.Is. No kernel panics on user input.
package matrix
