// SPDX-License-Identifier: MIT

package cv

import "errors"

// Parameter-contract errors. All of them are returned before any fitting starts.
var (
	// ErrTreatPairMismatch is returned when exactly one of XTreat/YTreat is set.
	ErrTreatPairMismatch = errors.New("cv: XTreat and YTreat must both be set or both be nil")

	// ErrNoColumns is returned for a design matrix without columns.
	ErrNoColumns = errors.New("cv: matrix has no columns")

	// ErrRowMismatch is returned when paired matrices differ in row count.
	ErrRowMismatch = errors.New("cv: row counts differ")

	// ErrColumnMismatch is returned when XTreat/YTreat and X/Y differ in column count.
	ErrColumnMismatch = errors.New("cv: column counts differ")

	// ErrNilData is returned when X or Y is missing.
	ErrNilData = errors.New("cv: X and Y are required")

	// ErrEmptyGrid is returned for a lambda grid without values.
	ErrEmptyGrid = errors.New("cv: empty lambda grid")

	// ErrNoSplits is returned when an explicit split list is empty.
	ErrNoSplits = errors.New("cv: no splits")

	// ErrInvalidLambda is returned for a negative or non-finite lambda.
	ErrInvalidLambda = errors.New("cv: lambda must be finite and non-negative")
)
