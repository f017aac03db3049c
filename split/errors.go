// SPDX-License-Identifier: MIT

package split

import "errors"

var (
	// ErrTooFewFolds is returned when fewer than two folds are requested.
	ErrTooFewFolds = errors.New("split: at least 2 folds are required")

	// ErrTooManyFolds is returned when the fold count exceeds the unit count.
	ErrTooManyFolds = errors.New("split: more folds than units")

	// ErrIndexRange is returned by Validate for an index outside [0, n).
	ErrIndexRange = errors.New("split: index out of range")

	// ErrOverlap is returned by Validate when a unit is both train and test.
	ErrOverlap = errors.New("split: train and test overlap")

	// ErrEmptyTest is returned by Validate for a split with no test units.
	ErrEmptyTest = errors.New("split: empty test set")
)
