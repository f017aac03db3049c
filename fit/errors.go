// SPDX-License-Identifier: MIT

package fit

import "errors"

var (
	// ErrStartLength is returned when Options.Start does not have one entry per predictor.
	ErrStartLength = errors.New("fit: start length does not match predictor count")

	// ErrNoDonors is returned when a target has no donor rows to borrow from.
	ErrNoDonors = errors.New("fit: no donor units")

	// ErrNoTargets is returned when there is nothing to predict.
	ErrNoTargets = errors.New("fit: no target units")

	// ErrInvalidPenalty is returned for a negative Lambda or a non-positive L2 penalty.
	ErrInvalidPenalty = errors.New("fit: invalid penalty")

	// ErrDuplicateUnit is returned when a treated index is listed twice.
	ErrDuplicateUnit = errors.New("fit: duplicate treated unit")
)
