// SPDX-License-Identifier: MIT

package optimizer

import "errors"

var (
	// ErrEmptyStart is returned when the starting point has no coordinates.
	ErrEmptyStart = errors.New("optimizer: empty starting point")

	// ErrInvalidStart is returned when a starting coordinate is negative or not finite.
	ErrInvalidStart = errors.New("optimizer: starting point outside the non-negative orthant")

	// ErrNonFinite is returned when the objective is not finite at the starting point.
	ErrNonFinite = errors.New("optimizer: objective is not finite")
)
