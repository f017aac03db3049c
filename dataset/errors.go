// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrEmpty is returned for a file without data rows.
	ErrEmpty = errors.New("dataset: no data rows")

	// ErrParse is returned for a non-numeric cell below the header.
	ErrParse = errors.New("dataset: non-numeric cell")

	// ErrMissingPath is returned when a required path is empty.
	ErrMissingPath = errors.New("dataset: path is required")
)
