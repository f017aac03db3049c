// SPDX-License-Identifier: MIT

// Package dataset reads design matrices from CSV files.
//
// A file holds one unit per row and one numeric column per predictor or
// outcome. A first row that does not parse as numbers is treated as a header
// and skipped. Load reads the control and (optional) treated files of one
// problem concurrently and returns them as cv.Data.
package dataset
