// SPDX-License-Identifier: MIT

// Package optimizer provides derivative-free minimisers over the
// non-negative orthant, used by package fit to search V-matrix diagonals.
//
// A Method receives an Objective, a starting point and options, and returns
// the best point found. CDLineSearch is the default Method: a coordinate
// descent whose per-coordinate step grows after a successful move and
// shrinks after a failed one.
//
// Determinism: coordinates are visited in index order and no randomness is
// involved, so identical inputs always produce identical results.
package optimizer
