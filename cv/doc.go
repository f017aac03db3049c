// SPDX-License-Identifier: MIT

// Package cv selects regularization strengths for the synthetic-control
// weighting estimator by cross-validation.
//
// Three entry points build on each other:
//
//   - ScoreTrainTest fits a V-matrix on one fold's training units and scores
//     the held-out units.
//   - ScoreTrainTestSortedLambdas repeats that for an ordered grid of L1
//     penalties on one fold, optionally warm-starting each fit from the
//     previous V diagonal.
//   - CVScore validates the inputs, builds or accepts the folds, evaluates
//     every fold sequentially or on a worker pool, and sums the held-out
//     scores (per grid point when a grid is given).
//
// The validation protocol follows from Data: when XTreat/YTreat are set,
// folds are drawn over the treated units and each fit stacks all control
// rows above that fold's treated training rows; otherwise folds are drawn
// over the control units and every held-out control is predicted from the
// others (leave-one-out).
//
// Parallel runs acquire a pool from a workerpool.Manager and always release
// it before returning, on success and on failure. Every fold result carries
// its fold number and results are summed in fold order, so sequential and
// parallel runs produce bit-identical totals.
package cv
