// SPDX-License-Identifier: MIT

// Package split partitions a unit index range into cross-validation folds.
//
// KFold mirrors the classic contiguous K-fold scheme: units 0..n-1 are cut
// into k consecutive blocks, the first n%k blocks holding one extra unit.
// Each fold's test set is one block and its training set is every other
// unit, in ascending order. WithShuffle permutes the units deterministically
// before cutting, so the same seed always yields the same folds.
//
// Validate checks externally supplied splits against a unit count before
// any fitting work begins.
package split
