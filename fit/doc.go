// SPDX-License-Identifier: MIT

// Package fit provides the reference V-matrix fitting and scoring backends
// for the two validation protocols.
//
// Both backends share one prediction model. Given a diagonal predictor
// importance v ≥ 0 and a ridge penalty L2 > 0, each target unit t is
// predicted from its donor pool D by
//
//	Z   = X·diag(√v)
//	w_t = Z_D (Z_Dᵀ Z_D + L2·I)⁻¹ z_t
//	ŷ_t = w_tᵀ Y_D
//
// and the score is the summed squared error Σ_t ‖y_t − ŷ_t‖².
//
// Treated draws donors from every row not listed as treated. LeaveOneOut
// predicts each listed row from all other rows of the same matrix.
//
// Fit minimises score(v) + Lambda·Σv with an optimizer.Method, starting
// from Options.Start (all ones when nil).
package fit
