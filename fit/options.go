// SPDX-License-Identifier: MIT

package fit

import (
	"github.com/xieliaing/SparseSC/matrix"
	"github.com/xieliaing/SparseSC/optimizer"
)

// Options is the explicit record of recognised fitting parameters.
type Options struct {
	// Lambda is the L1 penalty on the V diagonal (>= 0).
	Lambda float64

	// L2PenW fixes the ridge penalty on the weights; nil derives it from the donors.
	L2PenW *float64

	// Start is the initial V diagonal; nil means all ones.
	Start []float64

	// Method selects the optimizer; nil means optimizer.CDLineSearch.
	Method optimizer.Method

	// MethodOptions are forwarded to Method.
	MethodOptions []optimizer.Option
}

// Result is what a backend fit produces.
type Result struct {
	// Weights holds one row per target unit and one column per row of the
	// fitted X; columns of units outside the target's donor pool are zero.
	Weights *matrix.Dense

	// V is the fitted diagonal predictor importance (p×p).
	V *matrix.Dense

	// Score is the in-sample prediction error at V.
	Score float64

	// Loss is Score + Lambda·Σdiag(V), the minimised objective.
	Loss float64

	// L2PenW is the ridge penalty that was used (supplied or derived).
	L2PenW float64

	// Iterations counts optimizer sweeps.
	Iterations int
}

// Float returns a pointer to v, for filling Options.L2PenW inline.
func Float(v float64) *float64 { return &v }
