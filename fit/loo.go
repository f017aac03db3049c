// SPDX-License-Identifier: MIT

package fit

import (
	"context"
	"fmt"

	"github.com/xieliaing/SparseSC/matrix"
)

// LeaveOneOut is the control-only backend: each target row is predicted
// from every other row of the same matrix. A nil treated list makes every
// row a target.
type LeaveOneOut struct{}

// Fit searches the V diagonal that best predicts each target row from the others.
func (LeaveOneOut) Fit(ctx context.Context, X, Y matrix.Matrix, treated []int, opts Options) (Result, error) {
	res, err := fitWith(ctx, X, Y, treated, opts, planLeaveOneOut)
	if err != nil {
		return Result{}, fmt.Errorf("LeaveOneOut.Fit: %w", err)
	}

	return res, nil
}

// Score returns the leave-one-out prediction error of the target rows under a fixed V.
func (LeaveOneOut) Score(X, Y matrix.Matrix, treated []int, V matrix.Matrix, l2PenW float64) (float64, error) {
	s, err := scoreWith(X, Y, treated, V, l2PenW, planLeaveOneOut)
	if err != nil {
		return 0, fmt.Errorf("LeaveOneOut.Score: %w", err)
	}

	return s, nil
}

func planLeaveOneOut(X, Y *matrix.Dense, treated []int) ([]problem, *matrix.Dense, error) {
	n := X.Rows()
	targets := treated
	if targets == nil {
		targets = complement(nil, n)
	}
	if len(targets) == 0 {
		return nil, nil, ErrNoTargets
	}
	if err := checkTreated(targets, n); err != nil {
		return nil, nil, err
	}
	if n < 2 {
		return nil, nil, ErrNoDonors
	}

	ps := make([]problem, 0, len(targets))
	for _, t := range targets {
		p, err := newProblem(X, Y, []int{t}, complement([]int{t}, n))
		if err != nil {
			return nil, nil, err
		}
		ps = append(ps, p)
	}

	return ps, X, nil
}
