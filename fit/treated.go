// SPDX-License-Identifier: MIT

package fit

import (
	"context"
	"fmt"

	"github.com/xieliaing/SparseSC/matrix"
)

// Treated is the treated-holdout backend: every row listed in treated is a
// target and every other row is a donor.
type Treated struct{}

// Fit searches the V diagonal that best predicts the treated rows of (X, Y)
// from the remaining rows.
func (Treated) Fit(ctx context.Context, X, Y matrix.Matrix, treated []int, opts Options) (Result, error) {
	res, err := fitWith(ctx, X, Y, treated, opts, planTreated)
	if err != nil {
		return Result{}, fmt.Errorf("Treated.Fit: %w", err)
	}

	return res, nil
}

// Score returns the prediction error of the treated rows under a fixed V and L2 penalty.
func (Treated) Score(X, Y matrix.Matrix, treated []int, V matrix.Matrix, l2PenW float64) (float64, error) {
	s, err := scoreWith(X, Y, treated, V, l2PenW, planTreated)
	if err != nil {
		return 0, fmt.Errorf("Treated.Score: %w", err)
	}

	return s, nil
}

func planTreated(X, Y *matrix.Dense, treated []int) ([]problem, *matrix.Dense, error) {
	if len(treated) == 0 {
		return nil, nil, ErrNoTargets
	}
	n := X.Rows()
	if err := checkTreated(treated, n); err != nil {
		return nil, nil, err
	}
	donors := complement(treated, n)
	if len(donors) == 0 {
		return nil, nil, ErrNoDonors
	}
	p, err := newProblem(X, Y, treated, donors)
	if err != nil {
		return nil, nil, err
	}

	return []problem{p}, p.Xd, nil
}
