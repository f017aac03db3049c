// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"math"

	"github.com/xieliaing/SparseSC/matrix"
)

// predict computes donor weights (targets × donors) and the squared
// prediction error of Yt from (Xd, Yd) under V diagonal v and ridge l2.
//
// Complexity: O(D·p² + p³ + T·D·(p+q)).
func predict(Xd, Yd, Xt, Yt *matrix.Dense, v []float64, l2 float64) (*matrix.Dense, float64, error) {
	sq := make([]float64, len(v))
	for j, x := range v {
		sq[j] = math.Sqrt(x)
	}
	Zd, err := matrix.ScaleColumns(Xd, sq)
	if err != nil {
		return nil, 0, err
	}
	Zt, err := matrix.ScaleColumns(Xt, sq)
	if err != nil {
		return nil, 0, err
	}

	// G = Z_Dᵀ Z_D + l2·I
	ZdT, err := matrix.Transpose(Zd)
	if err != nil {
		return nil, 0, err
	}
	G, err := matrix.Mul(ZdT, Zd)
	if err != nil {
		return nil, 0, err
	}
	ridge, err := matrix.NewIdentity(len(v))
	if err != nil {
		return nil, 0, err
	}
	if ridge, err = matrix.Scale(ridge, l2); err != nil {
		return nil, 0, err
	}
	if G, err = matrix.Add(G, ridge); err != nil {
		return nil, 0, err
	}

	// W = (Z_D G⁻¹ Z_Tᵀ)ᵀ, one row per target
	ZtT, err := matrix.Transpose(Zt)
	if err != nil {
		return nil, 0, err
	}
	B, err := matrix.Solve(G, ZtT)
	if err != nil {
		return nil, 0, err
	}
	WdT, err := matrix.Mul(Zd, B)
	if err != nil {
		return nil, 0, err
	}
	W, err := matrix.Transpose(WdT)
	if err != nil {
		return nil, 0, err
	}

	Yhat, err := matrix.Mul(W, Yd)
	if err != nil {
		return nil, 0, err
	}
	resid, err := matrix.Sub(Yt, Yhat)
	if err != nil {
		return nil, 0, err
	}
	score, err := matrix.SumSquares(resid)
	if err != nil {
		return nil, 0, err
	}

	return W, score, nil
}

// checkData validates the X/Y pair shared by both backends.
func checkData(X, Y matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, nil, fmt.Errorf("X: %w", err)
	}
	if err := matrix.ValidateNotNil(Y); err != nil {
		return nil, nil, fmt.Errorf("Y: %w", err)
	}
	if err := matrix.ValidateSameRows(X, Y); err != nil {
		return nil, nil, fmt.Errorf("X has %d rows, Y has %d: %w", X.Rows(), Y.Rows(), err)
	}
	dx, err := matrix.AsDense(X)
	if err != nil {
		return nil, nil, err
	}
	dy, err := matrix.AsDense(Y)
	if err != nil {
		return nil, nil, err
	}

	return dx, dy, nil
}

// checkTreated validates treated indices: in range and unique.
func checkTreated(treated []int, n int) error {
	if err := matrix.ValidateIndices(treated, n); err != nil {
		return err
	}
	seen := make(map[int]struct{}, len(treated))
	for _, u := range treated {
		if _, dup := seen[u]; dup {
			return fmt.Errorf("unit %d: %w", u, ErrDuplicateUnit)
		}
		seen[u] = struct{}{}
	}

	return nil
}

// complement returns 0..n-1 minus the listed indices, ascending.
func complement(idx []int, n int) []int {
	skip := make([]bool, n)
	for _, u := range idx {
		skip[u] = true
	}
	out := make([]int, 0, n-len(idx))
	for u := 0; u < n; u++ {
		if !skip[u] {
			out = append(out, u)
		}
	}

	return out
}

// vDiagonal extracts and checks the diagonal of a fitted V against p predictors.
func vDiagonal(V matrix.Matrix, p int) ([]float64, error) {
	v, err := matrix.DiagOf(V)
	if err != nil {
		return nil, fmt.Errorf("V: %w", err)
	}
	if len(v) != p {
		return nil, fmt.Errorf("V is %d×%d for %d predictors: %w", len(v), len(v), p, matrix.ErrDimensionMismatch)
	}

	return v, nil
}

// checkL2 rejects non-positive or non-finite ridge penalties.
func checkL2(l2 float64) error {
	if math.IsNaN(l2) || math.IsInf(l2, 0) || l2 <= 0 {
		return fmt.Errorf("L2PenW=%g: %w", l2, ErrInvalidPenalty)
	}

	return nil
}
