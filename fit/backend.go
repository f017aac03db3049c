// SPDX-License-Identifier: MIT

package fit

import (
	"context"
	"fmt"
	"math"

	"github.com/xieliaing/SparseSC/matrix"
	"github.com/xieliaing/SparseSC/optimizer"
)

// problem is one donor pool and the targets predicted from it.
type problem struct {
	targets, donors []int
	Xd, Yd, Xt, Yt  *matrix.Dense
}

// planner turns (X, Y, treated) into prediction problems plus the donor
// predictors used to derive a default L2 penalty.
type planner func(X, Y *matrix.Dense, treated []int) ([]problem, *matrix.Dense, error)

func newProblem(X, Y *matrix.Dense, targets, donors []int) (problem, error) {
	p := problem{targets: targets, donors: donors}
	var err error
	if p.Xd, err = matrix.SelectRows(X, donors); err != nil {
		return problem{}, err
	}
	if p.Yd, err = matrix.SelectRows(Y, donors); err != nil {
		return problem{}, err
	}
	if p.Xt, err = matrix.SelectRows(X, targets); err != nil {
		return problem{}, err
	}
	if p.Yt, err = matrix.SelectRows(Y, targets); err != nil {
		return problem{}, err
	}

	return p, nil
}

// evaluate sums the prediction error of every problem.
func evaluate(ps []problem, v []float64, l2 float64) (float64, error) {
	var total float64
	for _, p := range ps {
		_, s, err := predict(p.Xd, p.Yd, p.Xt, p.Yt, v, l2)
		if err != nil {
			return 0, err
		}
		total += s
	}

	return total, nil
}

// weightsOf scatters each problem's donor weights into a targets × n matrix.
func weightsOf(ps []problem, v []float64, l2 float64, n int) (*matrix.Dense, error) {
	rows := 0
	for _, p := range ps {
		rows += len(p.targets)
	}
	out, err := matrix.NewDense(rows, n)
	if err != nil {
		return nil, err
	}
	r := 0
	for _, p := range ps {
		W, _, err := predict(p.Xd, p.Yd, p.Xt, p.Yt, v, l2)
		if err != nil {
			return nil, err
		}
		for i := range p.targets {
			row, err := W.Row(i)
			if err != nil {
				return nil, err
			}
			for j, d := range p.donors {
				if err = out.Set(r, d, row[j]); err != nil {
					return nil, err
				}
			}
			r++
		}
	}

	return out, nil
}

func fitWith(ctx context.Context, X, Y matrix.Matrix, treated []int, opts Options, plan planner) (Result, error) {
	if math.IsNaN(opts.Lambda) || math.IsInf(opts.Lambda, 0) || opts.Lambda < 0 {
		return Result{}, fmt.Errorf("Lambda=%g: %w", opts.Lambda, ErrInvalidPenalty)
	}
	dx, dy, err := checkData(X, Y)
	if err != nil {
		return Result{}, err
	}
	ps, l2Donors, err := plan(dx, dy, treated)
	if err != nil {
		return Result{}, err
	}

	l2 := 0.0
	if opts.L2PenW != nil {
		l2 = *opts.L2PenW
	} else if l2, err = DefaultL2PenW(l2Donors); err != nil {
		return Result{}, err
	}
	if err = checkL2(l2); err != nil {
		return Result{}, err
	}

	p := dx.Cols()
	start := opts.Start
	if start == nil {
		start = make([]float64, p)
		for j := range start {
			start[j] = 1
		}
	}
	if len(start) != p {
		return Result{}, fmt.Errorf("start has %d entries for %d predictors: %w", len(start), p, ErrStartLength)
	}
	method := opts.Method
	if method == nil {
		method = optimizer.CDLineSearch
	}

	objective := func(v []float64) (float64, error) {
		s, err := evaluate(ps, v, l2)
		if err != nil {
			return 0, err
		}
		return s + opts.Lambda*sum(v), nil
	}
	best, err := method(ctx, objective, start, opts.MethodOptions...)
	if err != nil {
		return Result{}, err
	}

	score, err := evaluate(ps, best.X, l2)
	if err != nil {
		return Result{}, err
	}
	W, err := weightsOf(ps, best.X, l2, dx.Rows())
	if err != nil {
		return Result{}, err
	}
	V, err := matrix.Diag(best.X)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Weights:    W,
		V:          V,
		Score:      score,
		Loss:       score + opts.Lambda*sum(best.X),
		L2PenW:     l2,
		Iterations: best.Sweeps,
	}, nil
}

func scoreWith(X, Y matrix.Matrix, treated []int, V matrix.Matrix, l2 float64, plan planner) (float64, error) {
	if err := checkL2(l2); err != nil {
		return 0, err
	}
	dx, dy, err := checkData(X, Y)
	if err != nil {
		return 0, err
	}
	v, err := vDiagonal(V, dx.Cols())
	if err != nil {
		return 0, err
	}
	ps, _, err := plan(dx, dy, treated)
	if err != nil {
		return 0, err
	}

	return evaluate(ps, v, l2)
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}

	return s
}
