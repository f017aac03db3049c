// SPDX-License-Identifier: MIT

package optimizer

import (
	"context"
	"fmt"
	"math"
)

// Objective evaluates the function being minimised at x.
// Implementations must not retain or mutate x.
type Objective func(x []float64) (float64, error)

// Result is the outcome of a search.
type Result struct {
	X           []float64 // best point found (len == len(x0))
	F           float64   // objective at X
	Sweeps      int       // completed coordinate sweeps
	Evaluations int       // objective calls, including the starting point
	Converged   bool      // false when MaxSweeps was reached first
}

// Method is the signature shared by all minimisers in this package.
type Method func(ctx context.Context, f Objective, x0 []float64, opts ...Option) (Result, error)

var _ Method = CDLineSearch

// CDLineSearch minimises f over x ≥ 0 by coordinate descent with adaptive steps.
// MAIN DESCRIPTION:
//   - Each sweep visits coordinates in index order and tries x_i+step then
//     max(x_i-step, 0). An accepted move doubles that coordinate's step; a
//     rejected pair halves it.
//
// Stopping rules (checked after every sweep):
//   - a sweep improved f by a positive amount smaller than Tolerance·max(1,|f|);
//   - every step fell below MinStep;
//   - MaxSweeps sweeps were completed (Converged=false).
//
// Errors:
//   - ErrEmptyStart, ErrInvalidStart, ErrNonFinite (at x0).
//   - Objective errors, wrapped with the sweep and coordinate.
//   - ctx.Err() when the context is done between sweeps.
//
// Notes:
//   - Trial points where f is NaN or ±Inf count as rejected moves.
func CDLineSearch(ctx context.Context, f Objective, x0 []float64, opts ...Option) (Result, error) {
	if len(x0) == 0 {
		return Result{}, ErrEmptyStart
	}
	for i, v := range x0 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Result{}, fmt.Errorf("x0[%d]=%g: %w", i, v, ErrInvalidStart)
		}
	}
	o := GatherOptions(opts...)

	x := append([]float64(nil), x0...)
	fx, err := f(x)
	if err != nil {
		return Result{}, fmt.Errorf("CDLineSearch: start: %w", err)
	}
	if math.IsNaN(fx) || math.IsInf(fx, 0) {
		return Result{}, ErrNonFinite
	}
	res := Result{Evaluations: 1}

	steps := make([]float64, len(x))
	for i := range steps {
		steps[i] = o.InitialStep
	}
	trial := make([]float64, len(x))

	// try evaluates f with coordinate i replaced by v.
	try := func(i int, v float64) (float64, error) {
		copy(trial, x)
		trial[i] = v
		res.Evaluations++

		return f(trial)
	}

	var sweep, i int
	var fStart, ft, cand, maxStep float64
	var moved bool
	for sweep = 0; sweep < o.MaxSweeps; sweep++ {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}
		fStart = fx
		for i = range x {
			moved = false
			for _, cand = range [2]float64{x[i] + steps[i], math.Max(x[i]-steps[i], 0)} {
				if cand == x[i] {
					continue
				}
				if ft, err = try(i, cand); err != nil {
					return Result{}, fmt.Errorf("CDLineSearch: sweep %d, coordinate %d: %w", sweep, i, err)
				}
				if ft < fx {
					x[i], fx, moved = cand, ft, true
					break
				}
			}
			if moved {
				steps[i] *= expandFactor
			} else {
				steps[i] *= shrinkFactor
			}
		}
		res.Sweeps = sweep + 1

		maxStep = 0
		for _, s := range steps {
			maxStep = math.Max(maxStep, s)
		}
		gain := fStart - fx
		if maxStep < o.MinStep || (gain > 0 && gain < o.Tolerance*math.Max(1, math.Abs(fx))) {
			res.Converged = true
			break
		}
	}

	res.X, res.F = x, fx

	return res, nil
}
