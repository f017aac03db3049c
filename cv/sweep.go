// SPDX-License-Identifier: MIT

package cv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/matrix"
	"github.com/xieliaing/SparseSC/split"
)

// Sweep holds one fold's results over a lambda grid, one entry per grid
// point in grid order.
type Sweep struct {
	Fold   int // -1 when the caller gave no fold number
	V      []*matrix.Dense
	L2PenW []float64
	Scores []float64
}

// ScoreTrainTestSortedLambdas calls ScoreTrainTest once per lambda, in the
// given order, on a single fold.
//
// With so.Cache the diagonal of each fitted V becomes the start of the next
// fit; otherwise so.Start is passed to every fit. Scores are not reduced.
func (s *Scorer) ScoreTrainTestSortedLambdas(
	ctx context.Context,
	d Data,
	sp split.Split,
	lambdas []float64,
	so SweepOptions,
	fo fit.Options,
) (Sweep, error) {
	if len(lambdas) == 0 {
		return Sweep{}, ErrEmptyGrid
	}
	out := Sweep{
		Fold:   -1,
		V:      make([]*matrix.Dense, 0, len(lambdas)),
		L2PenW: make([]float64, 0, len(lambdas)),
		Scores: make([]float64, 0, len(lambdas)),
	}
	if so.Fold != nil {
		out.Fold = *so.Fold
	}
	log := s.logger()

	start := so.Start
	t0 := time.Now()
	for i, lam := range lambdas {
		if err := ctx.Err(); err != nil {
			return Sweep{}, err
		}
		o := fo
		o.Lambda = lam
		o.Start = start
		fs, err := s.ScoreTrainTest(ctx, d, sp, o)
		if err != nil {
			return Sweep{}, err
		}
		out.V = append(out.V, fs.V)
		out.L2PenW = append(out.L2PenW, fs.L2PenW)
		out.Scores = append(out.Scores, fs.Score)

		if so.Cache {
			if start, err = matrix.DiagOf(fs.V); err != nil {
				return Sweep{}, err
			}
		}
		if so.Progress > 0 && i%so.Progress == 0 {
			elapsed := time.Since(t0)
			log.InfoContext(ctx, progressLine(so.Fold, i+1, len(lambdas), elapsed, lam),
				slog.Int("iteration", i+1),
				slog.Int("iterations", len(lambdas)),
				slog.Duration("elapsed", elapsed),
				slog.Float64("lambda", lam))
			t0 = time.Now()
		}
	}

	return out, nil
}

func progressLine(fold *int, i, n int, elapsed time.Duration, lam float64) string {
	if fold == nil {
		return fmt.Sprintf("iteration %d of %d time: %0.4f, lambda: %0.4f", i, n, elapsed.Seconds(), lam)
	}

	return fmt.Sprintf("Fold %d, iteration %d of %d, time: %0.4f, lambda: %0.4f", *fold, i, n, elapsed.Seconds(), lam)
}
