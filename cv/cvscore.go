// SPDX-License-Identifier: MIT

package cv

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xieliaing/SparseSC/logging"
	"github.com/xieliaing/SparseSC/split"
	"github.com/xieliaing/SparseSC/workerpool"
)

// Performance warnings of a parallel run with a derived worker count.
const (
	msgSingleSplit = "Using parallel options with a single split is expected to reduce performance"
	msgOneWorker   = "Default for max_workers is 1 on a machine with %d cores"
)

var numCPU = runtime.NumCPU

// Result is the outcome of CVScore.
type Result struct {
	// Grid reports whether CVScore was called with a lambda grid.
	Grid bool

	// Total is the sum of held-out scores over folds for a scalar lambda.
	// For a grid it is zero; use Totals.
	Total float64

	// Totals holds one fold-summed score per lambda, in grid order.
	// For a scalar lambda it has one element equal to Total.
	Totals []float64

	// Folds holds the per-fold scores ordered by fold number.
	Folds []FoldScores
}

// FoldScores is one fold's held-out scores, one per lambda.
type FoldScores struct {
	Fold   int
	Scores []float64
}

// CVScore cross-validates lambda over the folds selected by opts and
// returns the held-out scores summed across folds.
//
// Inputs are validated before any split is generated. Folds run in order
// in the calling goroutine, or on a pool from s.Manager under WithParallel;
// the pool is released before CVScore returns, whether it fails or not.
// The first failing fold aborts the run and its error is returned.
func (s *Scorer) CVScore(ctx context.Context, d Data, lambda Lambda, opts ...Option) (res Result, err error) {
	o := gatherOptions(opts...)
	if err = d.Validate(); err != nil {
		return Result{}, err
	}
	if err = lambda.validate(); err != nil {
		return Result{}, err
	}
	mode := modeLeaveOneOut
	if d.Treated() {
		mode = modeTreated
	}
	defer func() { s.Metrics.observeRun(mode, err) }()

	if logging.RunID(ctx) == "" {
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}
	log := s.logger()
	if !o.quiet {
		log.InfoContext(ctx, describe(d))
	}

	splits, err := foldsFor(d, o)
	if err != nil {
		return Result{}, err
	}
	log.DebugContext(ctx, "folds ready",
		slog.String("mode", mode),
		slog.Int("folds", len(splits)),
		slog.String("lambda", lambda.String()),
		slog.Bool("parallel", o.parallel))

	eval := func(ctx context.Context, fold int, sp split.Split) (FoldScores, error) {
		started := time.Now()
		scores, err := s.evalFold(ctx, d, lambda, o, fold, sp)
		s.Metrics.observeFold(mode, time.Since(started), err)
		if err != nil {
			return FoldScores{}, fmt.Errorf("fold %d: %w", fold, err)
		}

		return FoldScores{Fold: fold, Scores: scores}, nil
	}

	var folds []FoldScores
	if o.parallel {
		folds, err = s.runParallel(ctx, splits, s.workers(ctx, o, len(splits)), eval)
	} else {
		folds, err = runSequential(ctx, splits, eval)
	}
	if err != nil {
		return Result{}, err
	}

	return aggregate(lambda, folds), nil
}

func (s *Scorer) evalFold(ctx context.Context, d Data, lambda Lambda, o options, fold int, sp split.Split) ([]float64, error) {
	if lambda.IsGrid() {
		sw, err := s.ScoreTrainTestSortedLambdas(ctx, d, sp, lambda.Values(), SweepOptions{
			Start:    o.start,
			Cache:    o.cache,
			Progress: o.progress,
			Fold:     &fold,
		}, o.fit)
		if err != nil {
			return nil, err
		}

		return sw.Scores, nil
	}

	fo := o.fit
	fo.Lambda = lambda.Value()
	fo.Start = o.start
	fs, err := s.ScoreTrainTest(ctx, d, sp, fo)
	if err != nil {
		return nil, err
	}

	return []float64{fs.Score}, nil
}

// foldsFor materializes the folds over the unit axis of d.
func foldsFor(d Data, o options) ([]split.Split, error) {
	n := d.Units()
	splits := o.splits
	if !o.haveSplits {
		var kopts []split.Option
		if o.shuffle {
			kopts = append(kopts, split.WithShuffle(o.seed))
		}
		var err error
		if splits, err = split.KFold(n, o.nSplits, kopts...); err != nil {
			return nil, err
		}
	}
	if len(splits) == 0 {
		return nil, ErrNoSplits
	}
	if err := split.Validate(splits, n); err != nil {
		return nil, err
	}

	return splits, nil
}

// workers returns the pool size for a parallel run over nSplits folds.
func (s *Scorer) workers(ctx context.Context, o options, nSplits int) int {
	if o.maxWorkers > 0 {
		return o.maxWorkers
	}
	log := s.logger()
	if nSplits == 1 {
		log.WarnContext(ctx, msgSingleSplit)
	}
	cores := numCPU()
	n := min(max(cores-2, 1), nSplits)
	if n == 1 && nSplits > 1 {
		log.WarnContext(ctx, fmt.Sprintf(msgOneWorker, cores))
	}

	return n
}

type foldFunc func(ctx context.Context, fold int, sp split.Split) (FoldScores, error)

func runSequential(ctx context.Context, splits []split.Split, eval foldFunc) ([]FoldScores, error) {
	out := make([]FoldScores, 0, len(splits))
	for fold, sp := range splits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := eval(ctx, fold, sp)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}

// runParallel submits one task per fold, tagged with its fold number, and
// collects results as they complete. Tasks still queued after the first
// failure are skipped. The pool is released on every return path.
func (s *Scorer) runParallel(ctx context.Context, splits []split.Split, size int, eval foldFunc) ([]FoldScores, error) {
	mgr := s.manager()
	pool, err := mgr.Acquire(size)
	if err != nil {
		return nil, err
	}
	s.Metrics.setWorkers(pool.Size())
	defer func() {
		mgr.Release()
		s.Metrics.setWorkers(0)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	futures := make([]*workerpool.Future[FoldScores], 0, len(splits))
	for fold, sp := range splits {
		f, err := workerpool.Submit(pool, fold, func() (FoldScores, error) {
			if err := ctx.Err(); err != nil {
				return FoldScores{}, err
			}

			return eval(ctx, fold, sp)
		})
		if err != nil {
			return nil, err
		}
		futures = append(futures, f)
	}

	out := make([]FoldScores, 0, len(futures))
	for f := range workerpool.AsCompleted(futures) {
		r, err := f.Result()
		if err != nil {
			cancel()
			return nil, err
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fold < out[j].Fold })

	return out, nil
}

// aggregate sums fold scores per lambda, in fold order.
func aggregate(lambda Lambda, folds []FoldScores) Result {
	res := Result{Grid: lambda.IsGrid(), Totals: make([]float64, lambda.Len()), Folds: folds}
	for _, f := range folds {
		for j, v := range f.Scores {
			res.Totals[j] += v
		}
	}
	if !res.Grid {
		res.Total = res.Totals[0]
	}

	return res
}
