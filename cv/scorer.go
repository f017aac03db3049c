// SPDX-License-Identifier: MIT

package cv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/logging"
	"github.com/xieliaing/SparseSC/matrix"
	"github.com/xieliaing/SparseSC/split"
	"github.com/xieliaing/SparseSC/workerpool"
)

// Scorer runs fold evaluations against a pair of backends.
// The zero value uses the fit package backends, discards log output,
// records no metrics and draws pools from workerpool.Default.
type Scorer struct {
	Backends Backends
	Logger   *slog.Logger
	Metrics  *Metrics
	Manager  *workerpool.Manager
}

// FoldScore is the outcome of one fit/score round on one fold.
type FoldScore struct {
	V      *matrix.Dense // fitted p×p diagonal V
	L2PenW float64       // ridge penalty used by the fit
	Score  float64       // held-out prediction error
}

func (s *Scorer) logger() *slog.Logger {
	return logging.OrDiscard(s.Logger).With(slog.String("component", "cv"))
}

func (s *Scorer) manager() *workerpool.Manager {
	if s.Manager == nil {
		return workerpool.Default
	}

	return s.Manager
}

// ScoreTrainTest fits V on the training side of sp and scores the test side.
//
// With treated data the fit stacks every control row above the treated
// training rows and predicts the appended rows; scoring stacks every control
// row above the treated test rows. Without treated data the fit uses the
// control training rows only (each predicted from the others) and scoring
// predicts the test rows of the full control block.
//
// Contract violations are returned before any fitting. Backend errors are
// returned unchanged.
func (s *Scorer) ScoreTrainTest(ctx context.Context, d Data, sp split.Split, fo fit.Options) (FoldScore, error) {
	if err := d.Validate(); err != nil {
		return FoldScore{}, err
	}
	if err := split.Validate([]split.Split{sp}, d.Units()); err != nil {
		return FoldScore{}, err
	}
	if d.Treated() {
		return s.scoreTreated(ctx, d, sp, fo)
	}

	return s.scoreLeaveOneOut(ctx, d, sp, fo)
}

func (s *Scorer) scoreTreated(ctx context.Context, d Data, sp split.Split, fo fit.Options) (FoldScore, error) {
	nControl := d.X.Rows()
	b := s.Backends.treated()

	Xfit, Yfit, err := stackTreated(d, sp.Train)
	if err != nil {
		return FoldScore{}, err
	}
	res, err := b.Fit(ctx, Xfit, Yfit, appendedRows(nControl, len(sp.Train)), fo)
	if err != nil {
		return FoldScore{}, err
	}

	Xout, Yout, err := stackTreated(d, sp.Test)
	if err != nil {
		return FoldScore{}, err
	}
	score, err := b.Score(Xout, Yout, appendedRows(nControl, len(sp.Test)), res.V, res.L2PenW)
	if err != nil {
		return FoldScore{}, err
	}

	return FoldScore{V: res.V, L2PenW: res.L2PenW, Score: score}, nil
}

func (s *Scorer) scoreLeaveOneOut(ctx context.Context, d Data, sp split.Split, fo fit.Options) (FoldScore, error) {
	b := s.Backends.leaveOneOut()

	Xfit, err := matrix.SelectRows(d.X, sp.Train)
	if err != nil {
		return FoldScore{}, err
	}
	Yfit, err := matrix.SelectRows(d.Y, sp.Train)
	if err != nil {
		return FoldScore{}, err
	}
	res, err := b.Fit(ctx, Xfit, Yfit, nil, fo)
	if err != nil {
		return FoldScore{}, err
	}

	score, err := b.Score(d.X, d.Y, sp.Test, res.V, res.L2PenW)
	if err != nil {
		return FoldScore{}, err
	}

	return FoldScore{V: res.V, L2PenW: res.L2PenW, Score: score}, nil
}

// stackTreated returns [X; XTreat[rows]] and [Y; YTreat[rows]].
func stackTreated(d Data, rows []int) (*matrix.Dense, *matrix.Dense, error) {
	xt, err := matrix.SelectRows(d.XTreat, rows)
	if err != nil {
		return nil, nil, err
	}
	yt, err := matrix.SelectRows(d.YTreat, rows)
	if err != nil {
		return nil, nil, err
	}
	Xs, err := matrix.VStack(d.X, xt)
	if err != nil {
		return nil, nil, err
	}
	Ys, err := matrix.VStack(d.Y, yt)
	if err != nil {
		return nil, nil, err
	}

	return Xs, Ys, nil
}

// appendedRows lists the stacked-matrix indices of k rows appended below
// an offset-row block.
func appendedRows(offset, k int) []int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = offset + i
	}

	return idx
}

var defaultScorer = &Scorer{}

// ScoreTrainTest runs Scorer.ScoreTrainTest with the default backends.
func ScoreTrainTest(ctx context.Context, d Data, sp split.Split, fo fit.Options) (FoldScore, error) {
	return defaultScorer.ScoreTrainTest(ctx, d, sp, fo)
}

// ScoreTrainTestSortedLambdas runs Scorer.ScoreTrainTestSortedLambdas with the default backends.
func ScoreTrainTestSortedLambdas(ctx context.Context, d Data, sp split.Split, lambdas []float64, so SweepOptions, fo fit.Options) (Sweep, error) {
	return defaultScorer.ScoreTrainTestSortedLambdas(ctx, d, sp, lambdas, so, fo)
}

// CVScore runs Scorer.CVScore with the default backends.
func CVScore(ctx context.Context, d Data, lambda Lambda, opts ...Option) (Result, error) {
	return defaultScorer.CVScore(ctx, d, lambda, opts...)
}

func describe(d Data) string {
	if d.Treated() {
		return fmt.Sprintf("K-fold validation with %d control and %d treated units %d predictors and %d outcomes, "+
			"holding out one fold among Treated units; Assumes that `Y` and `Y_treat` are pre-intervention outcomes",
			d.X.Rows(), d.XTreat.Rows(), d.X.Cols(), d.Y.Cols())
	}

	return fmt.Sprintf("Leave-one-out Cross Validation with %d control units, %d predictors and %d outcomes; "+
		"Y may contain post-intervention outcomes",
		d.X.Rows(), d.X.Cols(), d.Y.Cols())
}
