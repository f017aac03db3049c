// SPDX-License-Identifier: MIT
package cv_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xieliaing/SparseSC/cv"
	"github.com/xieliaing/SparseSC/cv/mocks"
	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/matrix"
	"github.com/xieliaing/SparseSC/split"
	"github.com/xieliaing/SparseSC/workerpool"
)

// TestCVScoreLeaveOneOutGrid: 10 controls, a 3-point grid and 5 folds give
// three totals, each the fold sum of that grid point's scores.
func TestCVScoreLeaveOneOutGrid(t *testing.T) {
	X, Y := controls(t)
	log, buf := bufLogger(t)
	s := &cv.Scorer{Logger: log}

	res, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Grid(0.1, 1, 10), cv.WithSplits(5))
	require.NoError(t, err)

	assert.True(t, res.Grid)
	require.Len(t, res.Totals, 3)
	require.Len(t, res.Folds, 5)
	for j := range res.Totals {
		var sum float64
		for f, fs := range res.Folds {
			assert.Equal(t, f, fs.Fold)
			require.Len(t, fs.Scores, 3)
			sum += fs.Scores[j]
		}
		assert.Equal(t, sum, res.Totals[j])
		assert.GreaterOrEqual(t, res.Totals[j], 0.0)
	}
	assert.Contains(t, buf.String(), "Leave-one-out Cross Validation with 10 control units, 3 predictors and 2 outcomes")
	assert.Contains(t, buf.String(), "run_id=")
}

// TestCVScoreTreatedFolds: 4 treated units in 2 folds; every fit and score
// sees the 10 control rows plus 2 treated rows.
func TestCVScoreTreatedFolds(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	X, Y := controls(t)
	XT, YT := treatedUnits(t)
	V := diagOf(t, 1, 1, 1)

	backend.EXPECT().
		Fit(gomock.Any(), gomock.Any(), gomock.Any(), []int{10, 11}, gomock.Any()).
		DoAndReturn(func(_ context.Context, Xs, _ matrix.Matrix, _ []int, opts fit.Options) (fit.Result, error) {
			assert.Equal(t, 12, Xs.Rows())
			assert.Equal(t, 0.5, opts.Lambda)
			return fit.Result{V: V, L2PenW: 1}, nil
		}).
		Times(2)
	backend.EXPECT().
		Score(gomock.Any(), gomock.Any(), []int{10, 11}, V, 1.0).
		DoAndReturn(func(Xs, _ matrix.Matrix, _ []int, _ matrix.Matrix, _ float64) (float64, error) {
			assert.Equal(t, 12, Xs.Rows())
			first, err := Xs.At(10, 0)
			return first, err // first held-out treated predictor
		}).
		Times(2)

	log, buf := bufLogger(t)
	s := &cv.Scorer{Backends: cv.Backends{Treated: backend}, Logger: log}
	res, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y, XTreat: XT, YTreat: YT}, cv.Scalar(0.5), cv.WithSplits(2))
	require.NoError(t, err)

	assert.False(t, res.Grid)
	// fold 0 holds out treated {0,1}, fold 1 holds out {2,3}
	assert.Equal(t, 1.0+7.0, res.Total)
	assert.Equal(t, []float64{res.Total}, res.Totals)
	assert.Contains(t, buf.String(), "K-fold validation with 10 control and 4 treated units 3 predictors and 2 outcomes")
	assert.Contains(t, buf.String(), "Treated units")
}

func TestCVScoreContractErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl) // no calls expected
	s := &cv.Scorer{Backends: cv.Backends{Treated: backend, LeaveOneOut: backend}}
	X, Y := controls(t)
	XT, YT := treatedUnits(t)
	ctx := context.Background()

	_, err := s.CVScore(ctx, cv.Data{X: X, Y: Y, XTreat: XT}, cv.Scalar(1))
	assert.ErrorIs(t, err, cv.ErrTreatPairMismatch)

	_, err = s.CVScore(ctx, cv.Data{X: X, Y: Y, YTreat: YT}, cv.Grid(1, 2))
	assert.ErrorIs(t, err, cv.ErrTreatPairMismatch)

	_, err = s.CVScore(ctx, cv.Data{X: X, Y: Y}, cv.Grid())
	assert.ErrorIs(t, err, cv.ErrEmptyGrid)

	_, err = s.CVScore(ctx, cv.Data{X: X, Y: Y}, cv.Scalar(-1))
	assert.ErrorIs(t, err, cv.ErrInvalidLambda)

	_, err = s.CVScore(ctx, cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithSplitList(nil))
	assert.ErrorIs(t, err, cv.ErrNoSplits)

	_, err = s.CVScore(ctx, cv.Data{X: X, Y: Y, XTreat: XT, YTreat: YT}, cv.Scalar(1), cv.WithSplits(5))
	assert.ErrorIs(t, err, split.ErrTooManyFolds)

	_, err = s.CVScore(ctx, cv.Data{X: X, Y: Y}, cv.Scalar(1),
		cv.WithSplitList([]split.Split{{Train: []int{0}, Test: []int{0}}}))
	assert.ErrorIs(t, err, split.ErrOverlap)
}

func TestCVScoreSequentialEqualsParallel(t *testing.T) {
	X, Y := controls(t)
	XT, YT := treatedUnits(t)
	stub := stubBackend{}
	mgr := workerpool.NewManager(nil)
	s := &cv.Scorer{Backends: cv.Backends{Treated: stub, LeaveOneOut: stub}, Manager: mgr}
	ctx := context.Background()

	cases := []struct {
		name   string
		data   cv.Data
		lambda cv.Lambda
		opts   []cv.Option
	}{
		{"loo grid", cv.Data{X: X, Y: Y}, cv.Grid(0.1, 1, 10), []cv.Option{cv.WithSplits(5), cv.WithCache()}},
		{"loo scalar", cv.Data{X: X, Y: Y}, cv.Scalar(0.3), []cv.Option{cv.WithSplits(10)}},
		{"treated grid", cv.Data{X: X, Y: Y, XTreat: XT, YTreat: YT}, cv.Grid(2, 1), []cv.Option{cv.WithSplits(4)}},
		{"shuffled", cv.Data{X: X, Y: Y}, cv.Scalar(1), []cv.Option{cv.WithSplits(3), cv.WithShuffle(7)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq, err := s.CVScore(ctx, tc.data, tc.lambda, append(tc.opts, cv.WithQuiet())...)
			require.NoError(t, err)
			par, err := s.CVScore(ctx, tc.data, tc.lambda, append(tc.opts, cv.WithQuiet(), cv.WithParallel(), cv.WithMaxWorkers(3))...)
			require.NoError(t, err)

			assert.Equal(t, seq.Totals, par.Totals) // bit-identical
			assert.Equal(t, seq.Total, par.Total)
			assert.Equal(t, seq.Folds, par.Folds)
			assert.Nil(t, mgr.Current())
		})
	}
}

// TestCVScoreReferenceParallel repeats the equality on the fit backends.
func TestCVScoreReferenceParallel(t *testing.T) {
	X, Y := controls(t)
	mgr := workerpool.NewManager(nil)
	s := &cv.Scorer{Manager: mgr}
	d := cv.Data{X: X, Y: Y}

	seq, err := s.CVScore(context.Background(), d, cv.Grid(0.1, 1), cv.WithSplits(5), cv.WithCache())
	require.NoError(t, err)
	par, err := s.CVScore(context.Background(), d, cv.Grid(0.1, 1), cv.WithSplits(5), cv.WithCache(), cv.WithParallel(), cv.WithMaxWorkers(2))
	require.NoError(t, err)
	assert.Equal(t, seq.Totals, par.Totals)
}

// TestCVScoreReleasesPool checks that every parallel run, failed or not,
// leaves no pool behind and the next run builds a new one.
func TestCVScoreReleasesPool(t *testing.T) {
	X, Y := controls(t)
	mgr := workerpool.NewManager(nil)
	boom := errors.New("optimizer diverged")

	var mu sync.Mutex
	seen := map[uuid.UUID]struct{}{}
	record := func() {
		if p := mgr.Current(); p != nil {
			mu.Lock()
			seen[p.ID()] = struct{}{}
			mu.Unlock()
		}
	}
	failing := stubBackend{
		onFit: record,
		failOn: func(X matrix.Matrix, _ fit.Options) error {
			first, _ := X.At(0, 0)
			if first != 0 { // only fold 0 trains without unit 0
				return boom
			}
			return nil
		},
	}
	healthy := stubBackend{onFit: record}
	opts := []cv.Option{cv.WithSplits(5), cv.WithQuiet(), cv.WithParallel(), cv.WithMaxWorkers(2)}

	s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: failing}, Manager: mgr}
	_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), opts...)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fold ")
	assert.Nil(t, mgr.Current())

	s.Backends.LeaveOneOut = healthy
	_, err = s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), opts...)
	require.NoError(t, err)
	assert.Nil(t, mgr.Current())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 2) // one pool per run
}

// TestCVScoreDefaultManagerReleased runs the package-level entry point,
// which draws from workerpool.Default, and checks nothing is left for the
// host to shut down.
func TestCVScoreDefaultManagerReleased(t *testing.T) {
	X, Y := controls(t)

	res, err := cv.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(0.1),
		cv.WithSplits(3), cv.WithQuiet(), cv.WithParallel(), cv.WithMaxWorkers(2), cv.WithL2PenW(1))
	require.NoError(t, err)
	assert.Len(t, res.Folds, 3)
	assert.Nil(t, workerpool.Default.Current())

	workerpool.Default.Release() // explicit host shutdown is a no-op afterwards
	assert.Nil(t, workerpool.Default.Current())
}

func TestCVScoreSequentialFailureWrapsFold(t *testing.T) {
	X, Y := controls(t)
	boom := errors.New("nope")
	calls := 0
	backend := stubBackend{
		onFit: func() { calls++ },
		failOn: func(X matrix.Matrix, _ fit.Options) error {
			if calls == 2 {
				return boom
			}
			return nil
		},
	}
	s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: backend}}

	_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithSplits(5), cv.WithQuiet())
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "fold 1: nope")
	assert.Equal(t, 2, calls) // aborted at the failing fold
}

func TestCVScoreDefaultWorkerWarnings(t *testing.T) {
	X, Y := controls(t)
	stub := stubBackend{}

	t.Run("one worker on many folds", func(t *testing.T) {
		restore := cv.SetNumCPU(3)
		defer restore()
		log, buf := bufLogger(t)
		s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: stub}, Logger: log, Manager: workerpool.NewManager(nil)}

		_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithSplits(5), cv.WithParallel())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), fmt.Sprintf(cv.MsgOneWorker, 3))
		assert.Contains(t, buf.String(), "level=WARN")
		assert.NotContains(t, buf.String(), cv.MsgSingleSplit)
	})

	t.Run("single split", func(t *testing.T) {
		restore := cv.SetNumCPU(16)
		defer restore()
		log, buf := bufLogger(t)
		s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: stub}, Logger: log, Manager: workerpool.NewManager(nil)}

		one := []split.Split{{Train: []int{0, 1, 2, 3, 4}, Test: []int{5, 6, 7, 8, 9}}}
		_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithSplitList(one), cv.WithParallel())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), cv.MsgSingleSplit)
		assert.NotContains(t, buf.String(), "Default for max_workers")
	})

	t.Run("explicit workers stay silent", func(t *testing.T) {
		restore := cv.SetNumCPU(1)
		defer restore()
		log, buf := bufLogger(t)
		s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: stub}, Logger: log, Manager: workerpool.NewManager(nil)}

		_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithSplits(2), cv.WithParallel(), cv.WithMaxWorkers(1))
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "level=WARN")
	})
}

func TestCVScoreQuiet(t *testing.T) {
	X, Y := controls(t)
	log, buf := bufLogger(t)
	s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: stubBackend{}}, Logger: log}

	_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithQuiet())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Leave-one-out")
}

func TestCVScoreCancelled(t *testing.T) {
	X, Y := controls(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: stubBackend{}}}

	_, err := s.CVScore(ctx, cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithQuiet())
	require.ErrorIs(t, err, context.Canceled)
}

func TestCVScoreMetrics(t *testing.T) {
	X, Y := controls(t)
	reg := prometheus.NewRegistry()
	s := &cv.Scorer{
		Backends: cv.Backends{LeaveOneOut: stubBackend{}},
		Metrics:  cv.NewMetrics(reg),
		Manager:  workerpool.NewManager(nil),
	}

	_, err := s.CVScore(context.Background(), cv.Data{X: X, Y: Y}, cv.Scalar(1), cv.WithSplits(5), cv.WithQuiet(), cv.WithParallel(), cv.WithMaxWorkers(2))
	require.NoError(t, err)

	assert.Equal(t, 5.0, counterValue(t, reg, "sparsesc_cv_folds_total", "loo", "ok"))
	assert.Equal(t, 1.0, counterValue(t, reg, "sparsesc_cv_runs_total", "loo", "ok"))
	assert.Equal(t, 0.0, gaugeValue(t, reg, "sparsesc_cv_pool_workers"))
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { cv.WithSplits(1) })
	assert.Panics(t, func() { cv.WithMaxWorkers(0) })
	assert.Panics(t, func() { cv.WithProgress(-1) })
	assert.Panics(t, func() { cv.WithSubSplits(-1) })
	assert.Panics(t, func() { cv.WithL2PenW(-0.5) })
	assert.Panics(t, func() { cv.WithL2PenW(0) })
	assert.Panics(t, func() { cv.WithL2PenW(math.NaN()) })
	assert.Panics(t, func() { cv.WithL2PenW(math.Inf(1)) })
	assert.NotPanics(t, func() { cv.WithSubSplits(3) })
	assert.NotPanics(t, func() { cv.WithL2PenW(0.5) })
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels ...string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m.GetLabel(), labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name && len(mf.GetMetric()) == 1 {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("gauge %s not found", name)
	return 0
}

func matchLabels(pairs []*dto.LabelPair, want []string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for i, p := range pairs {
		if p.GetValue() != want[i] {
			return false
		}
	}
	return true
}
