// SPDX-License-Identifier: MIT
package cv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xieliaing/SparseSC/cv"
	"github.com/xieliaing/SparseSC/cv/mocks"
	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/matrix"
	"github.com/xieliaing/SparseSC/split"
)

func diagOf(t *testing.T, v ...float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.Diag(v)
	require.NoError(t, err)
	return d
}

// TestScoreTrainTestTreatedStacking checks that fit and score both see the
// control block stacked above the relevant treated rows, with treated
// indices counted from the end of the control block.
func TestScoreTrainTestTreatedStacking(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	X, Y := controls(t)
	XT, YT := treatedUnits(t)
	d := cv.Data{X: X, Y: Y, XTreat: XT, YTreat: YT}
	sp := split.Split{Train: []int{0, 2, 3}, Test: []int{1}}
	V := diagOf(t, 1, 2, 3)

	backend.EXPECT().
		Fit(gomock.Any(), gomock.Any(), gomock.Any(), []int{10, 11, 12}, gomock.Any()).
		DoAndReturn(func(_ context.Context, Xs, Ys matrix.Matrix, _ []int, opts fit.Options) (fit.Result, error) {
			require.Equal(t, 13, Xs.Rows())
			require.Equal(t, 13, Ys.Rows())
			// row 11 of the stack is treated row 2
			v, err := Xs.At(11, 0)
			require.NoError(t, err)
			assert.Equal(t, 7.0, v)
			assert.Equal(t, 0.3, opts.Lambda)
			return fit.Result{V: V, L2PenW: 2.5}, nil
		})
	backend.EXPECT().
		Score(gomock.Any(), gomock.Any(), []int{10}, V, 2.5).
		DoAndReturn(func(Xs, _ matrix.Matrix, _ []int, _ matrix.Matrix, _ float64) (float64, error) {
			require.Equal(t, 11, Xs.Rows())
			v, err := Xs.At(10, 0)
			require.NoError(t, err)
			assert.Equal(t, 4.0, v) // treated row 1
			return 0.75, nil
		})

	s := &cv.Scorer{Backends: cv.Backends{Treated: backend}}
	fs, err := s.ScoreTrainTest(context.Background(), d, sp, fit.Options{Lambda: 0.3})
	require.NoError(t, err)
	assert.Same(t, V, fs.V)
	assert.Equal(t, 2.5, fs.L2PenW)
	assert.Equal(t, 0.75, fs.Score)
}

// TestScoreTrainTestLeaveOneOut checks that the fit sees the training rows
// only and scoring reuses the full control block with the test indices.
func TestScoreTrainTestLeaveOneOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	X, Y := controls(t)
	d := cv.Data{X: X, Y: Y}
	sp := split.Split{Train: []int{2, 3, 4, 5, 6, 7, 8, 9}, Test: []int{0, 1}}
	V := diagOf(t, 1, 1, 1)

	backend.EXPECT().
		Fit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, Xs, _ matrix.Matrix, _ []int, _ fit.Options) (fit.Result, error) {
			require.Equal(t, 8, Xs.Rows())
			v, err := Xs.At(0, 0)
			require.NoError(t, err)
			assert.Equal(t, 2.0, v) // first training unit
			return fit.Result{V: V, L2PenW: 1}, nil
		})
	backend.EXPECT().Score(X, Y, []int{0, 1}, V, 1.0).Return(3.0, nil)

	s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: backend}}
	fs, err := s.ScoreTrainTest(context.Background(), d, sp, fit.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, fs.Score)
}

// TestScoreTrainTestFailsBeforeFitting: no backend call may happen on a
// contract violation; the mock has no expectations.
func TestScoreTrainTestFailsBeforeFitting(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	s := &cv.Scorer{Backends: cv.Backends{Treated: backend, LeaveOneOut: backend}}

	X, Y := controls(t)
	XT, _ := treatedUnits(t)
	sp := split.Split{Train: []int{0, 1}, Test: []int{2}}

	_, err := s.ScoreTrainTest(context.Background(), cv.Data{X: X, Y: Y, XTreat: XT}, sp, fit.Options{})
	require.ErrorIs(t, err, cv.ErrTreatPairMismatch)

	_, err = s.ScoreTrainTest(context.Background(), cv.Data{X: X, Y: Y}, split.Split{Train: []int{0}, Test: []int{10}}, fit.Options{})
	require.ErrorIs(t, err, split.ErrIndexRange)

	_, err = s.ScoreTrainTest(context.Background(), cv.Data{X: X, Y: Y}, split.Split{Train: []int{0, 1}, Test: []int{1}}, fit.Options{})
	require.ErrorIs(t, err, split.ErrOverlap)
}

func TestScoreTrainTestBackendErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	boom := errors.New("singular")
	backend.EXPECT().Fit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(fit.Result{}, boom)

	X, Y := controls(t)
	s := &cv.Scorer{Backends: cv.Backends{LeaveOneOut: backend}}
	_, err := s.ScoreTrainTest(context.Background(), cv.Data{X: X, Y: Y}, split.Split{Train: []int{0, 1}, Test: []int{2}}, fit.Options{})
	require.Equal(t, boom, err)
}

// TestScoreTrainTestReferenceBackends runs the fit package backends end to end.
func TestScoreTrainTestReferenceBackends(t *testing.T) {
	X, Y := controls(t)
	XT, YT := treatedUnits(t)

	fs, err := cv.ScoreTrainTest(context.Background(), cv.Data{X: X, Y: Y},
		split.Split{Train: []int{0, 1, 2, 3, 4, 5, 6, 7}, Test: []int{8, 9}}, fit.Options{Lambda: 0.1})
	require.NoError(t, err)
	v, err := matrix.DiagOf(fs.V)
	require.NoError(t, err)
	assert.Len(t, v, X.Cols())
	assert.GreaterOrEqual(t, fs.Score, 0.0)
	assert.Greater(t, fs.L2PenW, 0.0)

	fs, err = cv.ScoreTrainTest(context.Background(), cv.Data{X: X, Y: Y, XTreat: XT, YTreat: YT},
		split.Split{Train: []int{0, 1}, Test: []int{2, 3}}, fit.Options{Lambda: 0.1, L2PenW: fit.Float(2)})
	require.NoError(t, err)
	v, err = matrix.DiagOf(fs.V)
	require.NoError(t, err)
	assert.Len(t, v, X.Cols())
	assert.Equal(t, 2.0, fs.L2PenW)
}
