// SPDX-License-Identifier: MIT
package cv_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/logging"
	"github.com/xieliaing/SparseSC/matrix"
)

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

// controls returns a deterministic 10×3 predictor block and 10×2 outcomes.
func controls(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	xs := make([][]float64, 10)
	ys := make([][]float64, 10)
	for i := range xs {
		a, b, c := float64(i), float64((i*3)%7), float64((i*5)%4)
		xs[i] = []float64{a, b, c}
		ys[i] = []float64{2*a + b, a - c + 0.5*b}
	}
	return dense(t, xs), dense(t, ys)
}

// treatedUnits returns a 4×3 predictor block and 4×2 outcomes.
func treatedUnits(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	X := dense(t, [][]float64{{1, 2, 0}, {4, 1, 3}, {7, 5, 2}, {2, 6, 1}})
	Y := dense(t, [][]float64{{4, 0.5}, {9, 1.5}, {19, 7.5}, {10, 4}})
	return X, Y
}

// bufLogger returns a debug-level text logger writing into a locked buffer.
func bufLogger(t *testing.T) (*slog.Logger, *lockedBuffer) {
	t.Helper()
	buf := &lockedBuffer{}
	l, err := logging.New(logging.Options{Level: "debug", Output: buf})
	require.NoError(t, err)
	return l, buf
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

// stubBackend is a deterministic backend: V = diag(1+λ, …) and the score is
// a fixed function of the data rows, the target indices and V.
type stubBackend struct {
	failOn func(X matrix.Matrix, opts fit.Options) error
	onFit  func()
}

func (s stubBackend) Fit(_ context.Context, X, _ matrix.Matrix, _ []int, opts fit.Options) (fit.Result, error) {
	if s.onFit != nil {
		s.onFit()
	}
	if s.failOn != nil {
		if err := s.failOn(X, opts); err != nil {
			return fit.Result{}, err
		}
	}
	v := make([]float64, X.Cols())
	for j := range v {
		v[j] = 1 + opts.Lambda + float64(j)/10 + float64(X.Rows())/100
	}
	V, err := matrix.Diag(v)
	if err != nil {
		return fit.Result{}, err
	}
	return fit.Result{V: V, L2PenW: 1 + float64(X.Rows())}, nil
}

func (stubBackend) Score(X, _ matrix.Matrix, treated []int, V matrix.Matrix, l2PenW float64) (float64, error) {
	v, err := matrix.DiagOf(V)
	if err != nil {
		return 0, err
	}
	s := l2PenW / 7
	for _, u := range treated {
		row, err := X.At(u, 0)
		if err != nil {
			return 0, fmt.Errorf("stub: %w", err)
		}
		s += (row + 0.1) * v[0] / 3
	}
	return s, nil
}
