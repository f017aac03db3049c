// SPDX-License-Identifier: MIT

package cv

import (
	"context"

	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/matrix"
)

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks -source=backend.go Backend

// Backend fits and scores V-matrices for one validation protocol.
//
// Fit receives the rows to fit on and the indices (into those rows) of the
// units whose outcomes are predicted; Score evaluates a fixed V and L2
// penalty the same way.
type Backend interface {
	Fit(ctx context.Context, X, Y matrix.Matrix, treated []int, opts fit.Options) (fit.Result, error)
	Score(X, Y matrix.Matrix, treated []int, V matrix.Matrix, l2PenW float64) (float64, error)
}

// Backends pairs the backend of each protocol.
type Backends struct {
	Treated     Backend
	LeaveOneOut Backend
}

// DefaultBackends returns the reference backends from package fit.
func DefaultBackends() Backends {
	return Backends{Treated: fit.Treated{}, LeaveOneOut: fit.LeaveOneOut{}}
}

func (b Backends) treated() Backend {
	if b.Treated == nil {
		return fit.Treated{}
	}

	return b.Treated
}

func (b Backends) leaveOneOut() Backend {
	if b.LeaveOneOut == nil {
		return fit.LeaveOneOut{}
	}

	return b.LeaveOneOut
}
