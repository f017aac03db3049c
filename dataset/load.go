// SPDX-License-Identifier: MIT

package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xieliaing/SparseSC/cv"
	"github.com/xieliaing/SparseSC/matrix"
)

// Paths names the CSV files of one problem. XTreat and YTreat are optional
// and are passed through as given, so a lone XTreat surfaces as
// cv.ErrTreatPairMismatch when the data is validated.
type Paths struct {
	X, Y           string
	XTreat, YTreat string
}

// Load reads every named file concurrently. The first failure cancels the
// remaining reads and is returned.
func Load(ctx context.Context, p Paths) (cv.Data, error) {
	if p.X == "" || p.Y == "" {
		return cv.Data{}, ErrMissingPath
	}

	var X, Y, XT, YT *matrix.Dense
	g, ctx := errgroup.WithContext(ctx)
	read := func(path string, dst **matrix.Dense) {
		if path == "" {
			return
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := ReadMatrixFile(path)
			if err != nil {
				return err
			}
			*dst = m

			return nil
		})
	}
	read(p.X, &X)
	read(p.Y, &Y)
	read(p.XTreat, &XT)
	read(p.YTreat, &YT)
	if err := g.Wait(); err != nil {
		return cv.Data{}, err
	}

	d := cv.Data{X: X, Y: Y}
	if XT != nil {
		d.XTreat = XT
	}
	if YT != nil {
		d.YTreat = YT
	}

	return d, nil
}
