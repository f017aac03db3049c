// SPDX-License-Identifier: MIT

package cv

import (
	"fmt"

	"github.com/xieliaing/SparseSC/matrix"
)

// Data holds the design matrices of one cross-validation problem.
//
// X and Y are the control units' predictors and outcomes (one row per
// unit). XTreat and YTreat, when both set, are the treated units' and
// switch the run to treated-holdout validation.
type Data struct {
	X, Y           matrix.Matrix
	XTreat, YTreat matrix.Matrix
}

// Treated reports whether Data selects treated-holdout validation.
func (d Data) Treated() bool { return present(d.XTreat) }

// Units is the size of the axis folds are drawn over.
func (d Data) Units() int {
	if d.Treated() {
		return d.XTreat.Rows()
	}

	return d.X.Rows()
}

// Validate checks the parameter contract shared by all entry points.
func (d Data) Validate() error {
	if !present(d.X) || !present(d.Y) {
		return fmt.Errorf("%w: %w", ErrNilData, matrix.ErrNilMatrix)
	}
	if d.X.Cols() == 0 {
		return fmt.Errorf("X: %w", ErrNoColumns)
	}
	if d.Y.Cols() == 0 {
		return fmt.Errorf("Y: %w", ErrNoColumns)
	}
	if d.X.Rows() != d.Y.Rows() {
		return fmt.Errorf("X and Y have different number of rows (%d and %d): %w", d.X.Rows(), d.Y.Rows(), ErrRowMismatch)
	}

	return d.validateTreat()
}

func (d Data) validateTreat() error {
	if present(d.XTreat) != present(d.YTreat) {
		return ErrTreatPairMismatch
	}
	if !present(d.XTreat) {
		return nil
	}
	if d.XTreat.Cols() == 0 {
		return fmt.Errorf("XTreat: %w", ErrNoColumns)
	}
	if d.YTreat.Cols() == 0 {
		return fmt.Errorf("YTreat: %w", ErrNoColumns)
	}
	if d.XTreat.Rows() != d.YTreat.Rows() {
		return fmt.Errorf("XTreat and YTreat have different number of rows (%d and %d): %w",
			d.XTreat.Rows(), d.YTreat.Rows(), ErrRowMismatch)
	}
	if d.XTreat.Cols() != d.X.Cols() {
		return fmt.Errorf("XTreat has %d columns, X has %d: %w", d.XTreat.Cols(), d.X.Cols(), ErrColumnMismatch)
	}
	if d.YTreat.Cols() != d.Y.Cols() {
		return fmt.Errorf("YTreat has %d columns, Y has %d: %w", d.YTreat.Cols(), d.Y.Cols(), ErrColumnMismatch)
	}

	return nil
}

func present(m matrix.Matrix) bool {
	return matrix.ValidateNotNil(m) == nil
}
