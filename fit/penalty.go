// SPDX-License-Identifier: MIT

package fit

import (
	"math"

	"github.com/xieliaing/SparseSC/matrix"
)

// minDefaultL2 floors the derived ridge penalty for constant predictors.
const minDefaultL2 = 1.0

// DefaultL2PenW derives a ridge penalty from donor predictors: the mean
// column variance, or 1 when that is zero or not finite.
func DefaultL2PenW(donors matrix.Matrix) (float64, error) {
	vars, err := matrix.ColumnVariances(donors)
	if err != nil {
		return 0, err
	}
	var mean float64
	for _, v := range vars {
		mean += v
	}
	mean /= float64(len(vars))
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return minDefaultL2, nil
	}

	return mean, nil
}
