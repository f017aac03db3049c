// SPDX-License-Identifier: MIT

package cv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lambda is either a single L1 penalty or an ordered grid of them.
// The zero value is Scalar(0).
type Lambda struct {
	values []float64
	grid   bool
}

// Scalar selects a single penalty; CVScore then returns one total.
func Scalar(v float64) Lambda { return Lambda{values: []float64{v}} }

// Grid selects an ordered list of penalties; CVScore then returns one
// total per value. Order matters when warm-starting.
func Grid(vs ...float64) Lambda {
	return Lambda{values: append([]float64(nil), vs...), grid: true}
}

// IsGrid reports whether l was built with Grid.
func (l Lambda) IsGrid() bool { return l.grid }

// Values returns a copy of the penalties in order.
func (l Lambda) Values() []float64 {
	if !l.grid && len(l.values) == 0 {
		return []float64{0}
	}

	return append([]float64(nil), l.values...)
}

// Value returns the single penalty of a scalar Lambda (the first grid value otherwise).
func (l Lambda) Value() float64 {
	if len(l.values) == 0 {
		return 0
	}

	return l.values[0]
}

// Len is the number of penalties.
func (l Lambda) Len() int { return len(l.Values()) }

func (l Lambda) validate() error {
	if l.grid && len(l.values) == 0 {
		return ErrEmptyGrid
	}
	for i, v := range l.values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("lambda[%d]=%g: %w", i, v, ErrInvalidLambda)
		}
	}

	return nil
}

// String renders a scalar as "0.1" and a grid as "[0.1 1 10]".
func (l Lambda) String() string {
	if !l.grid {
		return strconv.FormatFloat(l.Value(), 'g', -1, 64)
	}
	parts := make([]string, len(l.values))
	for i, v := range l.values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
