// SPDX-License-Identifier: MIT

package optimizer

import "math"

// Defaults (single source of truth).
const (
	// DefaultTolerance is the relative improvement below which a sweep counts as converged.
	DefaultTolerance = 1e-6

	// DefaultMinStep stops the search once every coordinate step is smaller.
	DefaultMinStep = 1e-6

	// DefaultInitialStep is the first trial step for every coordinate.
	DefaultInitialStep = 1.0

	// DefaultMaxSweeps caps the number of full passes over the coordinates.
	DefaultMaxSweeps = 200

	expandFactor = 2.0
	shrinkFactor = 0.5
)

// Internal panic messages (no magic strings).
const (
	panicToleranceInvalid = "optimizer: WithTolerance: tol must be finite, non-negative"
	panicMinStepInvalid   = "optimizer: WithMinStep: step must be finite, positive"
	panicInitStepInvalid  = "optimizer: WithInitialStep: step must be finite, positive"
	panicMaxSweepsInvalid = "optimizer: WithMaxSweeps: sweeps must be positive"
)

// Option configures a Method. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the resolved configuration of a search.
type Options struct {
	Tolerance   float64
	MinStep     float64
	InitialStep float64
	MaxSweeps   int
}

// WithTolerance sets the relative convergence tolerance.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithMinStep sets the smallest step still worth trying.
func WithMinStep(step float64) Option {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		panic(panicMinStepInvalid)
	}

	return func(o *Options) { o.MinStep = step }
}

// WithInitialStep sets the first trial step of every coordinate.
func WithInitialStep(step float64) Option {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		panic(panicInitStepInvalid)
	}

	return func(o *Options) { o.InitialStep = step }
}

// WithMaxSweeps caps the number of coordinate sweeps.
func WithMaxSweeps(n int) Option {
	if n <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *Options) { o.MaxSweeps = n }
}

// GatherOptions resolves user options over the defaults.
func GatherOptions(user ...Option) Options {
	o := Options{
		Tolerance:   DefaultTolerance,
		MinStep:     DefaultMinStep,
		InitialStep: DefaultInitialStep,
		MaxSweeps:   DefaultMaxSweeps,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
