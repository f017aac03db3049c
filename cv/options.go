// SPDX-License-Identifier: MIT

package cv

import (
	"math"

	"github.com/xieliaing/SparseSC/fit"
	"github.com/xieliaing/SparseSC/optimizer"
	"github.com/xieliaing/SparseSC/split"
)

// Defaults applied by CVScore when the matching option is absent.
const (
	// DefaultSplits is the K of the generated K-fold partition.
	DefaultSplits = 5

	// DefaultParallel runs folds in the calling goroutine.
	DefaultParallel = false

	// DefaultCache disables warm-starting inside a lambda sweep.
	DefaultCache = false
)

// Panic messages for nonsensical option values.
const (
	panicSplitsTooFew      = "cv: WithSplits(k) requires k >= 2"
	panicWorkersTooFew     = "cv: WithMaxWorkers(n) requires n >= 1"
	panicProgressNeg       = "cv: WithProgress(n) requires n >= 0"
	panicSubSplitsNeg      = "cv: WithSubSplits(n) requires n >= 0"
	panicL2PenWNonPositive = "cv: WithL2PenW(w) requires a finite w > 0"
)

// Option configures CVScore.
type Option func(*options)

type options struct {
	nSplits    int
	splits     []split.Split
	haveSplits bool
	shuffle    bool
	seed       int64
	subSplits  int
	quiet      bool
	parallel   bool
	maxWorkers int // 0 means derive from the CPU count
	cache      bool
	progress   int
	start      []float64
	fit        fit.Options
}

// WithSplits generates k contiguous folds over the validated unit axis.
func WithSplits(k int) Option {
	if k < 2 {
		panic(panicSplitsTooFew)
	}

	return func(o *options) {
		o.nSplits = k
		o.splits, o.haveSplits = nil, false
	}
}

// WithSplitList uses the given folds verbatim, in order. Indices refer to
// the treated units when Data.XTreat is set and to the control units otherwise.
func WithSplitList(splits []split.Split) Option {
	return func(o *options) {
		o.splits = splits
		o.haveSplits = true
	}
}

// WithShuffle shuffles units before generating folds (see split.WithShuffle).
// It has no effect together with WithSplitList.
func WithShuffle(seed int64) Option {
	return func(o *options) {
		o.shuffle = true
		o.seed = seed
	}
}

// WithSubSplits is accepted for call-site compatibility; nested splitting is
// not performed and the value is ignored.
func WithSubSplits(n int) Option {
	if n < 0 {
		panic(panicSubSplitsNeg)
	}

	return func(o *options) { o.subSplits = n }
}

// WithQuiet suppresses the one-line run summary.
func WithQuiet() Option { return func(o *options) { o.quiet = true } }

// WithParallel evaluates folds on a worker pool.
func WithParallel() Option { return func(o *options) { o.parallel = true } }

// WithMaxWorkers fixes the pool size of a parallel run. Without it the size
// is max(NumCPU-2, 1) capped at the number of folds.
func WithMaxWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersTooFew)
	}

	return func(o *options) { o.maxWorkers = n }
}

// WithCache warm-starts every grid point after the first from the previous
// fitted V diagonal (within one fold).
func WithCache() Option { return func(o *options) { o.cache = true } }

// WithProgress logs a progress line on every n-th grid point; 0 disables.
func WithProgress(n int) Option {
	if n < 0 {
		panic(panicProgressNeg)
	}

	return func(o *options) { o.progress = n }
}

// WithStart sets the initial V diagonal of every fold's first fit.
func WithStart(start []float64) Option {
	return func(o *options) { o.start = append([]float64(nil), start...) }
}

// WithL2PenW fixes the ridge penalty instead of deriving it per fit.
func WithL2PenW(w float64) Option {
	if !(w > 0) || math.IsInf(w, 1) {
		panic(panicL2PenWNonPositive)
	}

	return func(o *options) { o.fit.L2PenW = fit.Float(w) }
}

// WithMethod selects the optimizer handed to the fitting backend.
func WithMethod(m optimizer.Method, opts ...optimizer.Option) Option {
	return func(o *options) {
		o.fit.Method = m
		o.fit.MethodOptions = opts
	}
}

func gatherOptions(opts ...Option) options {
	o := options{
		nSplits:  DefaultSplits,
		parallel: DefaultParallel,
		cache:    DefaultCache,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// SweepOptions controls one ScoreTrainTestSortedLambdas call.
type SweepOptions struct {
	// Start is passed to the first fit; with Cache it is then replaced by
	// the previous fitted V diagonal.
	Start []float64

	Cache bool

	// Progress logs every Progress-th grid point when > 0.
	Progress int

	// Fold is included in progress lines when non-nil.
	Fold *int
}
