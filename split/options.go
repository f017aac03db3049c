// SPDX-License-Identifier: MIT

package split

// DefaultShuffle keeps folds contiguous unless WithShuffle is given.
const DefaultShuffle = false

// Option configures KFold.
type Option func(*options)

type options struct {
	shuffle bool
	seed    int64
}

// WithShuffle permutes units before partitioning. seed==0 selects a fixed
// default seed, so shuffled folds are reproducible either way.
func WithShuffle(seed int64) Option {
	return func(o *options) {
		o.shuffle = true
		o.seed = seed
	}
}

func gatherOptions(user ...Option) options {
	o := options{shuffle: DefaultShuffle}
	for _, set := range user {
		set(&o) // last-writer-wins
	}

	return o
}
