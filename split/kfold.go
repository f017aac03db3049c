// SPDX-License-Identifier: MIT

package split

import (
	"fmt"
	"sort"
)

// Split is one cross-validation fold: indices used for fitting and indices
// held out for scoring. Both are sorted ascending.
type Split struct {
	Train []int
	Test  []int
}

// KFold partitions 0..n-1 into k folds.
//
// Fold sizes are n/k, with the first n%k folds one larger. Without
// WithShuffle the test blocks are contiguous and appear in index order.
//
// Errors: ErrTooFewFolds (k < 2), ErrTooManyFolds (k > n).
// Complexity: O(n·k).
func KFold(n, k int, opts ...Option) ([]Split, error) {
	if k < 2 {
		return nil, fmt.Errorf("KFold(n=%d, k=%d): %w", n, k, ErrTooFewFolds)
	}
	if k > n {
		return nil, fmt.Errorf("KFold(n=%d, k=%d): %w", n, k, ErrTooManyFolds)
	}
	o := gatherOptions(opts...)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if o.shuffle {
		shuffleIntsInPlace(order, rngFromSeed(o.seed))
	}

	splits := make([]Split, 0, k)
	inTest := make([]bool, n)
	start := 0
	for f := 0; f < k; f++ {
		size := n / k
		if f < n%k {
			size++
		}
		test := append([]int(nil), order[start:start+size]...)
		sort.Ints(test)
		for _, u := range test {
			inTest[u] = true
		}
		train := make([]int, 0, n-size)
		for u := 0; u < n; u++ {
			if !inTest[u] {
				train = append(train, u)
			}
		}
		for _, u := range test {
			inTest[u] = false
		}
		splits = append(splits, Split{Train: train, Test: test})
		start += size
	}

	return splits, nil
}

// Validate checks that every split indexes into [0, n), has a non-empty
// test set and no unit on both sides.
func Validate(splits []Split, n int) error {
	seen := make(map[int]struct{})
	for f, s := range splits {
		if len(s.Test) == 0 {
			return fmt.Errorf("fold %d: %w", f, ErrEmptyTest)
		}
		clear(seen)
		for _, u := range s.Test {
			if u < 0 || u >= n {
				return fmt.Errorf("fold %d: test index %d of %d: %w", f, u, n, ErrIndexRange)
			}
			seen[u] = struct{}{}
		}
		for _, u := range s.Train {
			if u < 0 || u >= n {
				return fmt.Errorf("fold %d: train index %d of %d: %w", f, u, n, ErrIndexRange)
			}
			if _, dup := seen[u]; dup {
				return fmt.Errorf("fold %d: unit %d: %w", f, u, ErrOverlap)
			}
		}
	}

	return nil
}
