// SPDX-License-Identifier: MIT

package workerpool

import "errors"

var (
	// ErrPoolClosed is returned by Submit after the pool has been released.
	ErrPoolClosed = errors.New("workerpool: pool closed")

	// ErrInvalidSize is returned when a pool of fewer than one worker is requested.
	ErrInvalidSize = errors.New("workerpool: size must be >= 1")

	// ErrTaskPanic wraps a panic recovered from a task.
	ErrTaskPanic = errors.New("workerpool: task panicked")
)
