// SPDX-License-Identifier: MIT

package workerpool

import "fmt"

// Future is the pending result of a submitted task.
type Future[T any] struct {
	tag  int
	done chan struct{}
	val  T
	err  error
}

// Tag returns the integer the task was submitted with.
func (f *Future[T]) Tag() int { return f.tag }

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Result blocks until the task has finished and returns its outcome.
func (f *Future[T]) Result() (T, error) {
	<-f.done

	return f.val, f.err
}

// Submit queues fn on p and returns its Future. A panic inside fn is
// recovered and reported as ErrTaskPanic.
func Submit[T any](p *Pool, tag int, fn func() (T, error)) (*Future[T], error) {
	f := &Future[T]{tag: tag, done: make(chan struct{})}
	err := p.enqueue(func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("task %d: %w: %v", tag, ErrTaskPanic, r)
			}
		}()
		f.val, f.err = fn()
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

// AsCompleted yields every future exactly once, in the order they finish.
// The channel is closed after the last one.
func AsCompleted[T any](futures []*Future[T]) <-chan *Future[T] {
	out := make(chan *Future[T], len(futures))
	remaining := make(chan struct{}, len(futures))
	for _, f := range futures {
		go func(f *Future[T]) {
			<-f.done
			out <- f
			remaining <- struct{}{}
		}(f)
	}
	go func() {
		for range futures {
			<-remaining
		}
		close(out)
	}()

	return out
}
