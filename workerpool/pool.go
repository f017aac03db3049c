// SPDX-License-Identifier: MIT

package workerpool

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/xieliaing/SparseSC/logging"
)

// Pool is a fixed-size set of worker goroutines draining a FIFO task queue.
type Pool struct {
	id     uuid.UUID
	size   int
	logger *slog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	wg sync.WaitGroup
}

// New starts a pool with size workers.
func New(size int, logger *slog.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("New(%d): %w", size, ErrInvalidSize)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Pool{id: uuid.New(), size: size}
	p.logger = logger.With(slog.String("component", "workerpool"), slog.String("pool_id", p.id.String()))
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.logger.Debug("worker pool started", slog.Int("workers", size))

	return p, nil
}

// ID identifies this pool instance; a fresh pool always has a fresh ID.
func (p *Pool) ID() uuid.UUID { return p.id }

// Size is the number of workers.
func (p *Pool) Size() int { return p.size }

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closed
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return // closed and drained
		}
		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task()
	}
}

// enqueue appends task unless the pool is closed.
func (p *Pool) enqueue(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()

	return nil
}

// Close rejects new submissions, waits until every queued and running task
// has finished and stops the workers. Calling Close twice is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	already := p.closed
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	if !already {
		p.logger.Debug("worker pool stopped")
	}
}
