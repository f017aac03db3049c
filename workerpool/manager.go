// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/xieliaing/SparseSC/logging"
)

// Manager owns at most one Pool.
type Manager struct {
	mu     sync.Mutex
	pool   *Pool
	logger *slog.Logger
}

// Default is the process-wide manager.
//
// Every batch that acquires a pool from it releases the pool when the batch
// returns, so a host normally has nothing to clean up. Interrupts are not
// trapped here: the sparsesc-cv command installs ReleaseOnSignal, and other
// hosts either do the same or call Default.Release during their own shutdown.
var Default = NewManager(nil)

// NewManager returns an empty manager; a nil logger discards output.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}

	return &Manager{logger: logger}
}

// Acquire returns the current pool, creating one with size workers if none
// exists. An existing pool is returned unchanged whatever size is requested.
func (m *Manager) Acquire(size int) (*Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		return m.pool, nil
	}
	p, err := New(size, m.logger)
	if err != nil {
		return nil, err
	}
	m.pool = p
	m.logger.Info("worker pool acquired",
		slog.String("pool_id", p.ID().String()),
		slog.Int("workers", size))

	return p, nil
}

// Release drains and stops the current pool and clears the handle.
// It is a no-op when no pool exists.
func (m *Manager) Release() {
	m.mu.Lock()
	p := m.pool
	m.pool = nil
	m.mu.Unlock()
	if p == nil {
		return
	}
	p.Close()
	m.logger.Info("worker pool released", slog.String("pool_id", p.ID().String()))
}

// Current returns the live pool or nil.
func (m *Manager) Current() *Pool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pool
}

// ReleaseOnSignal returns a context cancelled on SIGINT or SIGTERM (or when
// parent is done, or stop is called). Whenever that context ends, m is
// released, so no pool survives an interrupted process.
func ReleaseOnSignal(parent context.Context, m *Manager) (ctx context.Context, stop context.CancelFunc) {
	ctx, stop = signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		m.Release()
	}()

	return ctx, stop
}
