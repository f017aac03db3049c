// SPDX-License-Identifier: MIT

// Package workerpool runs CPU-bound tasks on a fixed set of goroutines and
// manages a process-wide pool handle.
//
// A Pool executes submitted tasks in FIFO order on Size() workers. Submit
// returns a Future tagged with a caller-chosen integer (the fold number in
// package cv) so results collected with AsCompleted, which yields futures in
// completion order, can still be associated with their origin.
//
// A Manager owns at most one Pool at a time:
//
//   - Acquire(n) creates a pool of n workers when none exists and is a no-op
//     otherwise; the first caller's size wins for the life of the pool.
//   - Release() lets in-flight and queued tasks finish, rejects further
//     submissions with ErrPoolClosed and clears the handle. Without a pool it
//     does nothing.
//
// Default is the process-wide Manager. ReleaseOnSignal ties its teardown to
// SIGINT/SIGTERM so no worker outlives an interrupted process.
//
// Manager methods are mutex-guarded, but interleaving Acquire/Release from
// several independent callers still shares one pool; callers that need
// isolated pools should use their own Manager.
package workerpool
