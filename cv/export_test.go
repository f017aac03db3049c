// SPDX-License-Identifier: MIT

package cv

// SetNumCPU replaces the CPU count used for the default worker count and
// returns a function restoring the previous one.
func SetNumCPU(n int) (restore func()) {
	prev := numCPU
	numCPU = func() int { return n }

	return func() { numCPU = prev }
}

// Exported messages for assertions.
const (
	MsgSingleSplit = msgSingleSplit
	MsgOneWorker   = msgOneWorker
)
