// File: core/spin/rwlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reader-writer spinlock. Reader count and writer bit share one 64-bit
// cell so both invariants are maintained by a single CAS: readers only
// enter while the writer bit is clear, the writer only enters at zero.
// Writers can starve under a continuous reader stream; that is a known
// property of this lock, not a bug to work around here.

package spin

import (
	"github.com/momentics/corun/core/atomics"
)

const (
	rwWriterBit  uint64 = 1
	rwReaderUnit uint64 = 2
)

// RWSpinlock is a busy-wait reader-writer lock.
// The zero value is an unlocked lock.
type RWSpinlock struct {
	state atomics.Uint64
}

// TryRLock attempts one reader acquisition without spinning.
func (l *RWSpinlock) TryRLock() bool {
	s := l.state.Load(atomics.Relaxed)
	if s&rwWriterBit != 0 {
		return false
	}
	ok, _ := l.state.CompareExchange(s, s+rwReaderUnit, atomics.Acquire, atomics.Relaxed)
	return ok
}

// RLock spins until a read lock is held.
func (l *RWSpinlock) RLock() {
	var spins uint32
	for !l.TryRLock() {
		backoff(&spins)
	}
}

// RUnlock releases one read lock.
func (l *RWSpinlock) RUnlock() {
	l.state.FetchSub(rwReaderUnit, atomics.Release)
}

// TryLock attempts the write lock without spinning; it succeeds only
// when there are no readers and no writer.
func (l *RWSpinlock) TryLock() bool {
	ok, _ := l.state.CompareExchange(0, rwWriterBit, atomics.Acquire, atomics.Relaxed)
	return ok
}

// Lock spins until the write lock is held.
func (l *RWSpinlock) Lock() {
	var spins uint32
	for !l.TryLock() {
		backoff(&spins)
	}
}

// Unlock releases the write lock.
func (l *RWSpinlock) Unlock() {
	l.state.Store(0, atomics.Release)
}

// Readers reports the current reader count, for diagnostics only.
func (l *RWSpinlock) Readers() int {
	return int(l.state.Load(atomics.Relaxed) / rwReaderUnit)
}
