// File: core/spin/spinlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Basic test-and-set spinlock. No fairness guarantee among waiters;
// use TicketLock where FIFO ordering matters.

package spin

import (
	"github.com/momentics/corun/core/atomics"
)

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// Spinlock is a busy-wait mutual exclusion lock.
// The zero value is an unlocked lock.
type Spinlock struct {
	state atomics.Uint32
}

// TryLock attempts a single acquisition; it never spins.
func (l *Spinlock) TryLock() bool {
	ok, _ := l.state.CompareExchange(unlocked, locked, atomics.Acquire, atomics.Relaxed)
	return ok
}

// Lock spins until the lock is acquired.
func (l *Spinlock) Lock() {
	var spins uint32
	for !l.TryLock() {
		// Read-only wait before retrying the CAS keeps the cache line shared.
		for l.state.Load(atomics.Relaxed) == locked {
			backoff(&spins)
		}
	}
}

// Unlock releases the lock. Calling Unlock on an unlocked lock is a
// programming error and is not defended against.
func (l *Spinlock) Unlock() {
	l.state.Store(unlocked, atomics.Release)
}
