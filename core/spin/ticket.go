// File: core/spin/ticket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fair FIFO spinlock. Each waiter draws a ticket and is served in
// strict ticket order.

package spin

import (
	"golang.org/x/sys/cpu"

	"github.com/momentics/corun/core/atomics"
)

// TicketLock is a fair busy-wait lock. Waiters acquire in the exact
// order they called Lock. The zero value is an unlocked lock.
type TicketLock struct {
	nextTicket atomics.Uint64
	_          cpu.CacheLinePad
	nowServing atomics.Uint64
	_          cpu.CacheLinePad
}

// Lock draws a ticket and spins until it is served.
func (l *TicketLock) Lock() {
	ticket := l.nextTicket.FetchAdd(1, atomics.Relaxed)
	var spins uint32
	for l.nowServing.Load(atomics.Acquire) != ticket {
		backoff(&spins)
	}
}

// TryLock acquires only if no one holds or awaits the lock.
func (l *TicketLock) TryLock() bool {
	serving := l.nowServing.Load(atomics.Acquire)
	ok, _ := l.nextTicket.CompareExchange(serving, serving+1, atomics.Acquire, atomics.Relaxed)
	return ok
}

// Unlock serves the next ticket.
func (l *TicketLock) Unlock() {
	serving := l.nowServing.Load(atomics.Relaxed)
	l.nowServing.Store(serving+1, atomics.Release)
}
