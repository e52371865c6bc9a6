// File: channel/waiter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Waiter records and the single-claim protocol shared by plain channel
// operations and select.

package channel

import (
	"github.com/momentics/corun/coro"
	"github.com/momentics/corun/core/atomics"
)

const (
	statusWaiting uint32 = iota
	statusDelivered
	statusClosed
	statusTimedOut
)

// selectWinner values: 0 means unclaimed, idx+1 means case idx won,
// selectTimedOut means the timeout claimed the whole select.
const selectTimedOut = ^uint32(0)

// selectShared is the per-invocation claim cell a select's waiters
// share. Whichever channel (or the timeout timer) wins the CAS owns
// the select; every other registration is dead from that point on.
type selectShared struct {
	winner atomics.Uint32
}

// waiter is one parked operation: the coroutine plus either the pending
// value (send) or the destination slot (recv).
type waiter[T any] struct {
	task   *coro.Task
	status atomics.Uint32
	val    T

	// Select registration; nil for a plain send/recv.
	sel    *selectShared
	selIdx int

	timer *coro.Timer
}

// tryClaim attempts to take the exclusive right to complete this
// waiter, moving it to st. For select waiters the claim races on the
// shared winner cell first, so at most one case of a select ever
// completes.
func (w *waiter[T]) tryClaim(st uint32) bool {
	if w.sel != nil {
		if ok, _ := w.sel.winner.CompareExchange(0, uint32(w.selIdx)+1, atomics.AcqRel, atomics.Acquire); !ok {
			return false
		}
		w.status.Store(st, atomics.Release)
		return true
	}
	ok, _ := w.status.CompareExchange(statusWaiting, st, atomics.AcqRel, atomics.Acquire)
	return ok
}

// outcome reads the waiter's final status after its coroutine woke.
func (w *waiter[T]) outcome() uint32 {
	return w.status.Load(atomics.Acquire)
}
