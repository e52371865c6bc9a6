// File: core/queue/mpmc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded multi-producer/multi-consumer queue using per-slot sequence
// numbers, after the pattern by Dmitry Vyukov. A producer claims a slot
// whose sequence equals the tail it read, writes the value, then bumps
// the slot sequence to hand it to a consumer; dequeue mirrors this on
// the head side. Each slot is claimed by exactly one producer before
// exactly one consumer.

package queue

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/momentics/corun/api"
	"github.com/momentics/corun/core/atomics"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*MPMC[any])(nil)

// spinYieldEvery throttles runtime.Gosched in the claim loops.
const spinYieldEvery = 64

type slot[T any] struct {
	sequence atomics.Uint64
	data     T
}

// MPMC is a bounded lock-free queue safe for any number of producers
// and consumers.
type MPMC[T any] struct {
	head atomics.Uint64
	_    cpu.CacheLinePad
	tail atomics.Uint64
	_    cpu.CacheLinePad
	mask uint64
	buf  []slot[T]
}

// NewMPMC allocates a queue; capacity is rounded up to a power of two.
func NewMPMC[T any](capacity int) *MPMC[T] {
	size := normalize(capacity)
	q := &MPMC[T]{
		mask: size - 1,
		buf:  make([]slot[T], size),
	}
	for i := range q.buf {
		q.buf[i].sequence.Store(uint64(i), atomics.Relaxed)
	}
	return q
}

// Enqueue adds an item; returns false if the queue is full.
func (q *MPMC[T]) Enqueue(item T) bool {
	var spins uint32
	for {
		tail := q.tail.Load(atomics.Relaxed)
		s := &q.buf[tail&q.mask]
		seq := s.sequence.Load(atomics.Acquire)
		diff := int64(seq) - int64(tail)

		switch {
		case diff == 0:
			// Slot free for this position; try to claim it.
			if ok, _ := q.tail.CompareExchange(tail, tail+1, atomics.Relaxed, atomics.Relaxed); ok {
				s.data = item
				s.sequence.Store(tail+1, atomics.Release) // publish
				return true
			}
		case diff < 0:
			// Consumer has not freed this slot yet: full.
			return false
		default:
			// Tail moved under us; reread and retry.
		}
		spins++
		if spins%spinYieldEvery == 0 {
			runtime.Gosched()
		}
	}
}

// Dequeue removes and returns an item; ok is false if empty.
func (q *MPMC[T]) Dequeue() (T, bool) {
	var zero T
	var spins uint32
	for {
		head := q.head.Load(atomics.Relaxed)
		s := &q.buf[head&q.mask]
		seq := s.sequence.Load(atomics.Acquire)
		diff := int64(seq) - int64(head+1)

		switch {
		case diff == 0:
			if ok, _ := q.head.CompareExchange(head, head+1, atomics.Relaxed, atomics.Relaxed); ok {
				item := s.data
				s.data = zero
				// Free the slot for the producer one full lap ahead.
				s.sequence.Store(head+q.mask+1, atomics.Release)
				return item, true
			}
		case diff < 0:
			return zero, false
		default:
			// Head moved under us; retry.
		}
		spins++
		if spins%spinYieldEvery == 0 {
			runtime.Gosched()
		}
	}
}

// Len returns the number of buffered items. The value is a snapshot and
// may be stale by the time it is observed.
func (q *MPMC[T]) Len() int {
	head := q.head.Load(atomics.Relaxed)
	tail := q.tail.Load(atomics.Relaxed)
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Cap returns the fixed capacity.
func (q *MPMC[T]) Cap() int {
	return len(q.buf)
}
