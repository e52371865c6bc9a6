// File: core/queue/spsc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer/single-consumer ring buffer. The hot path has no CAS:
// the producer release-publishes tail, the consumer acquire-reads it.
// Each side keeps a local cache of the opposite index and refreshes it
// only when the ring looks full (producer) or empty (consumer), so the
// common case never reads the other side's cache line.
//
// Exactly one goroutine may produce and exactly one may consume; calling
// from more is undefined behavior by contract.

package queue

import (
	"golang.org/x/sys/cpu"

	"github.com/momentics/corun/api"
	"github.com/momentics/corun/core/atomics"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*SPSC[any])(nil)

// SPSC is a bounded single-producer/single-consumer ring.
type SPSC[T any] struct {
	// Consumer side: head plus the consumer's cached copy of tail.
	head       atomics.Uint64
	cachedTail uint64
	_          cpu.CacheLinePad

	// Producer side: tail plus the producer's cached copy of head.
	tail       atomics.Uint64
	cachedHead uint64
	_          cpu.CacheLinePad

	// Immutable after construction.
	buf  []T
	mask uint64
}

// NewSPSC allocates a ring; capacity is rounded up to a power of two.
func NewSPSC[T any](capacity int) *SPSC[T] {
	size := normalize(capacity)
	return &SPSC[T]{
		buf:  make([]T, size),
		mask: size - 1,
	}
}

// Enqueue adds an item; returns false if the ring is full.
func (r *SPSC[T]) Enqueue(item T) bool {
	tail := r.tail.Load(atomics.Relaxed)
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.Load(atomics.Acquire)
		if tail-r.cachedHead > r.mask {
			return false
		}
	}
	r.buf[tail&r.mask] = item
	r.tail.Store(tail+1, atomics.Release) // publish to the consumer
	return true
}

// Dequeue removes and returns the oldest item; ok is false if empty.
func (r *SPSC[T]) Dequeue() (T, bool) {
	var zero T
	head := r.head.Load(atomics.Relaxed)
	if head == r.cachedTail {
		r.cachedTail = r.tail.Load(atomics.Acquire)
		if head == r.cachedTail {
			return zero, false
		}
	}
	item := r.buf[head&r.mask]
	r.buf[head&r.mask] = zero // release the slot's reference
	r.head.Store(head+1, atomics.Release)
	return item, true
}

// Len returns the number of buffered items.
func (r *SPSC[T]) Len() int {
	return int(r.tail.Load(atomics.Acquire) - r.head.Load(atomics.Acquire))
}

// Cap returns the fixed capacity.
func (r *SPSC[T]) Cap() int {
	return len(r.buf)
}
