// File: core/atomics/cell.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-width atomic cells. A cell must be exclusively owned by the
// structure embedding it, and accessed only through these methods.

package atomics

import "sync/atomic"

// Uint64 is a 64-bit atomic cell.
type Uint64 struct {
	v atomic.Uint64
}

// Load returns the current value.
func (c *Uint64) Load(o Ordering) uint64 {
	o.check()
	return c.v.Load()
}

// Store writes val.
func (c *Uint64) Store(val uint64, o Ordering) {
	o.check()
	c.v.Store(val)
}

// Exchange writes val and returns the previous value.
func (c *Uint64) Exchange(val uint64, o Ordering) uint64 {
	o.check()
	return c.v.Swap(val)
}

// CompareExchange attempts to replace expected with desired. It returns
// whether the swap happened and the value observed at the time of the
// attempt (expected on success).
func (c *Uint64) CompareExchange(expected, desired uint64, success, failure Ordering) (bool, uint64) {
	success.check()
	failure.check()
	for {
		if c.v.CompareAndSwap(expected, desired) {
			return true, expected
		}
		observed := c.v.Load()
		if observed != expected {
			return false, observed
		}
		// Lost a race between the failed CAS and the re-load; retry.
	}
}

// FetchAdd adds delta and returns the previous value.
func (c *Uint64) FetchAdd(delta uint64, o Ordering) uint64 {
	o.check()
	return c.v.Add(delta) - delta
}

// FetchSub subtracts delta and returns the previous value.
func (c *Uint64) FetchSub(delta uint64, o Ordering) uint64 {
	o.check()
	return c.v.Add(^(delta - 1)) + delta
}

// FetchAnd applies a bitwise AND and returns the previous value.
func (c *Uint64) FetchAnd(mask uint64, o Ordering) uint64 {
	o.check()
	return c.v.And(mask)
}

// FetchOr applies a bitwise OR and returns the previous value.
func (c *Uint64) FetchOr(mask uint64, o Ordering) uint64 {
	o.check()
	return c.v.Or(mask)
}

// FetchXor applies a bitwise XOR and returns the previous value.
func (c *Uint64) FetchXor(mask uint64, o Ordering) uint64 {
	o.check()
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, old^mask) {
			return old
		}
	}
}

// Uint32 is a 32-bit atomic cell.
type Uint32 struct {
	v atomic.Uint32
}

// Load returns the current value.
func (c *Uint32) Load(o Ordering) uint32 {
	o.check()
	return c.v.Load()
}

// Store writes val.
func (c *Uint32) Store(val uint32, o Ordering) {
	o.check()
	c.v.Store(val)
}

// Exchange writes val and returns the previous value.
func (c *Uint32) Exchange(val uint32, o Ordering) uint32 {
	o.check()
	return c.v.Swap(val)
}

// CompareExchange attempts to replace expected with desired.
func (c *Uint32) CompareExchange(expected, desired uint32, success, failure Ordering) (bool, uint32) {
	success.check()
	failure.check()
	for {
		if c.v.CompareAndSwap(expected, desired) {
			return true, expected
		}
		observed := c.v.Load()
		if observed != expected {
			return false, observed
		}
	}
}

// FetchAdd adds delta and returns the previous value.
func (c *Uint32) FetchAdd(delta uint32, o Ordering) uint32 {
	o.check()
	return c.v.Add(delta) - delta
}

// FetchSub subtracts delta and returns the previous value.
func (c *Uint32) FetchSub(delta uint32, o Ordering) uint32 {
	o.check()
	return c.v.Add(^(delta - 1)) + delta
}

// FetchAnd applies a bitwise AND and returns the previous value.
func (c *Uint32) FetchAnd(mask uint32, o Ordering) uint32 {
	o.check()
	return c.v.And(mask)
}

// FetchOr applies a bitwise OR and returns the previous value.
func (c *Uint32) FetchOr(mask uint32, o Ordering) uint32 {
	o.check()
	return c.v.Or(mask)
}

// FetchXor applies a bitwise XOR and returns the previous value.
func (c *Uint32) FetchXor(mask uint32, o Ordering) uint32 {
	o.check()
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, old^mask) {
			return old
		}
	}
}

// Bool is a boolean atomic cell.
type Bool struct {
	v atomic.Bool
}

// Load returns the current value.
func (c *Bool) Load(o Ordering) bool {
	o.check()
	return c.v.Load()
}

// Store writes val.
func (c *Bool) Store(val bool, o Ordering) {
	o.check()
	c.v.Store(val)
}

// Exchange writes val and returns the previous value.
func (c *Bool) Exchange(val bool, o Ordering) bool {
	o.check()
	return c.v.Swap(val)
}

// CompareExchange attempts to replace expected with desired.
func (c *Bool) CompareExchange(expected, desired bool, success, failure Ordering) (bool, bool) {
	success.check()
	failure.check()
	if c.v.CompareAndSwap(expected, desired) {
		return true, expected
	}
	return false, c.v.Load()
}

// Pointer is a typed pointer-sized atomic cell.
type Pointer[T any] struct {
	v atomic.Pointer[T]
}

// Load returns the current pointer.
func (c *Pointer[T]) Load(o Ordering) *T {
	o.check()
	return c.v.Load()
}

// Store writes p.
func (c *Pointer[T]) Store(p *T, o Ordering) {
	o.check()
	c.v.Store(p)
}

// Exchange writes p and returns the previous pointer.
func (c *Pointer[T]) Exchange(p *T, o Ordering) *T {
	o.check()
	return c.v.Swap(p)
}

// CompareExchange attempts to replace expected with desired.
func (c *Pointer[T]) CompareExchange(expected, desired *T, success, failure Ordering) (bool, *T) {
	success.check()
	failure.check()
	if c.v.CompareAndSwap(expected, desired) {
		return true, expected
	}
	return false, c.v.Load()
}
