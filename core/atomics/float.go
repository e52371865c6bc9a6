// File: core/atomics/float.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Float payloads are not directly atomic; they must be bit-reinterpreted
// into an integer cell. These helpers make the reinterpretation explicit
// at the call site instead of hiding it behind a float cell type.

package atomics

import "math"

// Float64 is a 64-bit float view over a Uint64 cell.
type Float64 struct {
	bits Uint64
}

// Load returns the current value.
func (c *Float64) Load(o Ordering) float64 {
	return math.Float64frombits(c.bits.Load(o))
}

// Store writes val.
func (c *Float64) Store(val float64, o Ordering) {
	c.bits.Store(math.Float64bits(val), o)
}

// Exchange writes val and returns the previous value.
func (c *Float64) Exchange(val float64, o Ordering) float64 {
	return math.Float64frombits(c.bits.Exchange(math.Float64bits(val), o))
}

// CompareExchange compares bit patterns, not float equality: NaN payloads
// compare like any other bits, and -0.0 does not match +0.0.
func (c *Float64) CompareExchange(expected, desired float64, success, failure Ordering) (bool, float64) {
	ok, observed := c.bits.CompareExchange(math.Float64bits(expected), math.Float64bits(desired), success, failure)
	return ok, math.Float64frombits(observed)
}
