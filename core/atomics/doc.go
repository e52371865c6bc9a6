// File: core/atomics/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ordered atomic cells for the corun runtime. Every read and write of a
// cell goes through sync/atomic; there is no non-atomic fallback path on
// any supported target. Each operation takes an explicit Ordering naming
// the happens-before edge the caller relies on. Go's sync/atomic executes
// all operations sequentially consistent, which satisfies any requested
// ordering; callers must still request the edge they need and must not
// assume more than they asked for.
package atomics
