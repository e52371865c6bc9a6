// File: channel/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed channels over the coro scheduler: zero-capacity rendezvous,
// bounded buffered mode backed by the MPMC queue, close semantics,
// deadlines, and a multi-way select with unbiased tie-breaking.
//
// Wait-lists are strict FIFO. A parked operation is completed by a
// single atomic claim on its waiter record; a waiter that lost its
// claim (timed out, or its select chose another case) stays in the
// wait-list as a dead entry and is skipped when popped, so a withdrawn
// operation can never receive a spurious delivery.
package channel
