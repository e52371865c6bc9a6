// File: core/spin/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scoped acquisition helpers. Release happens via defer, so the lock is
// freed on every exit path including a panic inside the critical section.

package spin

// Mutex is the acquire/release surface shared by Spinlock and TicketLock.
type Mutex interface {
	Lock()
	Unlock()
}

// With runs fn while holding l.
func With(l Mutex, fn func()) {
	l.Lock()
	defer l.Unlock()
	fn()
}

// WithRead runs fn while holding a read lock on l.
func WithRead(l *RWSpinlock, fn func()) {
	l.RLock()
	defer l.RUnlock()
	fn()
}

// WithWrite runs fn while holding the write lock on l.
func WithWrite(l *RWSpinlock, fn func()) {
	l.Lock()
	defer l.Unlock()
	fn()
}
