// Package api
// Author: momentics
//
// Readiness-notification contract between the scheduler and an external
// event loop. The scheduler never touches OS polling backends directly;
// it registers interest, polls, and maps ready tokens back to parked
// coroutines.

package api

import "time"

// Direction selects which readiness a registration waits for.
type Direction int

const (
	DirRead Direction = iota
	DirWrite
)

// Token identifies one registered interest.
type Token uint64

// Poller represents an external readiness-notification service.
type Poller interface {
	// Register adds interest on a descriptor; returns a token for it.
	Register(fd uintptr, dir Direction) (Token, error)

	// Poll blocks up to timeout and returns tokens that became ready.
	// A negative timeout blocks until at least one token is ready.
	Poll(timeout time.Duration) ([]Token, error)

	// Deregister withdraws interest for a token.
	Deregister(t Token) error

	// Pending returns the number of outstanding registrations.
	Pending() int
}
