// File: coro/wait.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Suspension points that need the scheduler: timed sleep and I/O waits
// through the attached poller.

package coro

import (
	"time"

	"github.com/momentics/corun/api"
)

// Sleep parks the coroutine for at least d.
func (t *Task) Sleep(d time.Duration) error {
	if !t.Active() {
		return api.NewError(api.ErrCodeNoActiveCoroutine, "sleep outside a running coroutine")
	}
	s := t.sched
	if s == nil {
		return api.NewError(api.ErrCodeInternal, "sleep on a standalone coroutine")
	}
	s.AfterFunc(d, func() { s.Wake(t) })
	return t.Suspend()
}

// AwaitRead parks the coroutine until fd is readable.
func (t *Task) AwaitRead(fd uintptr) error {
	return t.await(fd, api.DirRead)
}

// AwaitWrite parks the coroutine until fd is writable.
func (t *Task) AwaitWrite(fd uintptr) error {
	return t.await(fd, api.DirWrite)
}

func (t *Task) await(fd uintptr, dir api.Direction) error {
	if !t.Active() {
		return api.NewError(api.ErrCodeNoActiveCoroutine, "I/O wait outside a running coroutine")
	}
	s := t.sched
	if s == nil || s.poller == nil {
		return api.NewError(api.ErrCodeInternal, "no poller attached to scheduler")
	}
	tok, err := s.poller.Register(fd, dir)
	if err != nil {
		return err
	}
	s.waitingIO[tok] = t.c
	return t.Suspend()
}
