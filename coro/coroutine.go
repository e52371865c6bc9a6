// File: coro/coroutine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Coroutine state machine and the suspend/resume handoff.

package coro

import (
	"github.com/momentics/corun/api"
	"github.com/momentics/corun/core/atomics"
)

// State of a coroutine. Finished is terminal.
type State uint32

const (
	StateReady State = iota
	StateRunning
	StateSuspended
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateSuspended:
		return "Suspended"
	case StateFinished:
		return "Finished"
	default:
		return "State(?)"
	}
}

// signal is what a coroutine reports back to its resumer on suspension.
type signal uint8

const (
	sigYield    signal = iota // voluntary yield, wants re-enqueue
	sigPark                   // blocked on a channel or I/O wait
	sigFinished               // body returned
)

// resumeMode tells a suspended coroutine why it is being woken.
type resumeMode uint8

const (
	modeRun      resumeMode = iota
	modeShutdown            // scheduler closing; suspension points return ErrSchedulerClosed
)

// Body is a coroutine function. Its error is kept on the handle once
// the coroutine finishes.
type Body func(*Task) error

// Coroutine is one cooperatively scheduled unit of execution.
type Coroutine struct {
	id      uint64
	state   atomics.Uint32
	body    Body
	err     error
	started bool

	// Handoff channels. resumeCh carries control into the coroutine
	// goroutine; yieldCh carries it back out. Both are unbuffered so
	// every transfer is a rendezvous and a happens-before edge.
	resumeCh chan resumeMode
	yieldCh  chan signal

	task *Task
}

// New creates a standalone coroutine in Ready state. The backing
// goroutine starts lazily on the first Resume.
func New(body Body) *Coroutine {
	c := &Coroutine{
		body:     body,
		resumeCh: make(chan resumeMode),
		yieldCh:  make(chan signal),
	}
	c.task = &Task{c: c}
	return c
}

// ID returns the scheduler-assigned identity (zero for standalone use).
func (c *Coroutine) ID() uint64 { return c.id }

// State returns the current state.
func (c *Coroutine) State() State {
	return State(c.state.Load(atomics.Acquire))
}

// Err returns the body's return value; meaningful once Finished.
func (c *Coroutine) Err() error { return c.err }

// Resume transfers control into the coroutine until it suspends or
// finishes. It fails on a Finished or Running coroutine.
func (c *Coroutine) Resume() error {
	_, err := c.resume(modeRun)
	return err
}

func (c *Coroutine) resume(mode resumeMode) (signal, error) {
	switch c.State() {
	case StateFinished:
		return sigFinished, api.NewError(api.ErrCodeCoroutineFinished,
			"resume of finished coroutine").WithContext("id", c.id)
	case StateRunning:
		return sigFinished, api.NewError(api.ErrCodeInternal,
			"resume of running coroutine").WithContext("id", c.id)
	}

	c.state.Store(uint32(StateRunning), atomics.Release)
	if !c.started {
		c.started = true
		go c.run()
	} else {
		c.resumeCh <- mode
	}
	return <-c.yieldCh, nil
}

// run is the coroutine goroutine. Its stack is the coroutine stack.
func (c *Coroutine) run() {
	defer func() {
		if r := recover(); r != nil {
			c.err = api.NewError(api.ErrCodeInternal, "coroutine panicked").
				WithContext("id", c.id).WithContext("panic", r)
		}
		c.state.Store(uint32(StateFinished), atomics.Release)
		c.yieldCh <- sigFinished
	}()
	c.err = c.body(c.task)
}

// suspend hands control back to the resumer and blocks until resumed.
// Must be called on the coroutine goroutine while Running.
func (c *Coroutine) suspend(sig signal) error {
	c.state.Store(uint32(StateSuspended), atomics.Release)
	c.yieldCh <- sig
	mode := <-c.resumeCh
	// State was set back to Running by the resumer before the handoff.
	if mode == modeShutdown {
		return api.ErrSchedulerClosed
	}
	return nil
}

// Task is the in-body view of a coroutine: every suspension point the
// body may use. A Task must only be used from inside its own body.
type Task struct {
	c     *Coroutine
	sched *Scheduler
}

// ID returns the coroutine's identity.
func (t *Task) ID() uint64 { return t.c.id }

// Sched returns the owning scheduler, nil for standalone coroutines.
func (t *Task) Sched() *Scheduler { return t.sched }

// Active reports whether the task's coroutine is the one running now.
func (t *Task) Active() bool {
	return t.c.State() == StateRunning
}

// Yield suspends the coroutine and re-enqueues it behind other ready
// coroutines. It fails with ErrNoActiveCoroutine when the coroutine is
// not currently running.
func (t *Task) Yield() error {
	if !t.Active() {
		return api.NewError(api.ErrCodeNoActiveCoroutine, "yield outside a running coroutine")
	}
	return t.c.suspend(sigYield)
}

// Suspend parks the coroutine off the ready queue. It stays parked
// until another component wakes it through Scheduler.Wake. Returns
// ErrSchedulerClosed if woken by a shutting-down scheduler.
func (t *Task) Suspend() error {
	if !t.Active() {
		return api.NewError(api.ErrCodeNoActiveCoroutine, "suspend outside a running coroutine")
	}
	return t.c.suspend(sigPark)
}
