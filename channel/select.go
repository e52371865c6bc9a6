// File: channel/select.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Multi-way select. The immediate pass scans the cases from a random
// starting offset so simultaneously-ready cases are chosen without
// list-order bias. When nothing is ready the coroutine registers one
// waiter per case, all sharing a single claim cell, and parks; the
// first channel (or the timeout) to win the claim completes the select,
// and every other registration is dead from that instant. Losing
// wait-list entries are discarded lazily by their channels.

package channel

import (
	"time"

	"github.com/valyala/fastrand"

	"github.com/momentics/corun/api"
	"github.com/momentics/corun/control"
	"github.com/momentics/corun/coro"
	"github.com/momentics/corun/core/atomics"
)

// Case is one channel operation offered to Select. Build cases with
// RecvCase and SendCase.
type Case interface {
	// attempt tries to complete the case synchronously.
	attempt() (val any, err error, done bool)
	// register parks a waiter for this case on its channel.
	register(sel *selectShared, idx int, t *coro.Task)
	// result reads the completed case after wake.
	result() (val any, err error)
}

// RecvCase offers a receive from ch.
func RecvCase[T any](ch *Channel[T]) Case {
	return &recvCase[T]{ch: ch}
}

// SendCase offers sending v to ch.
func SendCase[T any](ch *Channel[T], v T) Case {
	return &sendCase[T]{ch: ch, v: v}
}

// Select blocks the calling coroutine until exactly one case completes
// and returns its index, the received value (nil for send cases) and
// the case's error (for example ErrChannelClosed).
func Select(t *coro.Task, cases ...Case) (int, any, error) {
	return doSelect(t, -1, cases)
}

// SelectTimeout is Select with a deadline. On expiry it withdraws from
// every channel and returns index -1 with ErrTimeout.
func SelectTimeout(t *coro.Task, d time.Duration, cases ...Case) (int, any, error) {
	return doSelect(t, d, cases)
}

func doSelect(t *coro.Task, d time.Duration, cases []Case) (int, any, error) {
	if t == nil || !t.Active() {
		return -1, nil, api.NewError(api.ErrCodeNoActiveCoroutine, "select outside a running coroutine")
	}
	if len(cases) == 0 {
		return -1, nil, api.NewError(api.ErrCodeInternal, "select with no cases")
	}

	// Immediate pass: rotate the scan start so ties break uniformly.
	n := len(cases)
	start := int(fastrand.Uint32n(uint32(n)))
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if v, err, done := cases[idx].attempt(); done {
			return idx, v, err
		}
	}

	s := t.Sched()
	sel := &selectShared{}
	for i, c := range cases {
		c.register(sel, i, t)
	}

	var tm *coro.Timer
	if d >= 0 {
		tm = s.AfterFunc(d, func() {
			if ok, _ := sel.winner.CompareExchange(0, selectTimedOut, atomics.AcqRel, atomics.Acquire); ok {
				if m := s.Metrics(); m != nil {
					m.Inc(control.MetricTimeouts)
				}
				s.Wake(t)
			}
		})
	}

	if err := t.Suspend(); err != nil {
		sel.winner.CompareExchange(0, selectTimedOut, atomics.AcqRel, atomics.Acquire)
		return -1, nil, err
	}
	if tm != nil {
		tm.Stop()
	}

	winner := sel.winner.Load(atomics.Acquire)
	if winner == selectTimedOut {
		return -1, nil, api.NewError(api.ErrCodeTimeout, "select timed out")
	}
	idx := int(winner - 1)
	v, err := cases[idx].result()
	return idx, v, err
}

type recvCase[T any] struct {
	ch *Channel[T]
	w  *waiter[T]
}

func (c *recvCase[T]) attempt() (any, error, bool) {
	v, done, err := c.ch.tryRecvVal()
	if !done {
		return nil, nil, false
	}
	return v, err, true
}

func (c *recvCase[T]) register(sel *selectShared, idx int, t *coro.Task) {
	c.w = &waiter[T]{task: t, sel: sel, selIdx: idx}
	c.ch.recvq.Add(c.w)
}

func (c *recvCase[T]) result() (any, error) {
	if c.w.outcome() == statusClosed {
		return nil, api.NewError(api.ErrCodeChannelClosed, "recv on closed channel")
	}
	return c.w.val, nil
}

type sendCase[T any] struct {
	ch *Channel[T]
	v  T
	w  *waiter[T]
}

func (c *sendCase[T]) attempt() (any, error, bool) {
	done, err := c.ch.trySendVal(c.v)
	if !done {
		return nil, nil, false
	}
	return nil, err, true
}

func (c *sendCase[T]) register(sel *selectShared, idx int, t *coro.Task) {
	c.w = &waiter[T]{task: t, val: c.v, sel: sel, selIdx: idx}
	c.ch.sendq.Add(c.w)
}

func (c *sendCase[T]) result() (any, error) {
	if c.w.outcome() == statusClosed {
		return nil, api.NewError(api.ErrCodeChannelClosed, "send on closed channel")
	}
	return nil, nil
}
