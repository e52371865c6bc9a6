// File: channel/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed channel over the scheduler's park/wake primitive. Capacity 0 is
// a rendezvous: whichever side arrives first parks until its partner
// completes the handoff. Capacity > 0 is a bounded buffer backed by the
// lock-free MPMC ring; senders park only when the buffer is full,
// receivers only when it is empty.
//
// All blocking operations must be called from inside a coroutine body
// of the owning scheduler; Try variants and Close may additionally be
// called from scheduler timer callbacks.

package channel

import (
	"time"

	eq "github.com/eapache/queue"

	"github.com/momentics/corun/api"
	"github.com/momentics/corun/control"
	"github.com/momentics/corun/coro"
	"github.com/momentics/corun/core/queue"
)

// Channel is a typed rendezvous or bounded-buffer channel.
type Channel[T any] struct {
	sched *coro.Scheduler

	buf      *queue.MPMC[T] // nil in rendezvous mode
	capacity int            // logical capacity; buf may be larger
	size     int            // buffered item count

	sendq  *eq.Queue // FIFO of *waiter[T]
	recvq  *eq.Queue
	closed bool
}

// New creates a channel on s. Capacity 0 selects rendezvous mode; a
// negative capacity selects the scheduler's ChannelBufferHint.
func New[T any](s *coro.Scheduler, capacity int) *Channel[T] {
	if capacity < 0 {
		capacity = s.Tuning().ChannelBufferHint
	}
	ch := &Channel[T]{
		sched:    s,
		capacity: capacity,
		sendq:    eq.New(),
		recvq:    eq.New(),
	}
	if capacity > 0 {
		ch.buf = queue.NewMPMC[T](capacity)
	}
	return ch
}

// Cap returns the logical capacity (0 for rendezvous).
func (ch *Channel[T]) Cap() int { return ch.capacity }

// Len returns the number of buffered values.
func (ch *Channel[T]) Len() int { return ch.size }

// Closed reports whether Close was called.
func (ch *Channel[T]) Closed() bool { return ch.closed }

// Send delivers v, parking the calling coroutine until a receiver (or
// buffer space) takes it. Fails with ErrChannelClosed if the channel is
// or becomes closed.
func (ch *Channel[T]) Send(t *coro.Task, v T) error {
	return ch.send(t, v, -1)
}

// SendTimeout is Send with a deadline. On expiry the operation
// withdraws and returns ErrTimeout; the value is not delivered.
func (ch *Channel[T]) SendTimeout(t *coro.Task, v T, d time.Duration) error {
	return ch.send(t, v, d)
}

func (ch *Channel[T]) send(t *coro.Task, v T, d time.Duration) error {
	if t == nil || !t.Active() {
		return api.NewError(api.ErrCodeNoActiveCoroutine, "channel send outside a running coroutine")
	}
	if done, err := ch.trySendVal(v); done {
		return err
	}

	w := &waiter[T]{task: t, val: v}
	ch.sendq.Add(w)
	ch.armTimeout(w, d)

	if err := t.Suspend(); err != nil {
		w.tryClaim(statusClosed)
		return err
	}
	switch w.outcome() {
	case statusDelivered:
		return nil
	case statusClosed:
		return api.NewError(api.ErrCodeChannelClosed, "send on closed channel")
	default:
		return api.NewError(api.ErrCodeTimeout, "channel send timed out")
	}
}

// Recv takes the next value, parking the calling coroutine until one is
// available. A closed channel keeps delivering buffered values; once
// drained, Recv fails with ErrChannelClosed.
func (ch *Channel[T]) Recv(t *coro.Task) (T, error) {
	return ch.recv(t, -1)
}

// RecvTimeout is Recv with a deadline.
func (ch *Channel[T]) RecvTimeout(t *coro.Task, d time.Duration) (T, error) {
	return ch.recv(t, d)
}

func (ch *Channel[T]) recv(t *coro.Task, d time.Duration) (T, error) {
	var zero T
	if t == nil || !t.Active() {
		return zero, api.NewError(api.ErrCodeNoActiveCoroutine, "channel recv outside a running coroutine")
	}
	if v, done, err := ch.tryRecvVal(); done {
		return v, err
	}

	w := &waiter[T]{task: t}
	ch.recvq.Add(w)
	ch.armTimeout(w, d)

	if err := t.Suspend(); err != nil {
		w.tryClaim(statusClosed)
		return zero, err
	}
	switch w.outcome() {
	case statusDelivered:
		return w.val, nil
	case statusClosed:
		return zero, api.NewError(api.ErrCodeChannelClosed, "recv on closed channel")
	default:
		return zero, api.NewError(api.ErrCodeTimeout, "channel recv timed out")
	}
}

// TrySend delivers v without parking. It returns ErrQueueFull when no
// receiver waits and no buffer space is free.
func (ch *Channel[T]) TrySend(v T) error {
	if done, err := ch.trySendVal(v); done {
		return err
	}
	return api.ErrQueueFull
}

// TryRecv takes a value without parking; ErrQueueEmpty when none is
// immediately available.
func (ch *Channel[T]) TryRecv() (T, error) {
	if v, done, err := ch.tryRecvVal(); done {
		return v, err
	}
	var zero T
	return zero, api.ErrQueueEmpty
}

// Close closes the channel: every parked receiver and sender wakes with
// ErrChannelClosed, later sends fail, buffered values stay drainable.
// A second Close returns ErrChannelClosed.
func (ch *Channel[T]) Close() error {
	if ch.closed {
		return api.ErrChannelClosed
	}
	ch.closed = true
	drainWaiters[T](ch.recvq, ch.sched)
	drainWaiters[T](ch.sendq, ch.sched)
	return nil
}

func drainWaiters[T any](q *eq.Queue, s *coro.Scheduler) {
	for q.Length() > 0 {
		w := q.Remove().(*waiter[T])
		if !w.tryClaim(statusClosed) {
			continue
		}
		if w.timer != nil {
			w.timer.Stop()
		}
		s.Wake(w.task)
	}
}

// trySendVal attempts a synchronous send: direct handoff to a parked
// receiver first, then buffer space. done=false means the caller must
// park; done=true with a nil error means delivered.
func (ch *Channel[T]) trySendVal(v T) (bool, error) {
	if ch.closed {
		return true, api.NewError(api.ErrCodeChannelClosed, "send on closed channel")
	}
	if ch.deliverToReceiver(v) {
		return true, nil
	}
	if ch.buf != nil && ch.size < ch.capacity {
		ch.buf.Enqueue(v)
		ch.size++
		return true, nil
	}
	return false, nil
}

// tryRecvVal attempts a synchronous receive: buffer first (promoting a
// parked sender into the freed slot), then a direct take from a parked
// sender, then the closed result.
func (ch *Channel[T]) tryRecvVal() (T, bool, error) {
	var zero T
	if ch.buf != nil {
		if v, ok := ch.buf.Dequeue(); ok {
			ch.size--
			if pv, ok := ch.takeFromSender(); ok {
				ch.buf.Enqueue(pv)
				ch.size++
			}
			return v, true, nil
		}
	}
	if v, ok := ch.takeFromSender(); ok {
		return v, true, nil
	}
	if ch.closed {
		return zero, true, api.NewError(api.ErrCodeChannelClosed, "recv on closed channel")
	}
	return zero, false, nil
}

// deliverToReceiver hands v to the oldest live parked receiver. Dead
// entries (timed out, select lost) are discarded along the way.
func (ch *Channel[T]) deliverToReceiver(v T) bool {
	for ch.recvq.Length() > 0 {
		w := ch.recvq.Remove().(*waiter[T])
		if !w.tryClaim(statusDelivered) {
			continue
		}
		if w.timer != nil {
			w.timer.Stop()
		}
		w.val = v
		ch.sched.Wake(w.task)
		return true
	}
	return false
}

// takeFromSender claims the oldest live parked sender and returns its
// value.
func (ch *Channel[T]) takeFromSender() (T, bool) {
	for ch.sendq.Length() > 0 {
		w := ch.sendq.Remove().(*waiter[T])
		if !w.tryClaim(statusDelivered) {
			continue
		}
		if w.timer != nil {
			w.timer.Stop()
		}
		ch.sched.Wake(w.task)
		return w.val, true
	}
	var zero T
	return zero, false
}

// armTimeout attaches an expiry timer to w for d >= 0. The timer only
// wins if nothing delivered first; a won timeout wakes the parked
// coroutine with the timed-out status.
func (ch *Channel[T]) armTimeout(w *waiter[T], d time.Duration) {
	if d < 0 {
		return
	}
	w.timer = ch.sched.AfterFunc(d, func() {
		if w.tryClaim(statusTimedOut) {
			if m := ch.sched.Metrics(); m != nil {
				m.Inc(control.MetricTimeouts)
			}
			ch.sched.Wake(w.task)
		}
	})
}
