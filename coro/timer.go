// File: coro/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Monotonic timer queue for deadlines and sleeps. Timer callbacks run
// on the scheduler loop between coroutine resumes.

package coro

import (
	"container/heap"
	"time"
)

// Timer is a pending scheduler callback.
type Timer struct {
	when    time.Time
	fn      func()
	index   int // heap index, -1 once popped or stopped
	stopped bool
}

// Stop cancels the timer. It is a no-op if the timer already fired.
// Must be called on the scheduler thread (i.e. from a coroutine body
// or a timer callback of the same scheduler).
func (t *Timer) Stop() {
	t.stopped = true
}

type timerHeap []*Timer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].when.Before(h[j].when) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *timerHeap) Push(x any)         { t := x.(*Timer); t.index = len(*h); *h = append(*h, t) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// AfterFunc schedules fn to run on the scheduler loop after d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{when: time.Now().Add(d), fn: fn}
	heap.Push(&s.timers, t)
	return t
}

// fireDueTimers runs every timer whose deadline has passed.
func (s *Scheduler) fireDueTimers() {
	now := time.Now()
	for s.timers.Len() > 0 {
		next := s.timers[0]
		if next.when.After(now) {
			return
		}
		heap.Pop(&s.timers)
		if next.stopped {
			continue
		}
		next.fn()
	}
}

// nextTimer returns the earliest pending deadline, skipping stopped
// timers at the head.
func (s *Scheduler) nextTimer() (time.Time, bool) {
	for s.timers.Len() > 0 {
		if s.timers[0].stopped {
			heap.Pop(&s.timers)
			continue
		}
		return s.timers[0].when, true
	}
	return time.Time{}, false
}
