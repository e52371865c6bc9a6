// File: coro/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-threaded cooperative scheduler: a FIFO ready queue, a registry
// of live coroutines, a timer queue and an optional poller integration.

package coro

import (
	"time"

	"github.com/eapache/queue"
	"github.com/llxisdsh/pb"

	"github.com/momentics/corun/api"
	"github.com/momentics/corun/control"
	"github.com/momentics/corun/core/atomics"
)

// Scheduler owns and drives a set of coroutines. It must be driven from
// a single goroutine; true parallelism is achieved by running multiple
// independent Scheduler instances on separate threads, communicating
// through the lock-free primitives in core/queue.
type Scheduler struct {
	ready    *queue.Queue // of *Coroutine
	registry pb.MapOf[uint64, *Coroutine]
	current  *Coroutine
	nextID   atomics.Uint64
	timers   timerHeap
	parked   int
	closed   bool

	poller    api.Poller
	waitingIO map[api.Token]*Coroutine
	readyIO   []api.Token

	cfg     *control.Config
	metrics *control.Metrics
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPoller attaches the external readiness-notification service the
// scheduler parks I/O-blocked coroutines against.
func WithPoller(p api.Poller) Option {
	return func(s *Scheduler) { s.poller = p }
}

// WithMetrics attaches a metrics registry; the scheduler counts spawns,
// switches, parks, wakes, timeouts and deadlocks into it.
func WithMetrics(m *control.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithConfig attaches a tuning configuration store. Without it the
// built-in defaults apply.
func WithConfig(c *control.Config) Option {
	return func(s *Scheduler) { s.cfg = c }
}

// NewScheduler creates an independent scheduler instance.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		ready:     queue.New(),
		waitingIO: make(map[api.Token]*Coroutine),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn creates a coroutine in Ready state and enqueues it.
func (s *Scheduler) Spawn(body Body) (*Handle, error) {
	if s.closed {
		return nil, api.ErrSchedulerClosed
	}
	c := New(body)
	c.id = s.nextID.FetchAdd(1, atomics.Relaxed) + 1
	c.task.sched = s
	s.registry.Store(c.id, c)
	s.ready.Add(c)
	s.count(control.MetricSpawns)
	return &Handle{c: c}, nil
}

// Go is spawn sugar: Spawn that panics on a closed scheduler, for the
// common fire-and-forget entry point.
func Go(s *Scheduler, body Body) *Handle {
	h, err := s.Spawn(body)
	if err != nil {
		panic(err)
	}
	return h
}

// RunUntilIdle resumes ready coroutines round-robin until no coroutine
// is ready, none is parked, no timer is pending and no poller interest
// is outstanding. If coroutines stay parked with no event source left
// that could wake them, it returns ErrDeadlock instead of hanging.
func (s *Scheduler) RunUntilIdle() error {
	if s.closed {
		return api.ErrSchedulerClosed
	}
	for {
		s.fireDueTimers()

		if s.ready.Length() == 0 {
			when, haveTimer := s.nextTimer()
			pendingIO := len(s.readyIO) > 0 ||
				(s.poller != nil && s.poller.Pending() > 0)

			switch {
			case haveTimer:
				d := time.Until(when)
				if d <= 0 {
					continue
				}
				if pendingIO {
					if err := s.pollOnce(d); err != nil {
						return err
					}
				} else {
					time.Sleep(d)
				}
			case pendingIO:
				if err := s.pollOnce(-1); err != nil {
					return err
				}
			case s.parked > 0:
				s.count(control.MetricDeadlocks)
				return s.deadlockError()
			default:
				return nil
			}
			continue
		}

		c := s.ready.Remove().(*Coroutine)
		s.current = c
		sig, err := c.resume(modeRun)
		s.current = nil
		if err != nil {
			return err
		}
		s.count(control.MetricSwitches)

		switch sig {
		case sigYield:
			s.ready.Add(c)
		case sigPark:
			s.parked++
			s.count(control.MetricParks)
		case sigFinished:
			s.registry.Delete(c.id)
		}
	}
}

// Wake moves a parked coroutine back to the tail of the ready queue.
// Callers must hold the single wake right for the coroutine (see the
// waiter claim protocol in the channel package).
func (s *Scheduler) Wake(t *Task) {
	s.parked--
	s.ready.Add(t.c)
	s.count(control.MetricWakes)
}

// Current returns the coroutine being resumed right now, nil between
// resumes.
func (s *Scheduler) Current() *Coroutine { return s.current }

// Live returns the number of unfinished coroutines.
func (s *Scheduler) Live() int {
	n := 0
	s.registry.Range(func(uint64, *Coroutine) bool {
		n++
		return true
	})
	return n
}

// pollOnce wakes coroutines whose tokens are ready, blocking in the
// poller for up to d (forever if negative) when no carried-over tokens
// remain from the previous pass. The per-pass batch is capped by the
// PollBatchHint tuning knob; surplus tokens carry over.
func (s *Scheduler) pollOnce(d time.Duration) error {
	if len(s.readyIO) == 0 {
		tokens, err := s.poller.Poll(d)
		if err != nil {
			return err
		}
		s.readyIO = tokens
	}
	batch := s.Tuning().PollBatchHint
	if batch <= 0 || batch > len(s.readyIO) {
		batch = len(s.readyIO)
	}
	for _, tok := range s.readyIO[:batch] {
		c, ok := s.waitingIO[tok]
		if !ok {
			continue
		}
		delete(s.waitingIO, tok)
		_ = s.poller.Deregister(tok)
		s.parked--
		s.ready.Add(c)
		s.count(control.MetricWakes)
	}
	s.readyIO = s.readyIO[batch:]
	return nil
}

// Tuning returns the effective tuning snapshot.
func (s *Scheduler) Tuning() control.Tuning {
	if s.cfg == nil {
		return control.DefaultTuning()
	}
	return s.cfg.Snapshot()
}

// Metrics returns the attached metrics registry, nil if none.
func (s *Scheduler) Metrics() *control.Metrics { return s.metrics }

func (s *Scheduler) deadlockError() error {
	var ids []uint64
	s.registry.Range(func(id uint64, c *Coroutine) bool {
		if c.State() == StateSuspended {
			ids = append(ids, id)
		}
		return true
	})
	return api.NewError(api.ErrCodeDeadlock,
		"all remaining coroutines are parked and no event source can wake them").
		WithContext("parked", ids)
}

// Close shuts the scheduler down. Every live coroutine is resumed in
// shutdown mode so its next suspension point returns ErrSchedulerClosed
// and the body can unwind; bodies that ignore the error and never
// return will block Close, by the cooperative contract.
// Close must not be called while RunUntilIdle is executing.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.registry.Range(func(id uint64, c *Coroutine) bool {
		for c.State() != StateFinished {
			if _, err := c.resume(modeShutdown); err != nil {
				break
			}
		}
		s.registry.Delete(id)
		return true
	})
	s.ready = queue.New()
	s.waitingIO = make(map[api.Token]*Coroutine)
	s.readyIO = nil
	s.parked = 0
}

func (s *Scheduler) count(name string) {
	if s.metrics != nil {
		s.metrics.Inc(name)
	}
}

// Handle is a non-owning reference to a spawned coroutine. The
// coroutine's storage is owned by the scheduler registry until it
// finishes.
type Handle struct {
	c *Coroutine
}

// ID returns the coroutine's identity.
func (h *Handle) ID() uint64 { return h.c.id }

// State returns the coroutine's current state.
func (h *Handle) State() State { return h.c.State() }

// Done reports whether the coroutine finished.
func (h *Handle) Done() bool { return h.c.State() == StateFinished }

// Err returns the body's return value; meaningful once Done.
func (h *Handle) Err() error { return h.c.err }
