package coro

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/corun/api"
	"github.com/momentics/corun/control"
	"github.com/momentics/corun/fake"
)

func TestScheduler_RunsSpawnedBodies(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	ran := 0
	for i := 0; i < 5; i++ {
		if _, err := s.Spawn(func(*Task) error {
			ran++
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if ran != 5 {
		t.Fatalf("ran %d bodies, want 5", ran)
	}
	if s.Live() != 0 {
		t.Fatalf("%d coroutines still live", s.Live())
	}
}

func TestScheduler_RoundRobinOnYield(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var order []string
	worker := func(name string) Body {
		return func(tk *Task) error {
			for i := 1; i <= 2; i++ {
				order = append(order, name)
				if err := tk.Yield(); err != nil {
					return err
				}
			}
			return nil
		}
	}
	Go(s, worker("a"))
	Go(s, worker("b"))

	if err := s.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order %v, want %v", order, want)
		}
	}
}

func TestScheduler_HandleLifecycle(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	h, err := s.Spawn(func(*Task) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if h.State() != StateReady || h.Done() {
		t.Fatalf("fresh handle state %v", h.State())
	}
	if h.ID() == 0 {
		t.Fatal("handle has zero id")
	}
	if err := s.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if !h.Done() {
		t.Fatal("handle not done after run")
	}
}

func TestScheduler_DeadlockDetection(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	Go(s, func(tk *Task) error {
		return tk.Suspend() // nobody will ever wake this
	})

	err := s.RunUntilIdle()
	if !errors.Is(err, api.ErrDeadlock) {
		t.Fatalf("RunUntilIdle = %v, want ErrDeadlock", err)
	}
}

func TestScheduler_SleepWakesThroughTimer(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	const nap = 30 * time.Millisecond
	start := time.Now()
	h := Go(s, func(tk *Task) error {
		return tk.Sleep(nap)
	})
	if err := s.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if !h.Done() || h.Err() != nil {
		t.Fatalf("sleeper state %v err %v", h.State(), h.Err())
	}
	if elapsed := time.Since(start); elapsed < nap {
		t.Fatalf("woke after %v, want >= %v", elapsed, nap)
	}
}

func TestScheduler_IOParkAndWake(t *testing.T) {
	p := fake.NewPoller()
	s := NewScheduler(WithPoller(p))
	defer s.Close()

	got := false
	h := Go(s, func(tk *Task) error {
		if err := tk.AwaitRead(3); err != nil {
			return err
		}
		got = true
		return nil
	})

	// Arm readiness from outside once the coroutine has parked.
	time.AfterFunc(50*time.Millisecond, func() {
		p.MakeReady(api.Token(1))
	})

	if err := s.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if !got || !h.Done() {
		t.Fatal("I/O-parked coroutine did not resume on readiness")
	}
	if p.Pending() != 0 {
		t.Fatalf("%d stale registrations", p.Pending())
	}
}

func TestScheduler_CloseUnwindsParked(t *testing.T) {
	s := NewScheduler()

	h := Go(s, func(tk *Task) error {
		return tk.Suspend()
	})
	if err := s.RunUntilIdle(); !errors.Is(err, api.ErrDeadlock) {
		t.Fatalf("expected deadlock before close, got %v", err)
	}

	s.Close()
	if !h.Done() {
		t.Fatal("parked coroutine not unwound by Close")
	}
	if !errors.Is(h.Err(), api.ErrSchedulerClosed) {
		t.Fatalf("body error %v, want ErrSchedulerClosed", h.Err())
	}
	if _, err := s.Spawn(func(*Task) error { return nil }); !errors.Is(err, api.ErrSchedulerClosed) {
		t.Fatalf("spawn after close = %v, want ErrSchedulerClosed", err)
	}
	if err := s.RunUntilIdle(); !errors.Is(err, api.ErrSchedulerClosed) {
		t.Fatalf("run after close = %v, want ErrSchedulerClosed", err)
	}
}

func TestScheduler_MetricsCounters(t *testing.T) {
	m := control.NewMetrics()
	s := NewScheduler(WithMetrics(m))
	defer s.Close()

	Go(s, func(tk *Task) error {
		return tk.Yield()
	})
	if err := s.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if m.Get(control.MetricSpawns) != 1 {
		t.Fatalf("spawns = %d, want 1", m.Get(control.MetricSpawns))
	}
	if m.Get(control.MetricSwitches) < 2 {
		t.Fatalf("switches = %d, want >= 2", m.Get(control.MetricSwitches))
	}
}

func TestScheduler_IndependentInstances(t *testing.T) {
	s1 := NewScheduler()
	s2 := NewScheduler()
	defer s1.Close()
	defer s2.Close()

	ran1, ran2 := false, false
	Go(s1, func(*Task) error { ran1 = true; return nil })
	Go(s2, func(*Task) error { ran2 = true; return nil })

	if err := s1.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if !ran1 || ran2 {
		t.Fatal("scheduler instances interfered")
	}
	if err := s2.RunUntilIdle(); err != nil {
		t.Fatal(err)
	}
	if !ran2 {
		t.Fatal("second scheduler did not run its coroutine")
	}
}
