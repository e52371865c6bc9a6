package coro

import (
	"errors"
	"testing"

	"github.com/momentics/corun/api"
)

func TestCoroutine_YieldInterleaving(t *testing.T) {
	var steps []string
	c := New(func(tk *Task) error {
		steps = append(steps, "m1")
		if err := tk.Yield(); err != nil {
			return err
		}
		steps = append(steps, "m2")
		if err := tk.Yield(); err != nil {
			return err
		}
		steps = append(steps, "m3")
		if err := tk.Yield(); err != nil {
			return err
		}
		return nil
	})

	want := []string{"m1", "m2", "m3"}
	for i := 0; i < 3; i++ {
		if err := c.Resume(); err != nil {
			t.Fatalf("resume %d: %v", i+1, err)
		}
		if len(steps) != i+1 {
			t.Fatalf("after resume %d saw %d mutations, want %d", i+1, len(steps), i+1)
		}
		if steps[i] != want[i] {
			t.Fatalf("mutation %d = %q, want %q", i, steps[i], want[i])
		}
		if got := c.State(); got != StateSuspended {
			t.Fatalf("state after resume %d = %v, want Suspended", i+1, got)
		}
	}

	// Final resume runs the body to completion.
	if err := c.Resume(); err != nil {
		t.Fatalf("final resume: %v", err)
	}
	if c.State() != StateFinished {
		t.Fatalf("state = %v, want Finished", c.State())
	}
	if c.Err() != nil {
		t.Fatalf("body error: %v", c.Err())
	}
}

func TestCoroutine_ResumeFinished(t *testing.T) {
	c := New(func(*Task) error { return nil })
	if err := c.Resume(); err != nil {
		t.Fatalf("first resume: %v", err)
	}
	err := c.Resume()
	if !errors.Is(err, api.ErrCoroutineFinished) {
		t.Fatalf("resume of finished coroutine: %v, want ErrCoroutineFinished", err)
	}
}

func TestTask_YieldOutsideRunning(t *testing.T) {
	var captured *Task
	c := New(func(tk *Task) error {
		captured = tk
		return nil
	})
	if err := c.Resume(); err != nil {
		t.Fatal(err)
	}
	err := captured.Yield()
	if !errors.Is(err, api.ErrNoActiveCoroutine) {
		t.Fatalf("yield outside running coroutine: %v, want ErrNoActiveCoroutine", err)
	}
	err = captured.Suspend()
	if !errors.Is(err, api.ErrNoActiveCoroutine) {
		t.Fatalf("suspend outside running coroutine: %v, want ErrNoActiveCoroutine", err)
	}
}

func TestCoroutine_PanicBecomesError(t *testing.T) {
	c := New(func(*Task) error {
		panic("exploding body")
	})
	if err := c.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if c.State() != StateFinished {
		t.Fatalf("state = %v, want Finished", c.State())
	}
	if c.Err() == nil {
		t.Fatal("panic was swallowed, want error")
	}
}

func TestCoroutine_StateProgression(t *testing.T) {
	c := New(func(tk *Task) error { return tk.Yield() })
	if c.State() != StateReady {
		t.Fatalf("fresh coroutine state = %v, want Ready", c.State())
	}
	if err := c.Resume(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateSuspended {
		t.Fatalf("state = %v, want Suspended", c.State())
	}
	if err := c.Resume(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateFinished {
		t.Fatalf("state = %v, want Finished", c.State())
	}
}

// BenchmarkYieldResume measures one full suspend/resume round trip.
// The handoff is two channel operations and must not allocate.
func BenchmarkYieldResume(b *testing.B) {
	c := New(func(tk *Task) error {
		for {
			if err := tk.Yield(); err != nil {
				return nil
			}
		}
	})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Resume(); err != nil {
			b.Fatal(err)
		}
	}
}
