package control

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	c := NewConfig()
	got := c.Snapshot()
	want := DefaultTuning()
	if got != want {
		t.Fatalf("fresh config snapshot %+v, want %+v", got, want)
	}
}

func TestConfig_SetDispatchesListeners(t *testing.T) {
	c := NewConfig()
	var seen []Tuning
	c.OnReload(func(tn Tuning) { seen = append(seen, tn) })

	next := DefaultTuning()
	next.ChannelBufferHint = 128
	c.Set(next)

	if c.Snapshot().ChannelBufferHint != 128 {
		t.Fatalf("snapshot hint %d, want 128", c.Snapshot().ChannelBufferHint)
	}
	if len(seen) != 1 || seen[0].ChannelBufferHint != 128 {
		t.Fatalf("listener saw %+v, want one dispatch with hint 128", seen)
	}
}

func TestConfig_FromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	body := "channel_buffer_hint = 32\npoll_batch_hint = 8\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewConfig()
	if err := c.FromTOML(path); err != nil {
		t.Fatal(err)
	}
	got := c.Snapshot()
	if got.ChannelBufferHint != 32 || got.PollBatchHint != 8 {
		t.Fatalf("loaded tuning %+v", got)
	}
	// Absent fields keep their prior values.
	if got.SpinYieldEvery != DefaultTuning().SpinYieldEvery {
		t.Fatalf("spin_yield_every changed to %d despite being absent", got.SpinYieldEvery)
	}
}

func TestConfig_FromTOMLMissingFile(t *testing.T) {
	c := NewConfig()
	if err := c.FromTOML(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("loading a missing file succeeded")
	}
	if c.Snapshot() != DefaultTuning() {
		t.Fatal("failed load mutated the tuning")
	}
}
