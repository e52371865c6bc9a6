// File: control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe tuning configuration with TOML loading and hot-reload
// propagation.

package control

import (
	"sync"

	"github.com/BurntSushi/toml"
)

// Tuning holds the runtime knobs. Zero values select the defaults.
type Tuning struct {
	// ChannelBufferHint is the default capacity used when a channel is
	// created with a negative capacity.
	ChannelBufferHint int `toml:"channel_buffer_hint"`

	// PollBatchHint caps how many readiness tokens one poll pass handles.
	PollBatchHint int `toml:"poll_batch_hint"`

	// SpinYieldEvery bounds busy-wait rounds before yielding the thread.
	SpinYieldEvery int `toml:"spin_yield_every"`
}

// DefaultTuning returns the built-in defaults.
func DefaultTuning() Tuning {
	return Tuning{
		ChannelBufferHint: 16,
		PollBatchHint:     64,
		SpinYieldEvery:    64,
	}
}

// Config is a dynamic tuning store with atomic snapshot and listener
// support.
type Config struct {
	mu        sync.RWMutex
	tuning    Tuning
	listeners []func(Tuning)
}

// NewConfig initializes a config store with the defaults.
func NewConfig() *Config {
	return &Config{tuning: DefaultTuning()}
}

// Snapshot returns a copy of the current tuning.
func (c *Config) Snapshot() Tuning {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tuning
}

// Set replaces the tuning and dispatches reload listeners.
func (c *Config) Set(t Tuning) {
	c.mu.Lock()
	c.tuning = t
	listeners := append([]func(Tuning){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(t)
	}
}

// FromTOML loads tuning from a TOML file and applies it. Fields absent
// from the file keep their current values.
func (c *Config) FromTOML(path string) error {
	t := c.Snapshot()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return err
	}
	c.Set(t)
	return nil
}

// OnReload registers a listener invoked after every Set.
func (c *Config) OnReload(fn func(Tuning)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}
