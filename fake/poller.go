// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT
//
// In-memory Poller for tests: readiness is armed by the test itself
// through MakeReady instead of an OS polling backend.

package fake

import (
	"sync"
	"time"

	"github.com/momentics/corun/api"
)

// Ensure compile-time interface compliance.
var _ api.Poller = (*Poller)(nil)

// Poller is a test double for api.Poller.
type Poller struct {
	mu        sync.Mutex
	nextToken api.Token
	interests map[api.Token]bool // true once armed ready
}

// NewPoller creates an empty fake poller.
func NewPoller() *Poller {
	return &Poller{interests: make(map[api.Token]bool)}
}

// Register records interest and returns a fresh token.
func (p *Poller) Register(fd uintptr, dir api.Direction) (api.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextToken++
	tok := p.nextToken
	p.interests[tok] = false
	return tok, nil
}

// MakeReady arms a token so the next Poll reports it.
func (p *Poller) MakeReady(tok api.Token) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.interests[tok]; ok {
		p.interests[tok] = true
	}
}

// Poll returns armed tokens. With no armed token it waits up to
// timeout, polling the armed set every millisecond; a negative timeout
// waits until something is armed.
func (p *Poller) Poll(timeout time.Duration) ([]api.Token, error) {
	deadline := time.Now().Add(timeout)
	for {
		p.mu.Lock()
		var ready []api.Token
		for tok, armed := range p.interests {
			if armed {
				ready = append(ready, tok)
			}
		}
		p.mu.Unlock()
		if len(ready) > 0 {
			return ready, nil
		}
		if timeout >= 0 && !time.Now().Before(deadline) {
			return nil, nil
		}
		time.Sleep(time.Millisecond)
	}
}

// Deregister withdraws interest for a token.
func (p *Poller) Deregister(tok api.Token) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.interests, tok)
	return nil
}

// Pending returns the number of outstanding registrations.
func (p *Poller) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.interests)
}
