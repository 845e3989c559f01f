package pwa

import (
	"context"
	"sync"
)

// DeferredPrompt is the server-side stand-in for the browser's deferred
// install prompt: a handle whose user choice arrives later, exactly once.
type DeferredPrompt struct {
	once sync.Once
	ch   chan Outcome
}

func NewDeferredPrompt() *DeferredPrompt {
	return &DeferredPrompt{ch: make(chan Outcome, 1)}
}

// Prompt suspends until Resolve delivers the user's choice or the context
// is abandoned.
func (p *DeferredPrompt) Prompt(ctx context.Context) (Outcome, error) {
	select {
	case o := <-p.ch:
		return o, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Resolve records the user's choice. Only the first call counts.
func (p *DeferredPrompt) Resolve(o Outcome) {
	p.once.Do(func() {
		p.ch <- o
	})
}
