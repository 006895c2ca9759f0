package client

import (
	"context"
	"log/slog"
	"sync"
)

type ProbeState int

const (
	StateUnknown ProbeState = iota
	StateAvailable
	StateUnavailable
)

// Prober decides whether the gateway targets the remote API or the local
// store. It is a degrade-once latch, not a circuit breaker: the first probe
// result is cached for the process lifetime, and any later remote failure
// forces a permanent transition to unavailable. There is no re-probe policy;
// recovery requires a restart.
type Prober struct {
	mu     sync.Mutex
	state  ProbeState
	health func(ctx context.Context) error
}

func NewProber(health func(ctx context.Context) error) *Prober {
	return &Prober{health: health}
}

// Available probes the backend on first use and reports the cached verdict
// afterwards.
func (p *Prober) Available(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateUnknown {
		if err := p.health(ctx); err != nil {
			slog.Warn("backend unavailable, using local storage", "error", err)
			p.state = StateUnavailable
		} else {
			slog.Info("backend available, using remote storage")
			p.state = StateAvailable
		}
	}

	return p.state == StateAvailable
}

// MarkUnavailable latches the prober to unavailable for the rest of the
// process lifetime.
func (p *Prober) MarkUnavailable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateUnavailable {
		slog.Warn("remote store degraded, switching to local storage permanently")
		p.state = StateUnavailable
	}
}

func (p *Prober) State() ProbeState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
