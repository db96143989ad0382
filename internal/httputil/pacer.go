// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed pause between page fetches. The pause is counted
// from the moment the previous page finished, so a slow page never shortens
// it. It does not adapt to responses and never backs off. A Pacer is not
// safe for concurrent use.
type Pacer struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// NewPacer returns a Pacer that lets the first request through immediately.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	p := &Pacer{interval: interval}
	p.limiter = p.newLimiter()
	return p
}

func (p *Pacer) newLimiter() *rate.Limiter {
	if p.interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(p.interval), 1)
}

// Wait blocks until the next request may start or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Done marks the end of a page fetch. The next Wait returns no sooner than
// interval after this call.
func (p *Pacer) Done() {
	if p.interval <= 0 {
		return
	}
	p.limiter = p.newLimiter()
	p.limiter.Allow()
}
