package llm

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit bounds strategic queries with both a simple per-tick budget
// and a per-second token bucket (not a sliding window), mirroring the dual limiter shape used
// for outbound API calls elsewhere in this stack.
type RateLimit struct {
	PerTick   int
	PerSecond float64
}

// DefaultRateLimit allows a modest burst of dispatches per tick without
// saturating the configured per-second budget.
func DefaultRateLimit() RateLimit {
	return RateLimit{PerTick: 4, PerSecond: 10}
}

// limiter tracks a per-tick counter (reset at the start of every tick)
// alongside a real-time token bucket that refills at PerSecond tokens per
// second with a burst equal to the per-tick budget, since strategic queries leave
// the simulation's deterministic core the moment they touch a network
// client.
type limiter struct {
	mu         sync.Mutex
	tickBudget int
	used       int
	perSecond  *rate.Limiter
}

func newLimiter(cfg RateLimit) *limiter {
	perTick := cfg.PerTick
	if perTick <= 0 {
		perTick = 1
	}
	perSecond := cfg.PerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &limiter{
		tickBudget: perTick,
		perSecond:  rate.NewLimiter(rate.Limit(perSecond), perTick),
	}
}

// resetTickBudget refills the per-tick counter at the start of a tick.
func (l *limiter) resetTickBudget() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.used = 0
}

// allow reports whether one more dispatch fits within both the
// remaining per-tick budget and the per-second token bucket.
func (l *limiter) allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used >= l.tickBudget {
		return false
	}
	if !l.perSecond.AllowN(time.Now(), 1) {
		return false
	}
	l.used++
	return true
}
