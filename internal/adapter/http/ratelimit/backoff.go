package ratelimit

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Backoff computes an exponential delay to apply after failed login
// attempts, with jitter so clients don't retry in lockstep.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func NewBackoff(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
		Jitter: true,
	}
}

func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt <= 0 {
		return b.Min
	}

	duration := float64(b.Min) * math.Pow(b.Factor, float64(attempt-1))
	if duration > float64(b.Max) {
		duration = float64(b.Max)
	}

	if b.Jitter {
		duration = duration * (0.5 + rand.Float64()*0.5)
	}

	return time.Duration(duration)
}

// LoginAttemptTracker counts consecutive login failures per client.
type LoginAttemptTracker struct {
	mu       sync.Mutex
	attempts map[string]int
}

func NewLoginAttemptTracker() *LoginAttemptTracker {
	return &LoginAttemptTracker{
		attempts: make(map[string]int),
	}
}

func (t *LoginAttemptTracker) GetFailedAttempts(clientID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts[clientID]
}

func (t *LoginAttemptTracker) RecordFailure(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[clientID]++
}

func (t *LoginAttemptTracker) RecordSuccess(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, clientID)
}
