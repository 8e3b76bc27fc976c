// Package ratelimit throttles repeated login failures per client.
package ratelimit

import (
	"sync"
	"time"
)

type AttemptRecord struct {
	Count        int
	LastAttempt  time.Time
	BlockedUntil time.Time
}

// LoginRateLimiter blocks a client after too many login attempts inside a
// sliding window.
type LoginRateLimiter struct {
	mu             sync.Mutex
	attempts       map[string]*AttemptRecord
	maxAttempts    int
	windowDuration time.Duration
	blockDuration  time.Duration
}

func NewLoginRateLimiter(maxAttempts int, windowDuration, blockDuration time.Duration) *LoginRateLimiter {
	limiter := &LoginRateLimiter{
		attempts:       make(map[string]*AttemptRecord),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		blockDuration:  blockDuration,
	}

	go limiter.cleanup()

	return limiter
}

// Check records an attempt and reports whether the client may proceed. When
// blocked it returns the remaining block duration.
func (r *LoginRateLimiter) Check(clientID string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	record, exists := r.attempts[clientID]
	if !exists {
		record = &AttemptRecord{LastAttempt: now}
		r.attempts[clientID] = record
	}

	if now.Before(record.BlockedUntil) {
		return false, record.BlockedUntil.Sub(now)
	}

	if now.Sub(record.LastAttempt) > r.windowDuration {
		record.Count = 0
	}

	record.Count++
	record.LastAttempt = now

	if record.Count > r.maxAttempts {
		record.BlockedUntil = now.Add(r.blockDuration)
		return false, r.blockDuration
	}

	return true, 0
}

func (r *LoginRateLimiter) Reset(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.attempts, clientID)
}

func (r *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for clientID, record := range r.attempts {
			if now.Sub(record.LastAttempt) > r.windowDuration*2 && now.After(record.BlockedUntil) {
				delete(r.attempts, clientID)
			}
		}
		r.mu.Unlock()
	}
}
