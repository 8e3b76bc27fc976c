package ratelimit

import (
	"testing"
	"time"
)

func TestBackoff_Duration(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, 5*time.Second, 2.0)
	b.Jitter = false

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{10, 5 * time.Second}, // capped at Max
	}

	for _, tt := range tests {
		if got := b.Duration(tt.attempt); got != tt.want {
			t.Errorf("Duration(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoff_JitterStaysInRange(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, 5*time.Second, 2.0)

	for i := 0; i < 50; i++ {
		d := b.Duration(3)
		// Base for attempt 3 is 400ms; jitter scales by [0.5, 1.0).
		if d < 200*time.Millisecond || d > 400*time.Millisecond {
			t.Fatalf("jittered duration %v out of range", d)
		}
	}
}
