package models

import (
	"testing"
	"time"
)

func TestActiveBreakRemaining(t *testing.T) {
	started := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	b := ActiveBreak{
		ID:              "r1",
		Name:            "stretch",
		StartedAt:       started,
		DurationSeconds: 300,
	}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"at start", started, 300},
		{"mid break", started.Add(90 * time.Second), 210},
		{"sub-second elapses floor", started.Add(90*time.Second + 900*time.Millisecond), 210},
		{"at expiry", started.Add(300 * time.Second), 0},
		{"past expiry goes negative", started.Add(305 * time.Second), -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Remaining(tt.now); got != tt.want {
				t.Errorf("Remaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestActiveBreakRemainingIsDerived(t *testing.T) {
	started := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	b := ActiveBreak{ID: "r1", StartedAt: started, DurationSeconds: 120}

	// Two independent reads at the same instant must agree, and later
	// reads must never report more time than earlier ones.
	at := started.Add(30 * time.Second)
	first, second := b.Remaining(at), b.Remaining(at)
	if first != second {
		t.Errorf("two reads at the same instant disagree: %d vs %d", first, second)
	}

	prev := b.Remaining(started)
	for _, step := range []time.Duration{time.Second, 5 * time.Second, time.Minute, 3 * time.Minute} {
		cur := b.Remaining(started.Add(step))
		if cur > prev {
			t.Errorf("remaining grew from %d to %d after %v", prev, cur, step)
		}
		prev = cur
	}
}

func TestActiveBreakExpired(t *testing.T) {
	started := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	b := ActiveBreak{ID: "r1", StartedAt: started, DurationSeconds: 60}

	if b.Expired(started.Add(59 * time.Second)) {
		t.Errorf("expired one second early")
	}
	if !b.Expired(started.Add(60 * time.Second)) {
		t.Errorf("not expired at exactly the duration")
	}
	if !b.Expired(started.Add(2 * time.Minute)) {
		t.Errorf("not expired past the duration")
	}
}

func TestActiveBreakPercent(t *testing.T) {
	started := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	b := ActiveBreak{ID: "r1", StartedAt: started, DurationSeconds: 100}

	if got := b.Percent(started); got != 0 {
		t.Errorf("Percent at start = %v, want 0", got)
	}
	if got := b.Percent(started.Add(50 * time.Second)); got != 0.5 {
		t.Errorf("Percent halfway = %v, want 0.5", got)
	}
	if got := b.Percent(started.Add(500 * time.Second)); got != 1 {
		t.Errorf("Percent past expiry = %v, want clamped 1", got)
	}
}
