package models

import (
	"time"
)

// ActiveBreak is a running break timer. StartedAt and DurationSeconds are
// fixed when the break starts; everything else about the timer is derived.
type ActiveBreak struct {
	ID              string    `json:"id"` // originating reminder id
	Name            string    `json:"name"`
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

// Remaining returns the seconds left at now, recomputed from StartedAt on
// every call. It keeps going negative after expiry; callers clamp for
// display and treat <= 0 as expired.
func (b ActiveBreak) Remaining(now time.Time) int {
	return b.DurationSeconds - int(now.Sub(b.StartedAt)/time.Second)
}

func (b ActiveBreak) Expired(now time.Time) bool {
	return b.Remaining(now) <= 0
}

// Percent returns the elapsed fraction in [0, 1] for progress rendering.
func (b ActiveBreak) Percent(now time.Time) float64 {
	if b.DurationSeconds <= 0 {
		return 1
	}
	p := 1 - float64(b.Remaining(now))/float64(b.DurationSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
