package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BreakKind selects how a reminder schedules its next break.
type BreakKind string

const (
	KindRecurring BreakKind = "recurring" // fires every IntervalMinutes while a day is running
	KindOneTime   BreakKind = "one_time"  // fires once per calendar day at TriggerTime
)

type Reminder struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Kind            BreakKind `json:"kind"`
	DurationMinutes int       `json:"duration_minutes"`           // break length in minutes
	IntervalMinutes int       `json:"interval_minutes,omitempty"` // recurring only
	TriggerTime     string    `json:"trigger_time,omitempty"`     // one-time only, "HH:MM" local wall clock
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	LastTriggered   time.Time `json:"last_triggered"` // zero means never triggered
}

func NewRecurring(name string, durationMinutes, intervalMinutes int, now time.Time) Reminder {
	return Reminder{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(name),
		Kind:            KindRecurring,
		DurationMinutes: durationMinutes,
		IntervalMinutes: intervalMinutes,
		Active:          true,
		CreatedAt:       now,
	}
}

func NewOneTime(name string, durationMinutes int, triggerTime string, now time.Time) Reminder {
	return Reminder{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(name),
		Kind:            KindOneTime,
		DurationMinutes: durationMinutes,
		TriggerTime:     triggerTime,
		Active:          true,
		CreatedAt:       now,
	}
}

func (r Reminder) IsRecurring() bool {
	return r.Kind == KindRecurring
}

func (r Reminder) IsOneTime() bool {
	return r.Kind == KindOneTime
}

// Validate checks the fields a reminder needs before it can be scheduled.
// Exactly one of IntervalMinutes/TriggerTime must be set, matching the kind.
func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("reminder name is required")
	}
	if r.DurationMinutes < 1 {
		return fmt.Errorf("break duration must be at least 1 minute")
	}

	switch r.Kind {
	case KindRecurring:
		if r.IntervalMinutes < 1 {
			return fmt.Errorf("interval must be at least 1 minute")
		}
		if r.TriggerTime != "" {
			return fmt.Errorf("recurring reminders cannot have a trigger time")
		}
	case KindOneTime:
		if r.IntervalMinutes != 0 {
			return fmt.Errorf("one-time reminders cannot have an interval")
		}
		if _, _, err := ParseClock(r.TriggerTime); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown reminder kind %q", r.Kind)
	}

	return nil
}

// Interval returns the recurring gap as a duration.
func (r Reminder) Interval() time.Duration {
	return time.Duration(r.IntervalMinutes) * time.Minute
}

// TargetToday places the one-time trigger time on now's calendar day.
func (r Reminder) TargetToday(now time.Time) time.Time {
	h, m, _ := ParseClock(r.TriggerTime)
	return time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("trigger time must be HH:MM (24h), got %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
