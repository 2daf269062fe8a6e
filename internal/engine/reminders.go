package engine

import (
	"respite/internal/models"
)

// CreateRecurring adds a reminder that fires every intervalMinutes while a
// day is running.
func (e *Engine) CreateRecurring(name string, durationMinutes, intervalMinutes int) (models.Reminder, error) {
	return e.add(models.NewRecurring(name, durationMinutes, intervalMinutes, e.clock.Now()))
}

// CreateOneTime adds a reminder that fires once per day at triggerTime.
func (e *Engine) CreateOneTime(name string, durationMinutes int, triggerTime string) (models.Reminder, error) {
	return e.add(models.NewOneTime(name, durationMinutes, triggerTime, e.clock.Now()))
}

func (e *Engine) add(r models.Reminder) (models.Reminder, error) {
	if err := r.Validate(); err != nil {
		return models.Reminder{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// A recurring reminder born while the day is already running counts
	// its first interval from creation, same as toggling one on mid-day.
	if r.IsRecurring() && e.dayActive {
		r.LastTriggered = e.clock.Now()
	}

	e.reminders = append(e.reminders, r)
	e.saveRemindersLocked()
	e.Notify()
	return r, nil
}

// DeleteReminder removes a reminder. Its pending entry disappears with it;
// a break already running keeps going and still counts when it finishes.
func (e *Engine) DeleteReminder(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.reminders {
		if e.reminders[i].ID == id {
			e.reminders = append(e.reminders[:i], e.reminders[i+1:]...)
			delete(e.pending, id)
			e.saveRemindersLocked()
			return
		}
	}
}

// ToggleActive flips whether a reminder is eligible for scheduling.
func (e *Engine) ToggleActive(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.findLocked(id)
	if r == nil {
		return
	}

	r.Active = !r.Active
	if r.Active && r.IsRecurring() && e.dayActive {
		// Count the first interval from this moment, not from whenever
		// the reminder last fired.
		r.LastTriggered = e.clock.Now()
	}
	e.saveRemindersLocked()
	e.Notify()
}

// SetTriggerTime reschedules a one-time reminder to a new HH:MM.
func (e *Engine) SetTriggerTime(id, triggerTime string) error {
	if _, _, err := models.ParseClock(triggerTime); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.findLocked(id)
	if r == nil || !r.IsOneTime() {
		return nil
	}
	r.TriggerTime = triggerTime
	e.saveRemindersLocked()
	e.Notify()
	return nil
}

// StartDay turns the session flag on and primes never-triggered recurring
// reminders so their intervals count from day start.
func (e *Engine) StartDay() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dayActive {
		return
	}
	e.dayActive = true

	now := e.clock.Now()
	changed := false
	for i := range e.reminders {
		if e.reminders[i].IsRecurring() && e.reminders[i].LastTriggered.IsZero() {
			e.reminders[i].LastTriggered = now
			changed = true
		}
	}
	if changed {
		e.saveRemindersLocked()
	}
	e.saveDayLocked()
	e.Notify()
}

// EndDay turns the session flag off. Recurring reminders stop coming due;
// anything already pending or running is left alone.
func (e *Engine) EndDay() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dayActive {
		return
	}
	e.dayActive = false
	e.saveDayLocked()
}
