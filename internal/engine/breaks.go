package engine

import (
	"log"
	"time"

	"respite/internal/history"
	"respite/internal/models"
)

// Start moves a pending reminder into a running break.
func (e *Engine) Start(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.pending[id]; !ok {
		return
	}
	r := e.findLocked(id)
	if r == nil {
		// Reminder deleted while pending; drop the stale entry.
		delete(e.pending, id)
		return
	}

	now := e.clock.Now()
	delete(e.pending, id)
	e.active[id] = models.ActiveBreak{
		ID:              id,
		Name:            r.Name,
		StartedAt:       now,
		DurationSeconds: r.DurationMinutes * 60,
	}

	// One-time reminders consume today's occurrence at start; recurring
	// ones were already stamped when they came due.
	if r.IsOneTime() {
		r.LastTriggered = now
	}
	e.saveRemindersLocked()
}

// Skip dismisses a pending break. The reminder is stamped so the next
// due computation starts over; stats are untouched.
func (e *Engine) Skip(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.pending[id]; !ok {
		return
	}
	delete(e.pending, id)

	if r := e.findLocked(id); r != nil {
		r.LastTriggered = e.clock.Now()
		e.saveRemindersLocked()
	}
}

// Snooze dismisses a pending break and schedules it to fire again after
// the given number of minutes.
func (e *Engine) Snooze(id string, minutes int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.pending[id]; !ok {
		return
	}
	delete(e.pending, id)

	r := e.findLocked(id)
	if r == nil {
		return
	}

	now := e.clock.Now()
	snooze := time.Duration(minutes) * time.Minute
	switch r.Kind {
	case models.KindRecurring:
		// Backdating by interval-minus-snooze makes the usual due
		// formula fire at exactly now+snooze.
		r.LastTriggered = now.Add(snooze - r.Interval())
	case models.KindOneTime:
		// Push today's fire time forward. A snooze across midnight
		// lands on the new day's clock.
		r.TriggerTime = now.Add(snooze).Format("15:04")
		r.LastTriggered = time.Time{}
	}
	e.saveRemindersLocked()
}

// Finish ends a running break. Later calls with the same id find nothing
// and leave stats untouched, so racing callers are harmless.
func (e *Engine) Finish(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finishLocked(id, e.clock.Now())
}

func (e *Engine) finishLocked(id string, now time.Time) {
	b, ok := e.active[id]
	if !ok {
		return
	}
	delete(e.active, id)
	if e.focusID == id {
		e.focusID = ""
	}

	if r := e.findLocked(id); r != nil {
		r.LastTriggered = now
		e.saveRemindersLocked()
	}

	// A completed break always counts, even when its reminder was
	// deleted mid-break.
	e.stats.RecordCompletion(now)
	e.saveStatsLocked()

	if e.hist != nil {
		err := e.hist.Append(history.Completion{
			ReminderID:      b.ID,
			Name:            b.Name,
			StartedAt:       b.StartedAt,
			FinishedAt:      now,
			DurationSeconds: b.DurationSeconds,
			Day:             now.Format("2006-01-02"),
		})
		if err != nil {
			log.Printf("history append: %v", err)
		}
	}
}

// Focus marks one running break as the immersive view target.
func (e *Engine) Focus(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.active[id]; ok {
		e.focusID = id
	}
}

func (e *Engine) ClearFocus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focusID = ""
}

// Focused returns the break the focus view should render, if any.
func (e *Engine) Focused() (models.ActiveBreak, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.active[e.focusID]
	return b, ok
}
