// Package engine owns all scheduling state: the reminder registry, the
// pending/active break queue, completion stats, and the day flag. Every
// mutation goes through one mutex-guarded container and is written through
// to the store; a write failure is logged and the in-memory state stays
// authoritative.
package engine

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"respite/internal/history"
	"respite/internal/models"
	"respite/internal/storage"
)

type Engine struct {
	mu    sync.Mutex
	clock clockwork.Clock
	store *storage.Store
	hist  *history.DB

	reminders []models.Reminder
	pending   map[string]struct{}          // reminder ids awaiting start/skip/snooze
	active    map[string]models.ActiveBreak // running breaks by reminder id
	stats     models.Stats
	dayActive bool
	focusID   string

	notifyCh chan struct{}
}

// New loads persisted state from the store. The pending and active sets
// start empty: breaks do not survive a restart.
func New(store *storage.Store, hist *history.DB, clock clockwork.Clock) (*Engine, error) {
	reminders, err := store.Reminders()
	if err != nil {
		return nil, err
	}
	stats, err := store.Stats()
	if err != nil {
		return nil, err
	}
	dayActive, err := store.DayActive()
	if err != nil {
		return nil, err
	}

	return &Engine{
		clock:     clock,
		store:     store,
		hist:      hist,
		reminders: reminders,
		pending:   make(map[string]struct{}),
		active:    make(map[string]models.ActiveBreak),
		stats:     stats,
		dayActive: dayActive,
		notifyCh:  make(chan struct{}, 1),
	}, nil
}

// Run drives the evaluator until ctx is cancelled: one pass per second,
// plus an immediate pass whenever Notify is called.
func (e *Engine) Run(ctx context.Context) {
	ticker := e.clock.NewTicker(time.Second)
	defer ticker.Stop()

	e.Tick()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.Tick()
		case <-e.notifyCh:
			e.Tick()
		}
	}
}

// Notify triggers an immediate evaluator pass. Non-blocking if a pass is
// already queued.
func (e *Engine) Notify() {
	select {
	case e.notifyCh <- struct{}{}:
	default:
	}
}

// Tick runs one evaluator pass: pull newly due reminders into the pending
// set and finish any active break that has run out.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	e.evaluateLocked(now)
	e.expireLocked(now)
}

func (e *Engine) evaluateLocked(now time.Time) {
	changed := false
	for i := range e.reminders {
		r := e.reminders[i]
		if _, ok := e.pending[r.ID]; ok {
			continue
		}
		if _, ok := e.active[r.ID]; ok {
			continue
		}
		if !e.dueLocked(r, now) {
			continue
		}

		// Stamping and pending-insertion happen in the same pass so a
		// later tick can never flag the same occurrence again.
		e.reminders[i].LastTriggered = now
		e.pending[r.ID] = struct{}{}
		changed = true
	}
	if changed {
		e.saveRemindersLocked()
	}
}

func (e *Engine) dueLocked(r models.Reminder, now time.Time) bool {
	if !r.Active {
		return false
	}

	switch r.Kind {
	case models.KindRecurring:
		// Only while a day is running, and never before the first
		// priming stamp.
		if !e.dayActive || r.LastTriggered.IsZero() {
			return false
		}
		return now.Sub(r.LastTriggered) >= r.Interval()

	case models.KindOneTime:
		target := r.TargetToday(now)
		if now.Before(target) {
			return false
		}
		// Already fired for this calendar day?
		if !r.LastTriggered.IsZero() && models.SameDay(r.LastTriggered, target) {
			return false
		}
		return true
	}

	return false
}

func (e *Engine) expireLocked(now time.Time) {
	for id, b := range e.active {
		if b.Expired(now) {
			e.finishLocked(id, now)
		}
	}
}

// Now exposes the engine clock so views derive remaining time from the
// same time source the evaluator uses.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Reminders returns a copy of the registry, newest first.
func (e *Engine) Reminders() []models.Reminder {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Reminder, len(e.reminders))
	copy(out, e.reminders)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// PendingBreaks returns the reminders waiting on a start/skip/snooze
// decision, in the order they came due.
func (e *Engine) PendingBreaks() []models.Reminder {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []models.Reminder
	for i := range e.reminders {
		if _, ok := e.pending[e.reminders[i].ID]; ok {
			out = append(out, e.reminders[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastTriggered.Before(out[j].LastTriggered)
	})
	return out
}

// ActiveBreaks returns the running breaks, oldest first.
func (e *Engine) ActiveBreaks() []models.ActiveBreak {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.ActiveBreak, 0, len(e.active))
	for _, b := range e.active {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

func (e *Engine) Stats() models.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) DayActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dayActive
}

// ResetAll wipes every persisted and in-memory piece of state: registry,
// queue, stats, day flag, and the completion log.
func (e *Engine) ResetAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.ResetAllData(); err != nil {
		return err
	}
	if e.hist != nil {
		if err := e.hist.Reset(); err != nil {
			return err
		}
	}

	e.reminders = nil
	e.pending = make(map[string]struct{})
	e.active = make(map[string]models.ActiveBreak)
	e.stats = models.Stats{}
	e.dayActive = false
	e.focusID = ""
	return nil
}

func (e *Engine) saveRemindersLocked() {
	if err := e.store.SaveReminders(e.reminders); err != nil {
		log.Printf("save reminders: %v (in-memory state kept)", err)
	}
}

func (e *Engine) saveStatsLocked() {
	if err := e.store.SaveStats(e.stats); err != nil {
		log.Printf("save stats: %v (in-memory state kept)", err)
	}
}

func (e *Engine) saveDayLocked() {
	if err := e.store.SaveDayActive(e.dayActive); err != nil {
		log.Printf("save day flag: %v (in-memory state kept)", err)
	}
}

func (e *Engine) findLocked(id string) *models.Reminder {
	for i := range e.reminders {
		if e.reminders[i].ID == id {
			return &e.reminders[i]
		}
	}
	return nil
}
