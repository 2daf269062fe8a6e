package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"respite/internal/history"
	"respite/internal/storage"
)

// Monday morning, local time. Evaluator tests advance from here.
var testDay = time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)

func newTestEngine(t *testing.T, at time.Time) (*Engine, *clockwork.FakeClock) {
	t.Helper()

	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return newTestEngineWithStore(t, at, store)
}

func newTestEngineWithStore(t *testing.T, at time.Time, store *storage.Store) (*Engine, *clockwork.FakeClock) {
	t.Helper()

	hist, err := history.Open(filepath.Join(store.Dir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { hist.Close() })

	clock := clockwork.NewFakeClockAt(at)
	eng, err := New(store, hist, clock)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng, clock
}

func pendingIDs(e *Engine) map[string]bool {
	ids := make(map[string]bool)
	for _, r := range e.PendingBreaks() {
		ids[r.ID] = true
	}
	return ids
}

func activeIDs(e *Engine) map[string]bool {
	ids := make(map[string]bool)
	for _, b := range e.ActiveBreaks() {
		ids[b.ID] = true
	}
	return ids
}

// assertExclusive fails if any reminder sits in the pending and active
// sets at the same time.
func assertExclusive(t *testing.T, e *Engine) {
	t.Helper()
	active := activeIDs(e)
	for id := range pendingIDs(e) {
		if active[id] {
			t.Fatalf("reminder %s is pending and active at once", id)
		}
	}
}

func TestRecurringDueAtExactInterval(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()

	clock.Advance(45*time.Minute - time.Second)
	eng.Tick()
	if pendingIDs(eng)[r.ID] {
		t.Fatalf("due one second before the interval elapsed")
	}

	clock.Advance(time.Second)
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("not due at exactly the interval boundary")
	}
}

func TestRecurringNeedsRunningDay(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// No day started: hours can pass without the reminder firing.
	clock.Advance(3 * time.Hour)
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("recurring reminder fired without a running day")
	}

	// Starting the day primes the never-triggered reminder; the first
	// interval counts from day start, not from creation.
	eng.StartDay()
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("fired immediately at day start")
	}

	clock.Advance(45 * time.Minute)
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("not due one interval after day start")
	}
}

func TestRecurringStopsWhenDayEnds(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	if _, err := eng.CreateRecurring("stretch", 5, 45); err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()
	eng.EndDay()

	clock.Advance(4 * time.Hour)
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("recurring reminder fired after the day ended")
	}
}

func TestDueDetectionStampsOnce(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()

	clock.Advance(45 * time.Minute)
	for i := 0; i < 5; i++ {
		eng.Tick()
	}
	if got := len(eng.PendingBreaks()); got != 1 {
		t.Fatalf("one occurrence detected %d times", got)
	}

	// The stamp taken at detection is the baseline for the next
	// occurrence.
	got := eng.Reminders()[0]
	if got.ID != r.ID {
		t.Fatalf("unexpected reminder order")
	}
	if !got.LastTriggered.Equal(clock.Now()) {
		t.Errorf("LastTriggered = %v, want detection time %v", got.LastTriggered, clock.Now())
	}
}

func TestOneTimeFiresOncePerDay(t *testing.T) {
	eng, clock := newTestEngine(t, testDay) // 09:00

	r, err := eng.CreateOneTime("lunch walk", 15, "12:30")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clock.Advance(3 * time.Hour) // 12:00
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("fired before the trigger time")
	}

	clock.Advance(30 * time.Minute) // 12:30
	for i := 0; i < 10; i++ {
		eng.Tick()
		clock.Advance(time.Second)
	}
	if !pendingIDs(eng)[r.ID] || len(eng.PendingBreaks()) != 1 {
		t.Fatalf("expected exactly one pending entry, got %d", len(eng.PendingBreaks()))
	}

	// Consume today's occurrence and run the break down.
	eng.Start(r.ID)
	eng.Finish(r.ID)

	clock.Advance(2 * time.Hour)
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("one-time reminder fired twice on the same day")
	}

	// Next day it fires again at the trigger time.
	clock.Advance(22 * time.Hour) // 12:40ish next day
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("one-time reminder did not fire the next day")
	}
}

func TestOneTimeCreatedPastTriggerTimeFiresImmediately(t *testing.T) {
	eng, _ := newTestEngine(t, testDay) // 09:00

	r, err := eng.CreateOneTime("morning pages", 10, "08:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("reminder created past its trigger time should be due")
	}
}

func TestSetTriggerTimeReschedules(t *testing.T) {
	eng, clock := newTestEngine(t, testDay) // 09:00

	r, err := eng.CreateOneTime("lunch walk", 15, "12:30")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := eng.SetTriggerTime(r.ID, "14:00"); err != nil {
		t.Fatalf("set trigger time: %v", err)
	}
	if got := eng.Reminders()[0].TriggerTime; got != "14:00" {
		t.Fatalf("trigger time = %q, want 14:00", got)
	}

	// The old time passes without firing; the new one fires.
	clock.Advance(3*time.Hour + 30*time.Minute) // 12:30
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("fired at the replaced trigger time")
	}
	clock.Advance(90 * time.Minute) // 14:00
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("not due at the new trigger time")
	}

	if err := eng.SetTriggerTime(r.ID, "noon"); err == nil {
		t.Errorf("expected error for an unparseable time")
	}
	if got := eng.Reminders()[0].TriggerTime; got != "14:00" {
		t.Errorf("rejected time overwrote the reminder: %q", got)
	}

	// Recurring reminders and unknown ids are left alone.
	rec, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	if err := eng.SetTriggerTime(rec.ID, "10:00"); err != nil {
		t.Errorf("recurring no-op returned %v", err)
	}
	if err := eng.SetTriggerTime("no-such-id", "10:00"); err != nil {
		t.Errorf("unknown id no-op returned %v", err)
	}
}

func TestInactiveReminderNeverDue(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()
	eng.ToggleActive(r.ID) // off

	clock.Advance(5 * time.Hour)
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("inactive reminder fired")
	}
}

func TestToggleActiveMidDayRebaselines(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()

	clock.Advance(30 * time.Minute)
	eng.ToggleActive(r.ID) // off
	clock.Advance(40 * time.Minute)
	eng.ToggleActive(r.ID) // on again, mid-day

	// The interval counts from reactivation, not from day start.
	clock.Advance(45*time.Minute - time.Second)
	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("fired before a full interval since reactivation")
	}
	clock.Advance(time.Second)
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("not due one interval after reactivation")
	}
}

func TestCarriedStampsFireImmediatelyNextDay(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Fire and skip once so the reminder carries a real stamp, then end
	// the day.
	eng.StartDay()
	clock.Advance(45 * time.Minute)
	eng.Tick()
	eng.Skip(r.ID)
	eng.EndDay()

	// Overnight gap, then a new day begins. The stamp is non-zero so day
	// start does not re-prime it, and a whole interval has long elapsed:
	// it comes due on the first pass.
	clock.Advance(16 * time.Hour)
	eng.StartDay()
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("carried reminder not due at new day start")
	}
}

func TestStartDayPrimingPreventsImmediateFire(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clock.Advance(26 * time.Hour) // created long ago, never triggered
	eng.StartDay()
	eng.Tick()
	if pendingIDs(eng)[r.ID] {
		t.Fatalf("primed reminder fired at day start")
	}
}

func TestCreateRecurringMidDayCountsFromCreation(t *testing.T) {
	eng, clock := newTestEngine(t, testDay)

	eng.StartDay()
	clock.Advance(2 * time.Hour)

	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	eng.Tick()
	if len(eng.PendingBreaks()) != 0 {
		t.Fatalf("fired at creation")
	}

	clock.Advance(45 * time.Minute)
	eng.Tick()
	if !pendingIDs(eng)[r.ID] {
		t.Fatalf("not due one interval after mid-day creation")
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	eng, _ := newTestEngine(t, testDay)

	tests := []struct {
		name string
		run  func() error
	}{
		{"empty name", func() error {
			_, err := eng.CreateRecurring("  ", 5, 45)
			return err
		}},
		{"zero duration", func() error {
			_, err := eng.CreateRecurring("stretch", 0, 45)
			return err
		}},
		{"zero interval", func() error {
			_, err := eng.CreateRecurring("stretch", 5, 0)
			return err
		}},
		{"bad trigger time", func() error {
			_, err := eng.CreateOneTime("lunch", 15, "31:00")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}

	if got := len(eng.Reminders()); got != 0 {
		t.Fatalf("rejected creations left %d reminders behind", got)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	eng, clock := newTestEngineWithStore(t, testDay, store)
	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()
	clock.Advance(45 * time.Minute)
	eng.Tick()
	eng.Start(r.ID)
	clock.Advance(5 * time.Minute)
	eng.Tick() // expires the break, records the completion

	// A new engine over the same store sees the registry, stats and day
	// flag, but no in-flight breaks: those never persist.
	reborn, _ := newTestEngineWithStore(t, clock.Now(), store)
	if got := len(reborn.Reminders()); got != 1 {
		t.Fatalf("reminders after restart = %d, want 1", got)
	}
	if !reborn.DayActive() {
		t.Errorf("day flag lost across restart")
	}
	if got := reborn.Stats().Completed; got != 1 {
		t.Errorf("completed after restart = %d, want 1", got)
	}
	if got := len(reborn.ActiveBreaks()) + len(reborn.PendingBreaks()); got != 0 {
		t.Errorf("in-flight breaks survived restart: %d", got)
	}
}

func TestResetAllClearsEverything(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	eng, clock := newTestEngineWithStore(t, testDay, store)
	r, err := eng.CreateRecurring("stretch", 5, 45)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	eng.StartDay()
	clock.Advance(45 * time.Minute)
	eng.Tick()
	eng.Start(r.ID)
	eng.Finish(r.ID)

	// The first profile read writes the defaults file; reset must remove it.
	if _, err := store.Profile(); err != nil {
		t.Fatalf("profile: %v", err)
	}

	if err := eng.ResetAll(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := len(eng.Reminders()) + len(eng.PendingBreaks()) + len(eng.ActiveBreaks()); got != 0 {
		t.Errorf("state left after reset: %d entries", got)
	}
	if eng.DayActive() {
		t.Errorf("day flag survived reset")
	}
	if got := eng.Stats().Completed; got != 0 {
		t.Errorf("completed after reset = %d, want 0", got)
	}
	if !store.IsFirstTime() {
		t.Errorf("data files survived reset")
	}
}

func TestRunRespondsToNotifyAndCancel(t *testing.T) {
	eng, _ := newTestEngine(t, testDay)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		eng.Run(ctx)
		close(done)
	}()

	// Creating a reminder already past its trigger time nudges the run
	// loop, which should surface it without any clock advance.
	if _, err := eng.CreateOneTime("morning pages", 10, "08:00"); err != nil {
		t.Fatalf("create: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(eng.PendingBreaks()) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("run loop never picked up the due reminder")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run loop did not stop on context cancel")
	}
}
