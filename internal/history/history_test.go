package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppendAndRecent(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		finished := base.Add(time.Duration(i) * time.Hour)
		err := db.Append(Completion{
			ReminderID:      "r1",
			Name:            "stretch",
			StartedAt:       finished.Add(-5 * time.Minute),
			FinishedAt:      finished,
			DurationSeconds: 300,
			Day:             finished.Format("2006-01-02"),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	recent, err := db.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recent))
	}
	if !recent[0].FinishedAt.After(recent[1].FinishedAt) {
		t.Errorf("recent not ordered newest first: %v then %v", recent[0].FinishedAt, recent[1].FinishedAt)
	}
	if recent[0].Name != "stretch" || recent[0].DurationSeconds != 300 {
		t.Errorf("row fields lost: %+v", recent[0])
	}

	total, err := db.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestCountOn(t *testing.T) {
	db := openTestDB(t)

	monday := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	tuesday := monday.AddDate(0, 0, 1)

	for _, finished := range []time.Time{monday, monday.Add(2 * time.Hour), tuesday} {
		err := db.Append(Completion{
			ReminderID:      "r1",
			Name:            "stretch",
			StartedAt:       finished.Add(-5 * time.Minute),
			FinishedAt:      finished,
			DurationSeconds: 300,
			Day:             finished.Format("2006-01-02"),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := db.CountOn("2025-06-02")
	if err != nil {
		t.Fatalf("count on: %v", err)
	}
	if n != 2 {
		t.Errorf("monday count = %d, want 2", n)
	}

	n, err = db.CountOn("2025-06-04")
	if err != nil {
		t.Fatalf("count on empty day: %v", err)
	}
	if n != 0 {
		t.Errorf("empty day count = %d, want 0", n)
	}
}

func TestLastDaysFillsGaps(t *testing.T) {
	db := openTestDB(t)

	end := time.Date(2025, 6, 4, 18, 0, 0, 0, time.Local)
	// Completions on the 2nd and 4th, nothing on the 3rd.
	for _, finished := range []time.Time{end.AddDate(0, 0, -2), end} {
		err := db.Append(Completion{
			ReminderID:      "r1",
			Name:            "stretch",
			StartedAt:       finished.Add(-5 * time.Minute),
			FinishedAt:      finished,
			DurationSeconds: 300,
			Day:             finished.Format("2006-01-02"),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	counts, err := db.LastDays(end, 3)
	if err != nil {
		t.Fatalf("last days: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 days, got %d", len(counts))
	}

	want := []DayCount{
		{Day: "2025-06-02", Count: 1},
		{Day: "2025-06-03", Count: 0},
		{Day: "2025-06-04", Count: 1},
	}
	for i, w := range want {
		if counts[i] != w {
			t.Errorf("day %d = %+v, want %+v", i, counts[i], w)
		}
	}
}

func TestResetDropsAllRows(t *testing.T) {
	db := openTestDB(t)

	finished := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	err := db.Append(Completion{
		ReminderID:      "r1",
		Name:            "stretch",
		StartedAt:       finished.Add(-5 * time.Minute),
		FinishedAt:      finished,
		DurationSeconds: 300,
		Day:             finished.Format("2006-01-02"),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := db.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	total, err := db.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 0 {
		t.Errorf("total after reset = %d, want 0", total)
	}
}
