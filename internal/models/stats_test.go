package models

import (
	"testing"
	"time"
)

func TestRecordCompletionStreaks(t *testing.T) {
	monday := time.Date(2025, 6, 2, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name          string
		start         Stats
		now           time.Time
		wantStreak    int
		wantCompleted int
	}{
		{
			name:          "first completion ever",
			start:         Stats{},
			now:           monday,
			wantStreak:    1,
			wantCompleted: 1,
		},
		{
			name:          "second completion same day keeps streak",
			start:         Stats{Completed: 3, Streak: 2, LastCompletionDate: "2025-06-02"},
			now:           monday.Add(3 * time.Hour),
			wantStreak:    2,
			wantCompleted: 4,
		},
		{
			name:          "completion the day after extends streak",
			start:         Stats{Completed: 4, Streak: 2, LastCompletionDate: "2025-06-01"},
			now:           monday,
			wantStreak:    3,
			wantCompleted: 5,
		},
		{
			name:          "gap day resets streak to one",
			start:         Stats{Completed: 9, Streak: 6, LastCompletionDate: "2025-05-30"},
			now:           monday,
			wantStreak:    1,
			wantCompleted: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.RecordCompletion(tt.now)

			if s.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", s.Streak, tt.wantStreak)
			}
			if s.Completed != tt.wantCompleted {
				t.Errorf("completed = %d, want %d", s.Completed, tt.wantCompleted)
			}
			if s.LastCompletionDate != tt.now.Format("2006-01-02") {
				t.Errorf("last completion date = %q, want %q", s.LastCompletionDate, tt.now.Format("2006-01-02"))
			}
		})
	}
}

func TestRecordCompletionAcrossMonthBoundary(t *testing.T) {
	s := Stats{Completed: 1, Streak: 1, LastCompletionDate: "2025-05-31"}
	s.RecordCompletion(time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local))

	if s.Streak != 2 {
		t.Errorf("streak across month boundary = %d, want 2", s.Streak)
	}
}
