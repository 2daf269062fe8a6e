package models

import (
	"time"
)

type Stats struct {
	Completed          int    `json:"completed"`            // total finished breaks
	Streak             int    `json:"streak"`               // consecutive days with at least one completion
	LastCompletionDate string `json:"last_completion_date"` // YYYY-MM-DD, empty means never
}

// RecordCompletion applies one finished break at now. The completion count
// always grows; the streak only extends across consecutive calendar days.
func (s *Stats) RecordCompletion(now time.Time) {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	switch s.LastCompletionDate {
	case today:
		// streak already counted for today
	case yesterday:
		s.Streak++
	default:
		s.Streak = 1
	}

	s.Completed++
	s.LastCompletionDate = today
}
