// Package history keeps an append-only log of finished breaks in SQLite,
// feeding the stats view with per-day counts and recent completions.
package history

import (
	"database/sql"
	"embed"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sql.DB }

// Completion is one finished break.
type Completion struct {
	ID              int64
	ReminderID      string
	Name            string
	StartedAt       time.Time
	FinishedAt      time.Time
	DurationSeconds int
	Day             string // YYYY-MM-DD local day the break finished
}

// DayCount aggregates completions for one calendar day.
type DayCount struct {
	Day   string
	Count int
}

func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

func (d *DB) Append(c Completion) error {
	_, err := d.Exec(`
        INSERT INTO completions (reminder_id, name, started_at, finished_at, duration_s, day)
        VALUES (?,?,?,?,?,?)
    `, c.ReminderID, c.Name, c.StartedAt.Unix(), c.FinishedAt.Unix(), c.DurationSeconds, c.Day)
	return err
}

// Recent returns the newest completions, most recent first.
func (d *DB) Recent(limit int) ([]Completion, error) {
	rows, err := d.Query(`
        SELECT id, reminder_id, name, started_at, finished_at, duration_s, day
        FROM completions
        ORDER BY finished_at DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Completion
	for rows.Next() {
		var c Completion
		var startedAt, finishedAt int64
		if err := rows.Scan(&c.ID, &c.ReminderID, &c.Name, &startedAt, &finishedAt, &c.DurationSeconds, &c.Day); err != nil {
			return nil, err
		}
		c.StartedAt = time.Unix(startedAt, 0)
		c.FinishedAt = time.Unix(finishedAt, 0)
		res = append(res, c)
	}
	return res, rows.Err()
}

// CountOn returns how many breaks finished on the given local day.
func (d *DB) CountOn(day string) (int, error) {
	var n int
	err := d.QueryRow(`SELECT COUNT(*) FROM completions WHERE day = ?`, day).Scan(&n)
	return n, err
}

// LastDays returns per-day completion counts for the `days` calendar days
// ending at `end` inclusive, oldest first. Days with no completions are
// included with a zero count so the caller can render a contiguous run.
func (d *DB) LastDays(end time.Time, days int) ([]DayCount, error) {
	counts := make(map[string]int, days)

	first := end.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	rows, err := d.Query(`
        SELECT day, COUNT(*) FROM completions
        WHERE day >= ?
        GROUP BY day
    `, first)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format("2006-01-02")
		res = append(res, DayCount{Day: day, Count: counts[day]})
	}
	return res, nil
}

// Total returns the number of completions ever logged.
func (d *DB) Total() (int, error) {
	var n int
	err := d.QueryRow(`SELECT COUNT(*) FROM completions`).Scan(&n)
	return n, err
}

// Reset drops every logged completion.
func (d *DB) Reset() error {
	_, err := d.Exec(`DELETE FROM completions`)
	return err
}
