package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"respite/internal/models"
)

// Store persists application state as one JSON file per key under the
// data directory. A missing file always reads back as the zero value.
type Store struct {
	dataDir string
}

// New opens the default store under ~/.respite.
func New() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(homeDir, ".respite"))
}

// Open opens a store rooted at dataDir, creating the directory if needed.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &Store{dataDir: dataDir}, nil
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dataDir
}

func (s *Store) remindersFile() string {
	return filepath.Join(s.dataDir, "reminders.json")
}

func (s *Store) statsFile() string {
	return filepath.Join(s.dataDir, "stats.json")
}

func (s *Store) dayFile() string {
	return filepath.Join(s.dataDir, "day.json")
}

func (s *Store) profileFile() string {
	return filepath.Join(s.dataDir, "profile.json")
}

func (s *Store) quoteFile() string {
	return filepath.Join(s.dataDir, "quote.json")
}

func (s *Store) Reminders() ([]models.Reminder, error) {
	data, err := os.ReadFile(s.remindersFile())
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Reminder{}, nil
		}
		return nil, err
	}

	var reminders []models.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		return nil, err
	}

	return reminders, nil
}

func (s *Store) SaveReminders(reminders []models.Reminder) error {
	data, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.remindersFile(), data, 0644)
}

func (s *Store) Stats() (models.Stats, error) {
	data, err := os.ReadFile(s.statsFile())
	if err != nil {
		if os.IsNotExist(err) {
			return models.Stats{}, nil
		}
		return models.Stats{}, err
	}

	var stats models.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return models.Stats{}, err
	}

	return stats, nil
}

func (s *Store) SaveStats(stats models.Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.statsFile(), data, 0644)
}

type dayState struct {
	Active bool `json:"active"`
}

func (s *Store) DayActive() (bool, error) {
	data, err := os.ReadFile(s.dayFile())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	var day dayState
	if err := json.Unmarshal(data, &day); err != nil {
		return false, err
	}

	return day.Active, nil
}

func (s *Store) SaveDayActive(active bool) error {
	data, err := json.MarshalIndent(dayState{Active: active}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.dayFile(), data, 0644)
}

// Profile reads the user profile, writing the defaults on first read so
// later sessions skip onboarding.
func (s *Store) Profile() (models.Profile, error) {
	data, err := os.ReadFile(s.profileFile())
	if err != nil {
		if os.IsNotExist(err) {
			profile := models.DefaultProfile()
			if err := s.SaveProfile(profile); err != nil {
				return profile, err
			}
			return profile, nil
		}
		return models.Profile{}, err
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func (s *Store) SaveProfile(profile models.Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.profileFile(), data, 0644)
}

func (s *Store) Quote() (models.QuoteCache, error) {
	data, err := os.ReadFile(s.quoteFile())
	if err != nil {
		if os.IsNotExist(err) {
			return models.QuoteCache{}, nil
		}
		return models.QuoteCache{}, err
	}

	var quote models.QuoteCache
	if err := json.Unmarshal(data, &quote); err != nil {
		return models.QuoteCache{}, err
	}

	return quote, nil
}

func (s *Store) SaveQuote(quote models.QuoteCache) error {
	data, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.quoteFile(), data, 0644)
}

// IsFirstTime reports whether the app has ever been set up on this machine.
func (s *Store) IsFirstTime() bool {
	if _, err := os.Stat(s.profileFile()); os.IsNotExist(err) {
		return true
	}
	return false
}

// ResetAllData removes every data file. Missing files are fine.
func (s *Store) ResetAllData() error {
	files := []string{
		s.remindersFile(),
		s.statsFile(),
		s.dayFile(),
		s.profileFile(),
		s.quoteFile(),
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
