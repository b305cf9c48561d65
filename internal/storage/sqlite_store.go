package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"agendai/internal/models"
)

// migrations are applied in order; the schema version is the applied count,
// tracked in PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE habits (
		id            TEXT PRIMARY KEY,
		original_text TEXT NOT NULL,
		active        INTEGER NOT NULL DEFAULT 1,
		title         TEXT NOT NULL,
		weekdays      TEXT NOT NULL,
		start_time    TEXT NOT NULL DEFAULT '',
		end_time      TEXT NOT NULL DEFAULT '',
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		category      TEXT NOT NULL
	);
	CREATE TABLE events (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		category    TEXT NOT NULL,
		date        TEXT NOT NULL,
		time        TEXT NOT NULL DEFAULT '',
		end_time    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		reminders   TEXT NOT NULL DEFAULT '{}'
	);
	CREATE TABLE preferences (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		work_start TEXT NOT NULL,
		work_end   TEXT NOT NULL,
		reminders  TEXT NOT NULL DEFAULT '{}'
	);`,
	`CREATE INDEX idx_events_date ON events(date);`,
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.SavePreferences(models.DefaultPreferences())
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'agendai init' first")
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("enabling WAL mode: %w", err)
	}
	s.db = db
	if err := s.migrate(); err != nil {
		db.Close()
		s.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) LoadUserData() (UserData, error) {
	data := UserData{}

	rows, err := s.db.Query(`SELECT id, original_text, active, title, weekdays,
		start_time, end_time, start_date, end_date, category FROM habits`)
	if err != nil {
		return data, fmt.Errorf("loading habits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h models.Habit
		var active int
		var weekdaysJSON string
		if err := rows.Scan(&h.ID, &h.OriginalText, &active, &h.Title, &weekdaysJSON,
			&h.StartTime, &h.EndTime, &h.StartDate, &h.EndDate, &h.Category); err != nil {
			return data, fmt.Errorf("scanning habit: %w", err)
		}
		h.Active = active != 0
		if err := json.Unmarshal([]byte(weekdaysJSON), &h.Weekdays); err != nil {
			return data, fmt.Errorf("habit %s has corrupt weekdays: %w", h.ID, err)
		}
		data.Habits = append(data.Habits, h)
	}
	if err := rows.Err(); err != nil {
		return data, err
	}

	eventRows, err := s.db.Query(`SELECT id, title, category, date, time,
		end_time, description, reminders FROM events`)
	if err != nil {
		return data, fmt.Errorf("loading events: %w", err)
	}
	defer eventRows.Close()
	for eventRows.Next() {
		var e models.Event
		var remindersJSON string
		if err := eventRows.Scan(&e.ID, &e.Title, &e.Category, &e.Date, &e.Time,
			&e.EndTime, &e.Description, &remindersJSON); err != nil {
			return data, fmt.Errorf("scanning event: %w", err)
		}
		if err := json.Unmarshal([]byte(remindersJSON), &e.Reminders); err != nil {
			return data, fmt.Errorf("event %s has corrupt reminders: %w", e.ID, err)
		}
		data.Events = append(data.Events, e)
	}
	if err := eventRows.Err(); err != nil {
		return data, err
	}

	prefs, err := s.GetPreferences()
	if err != nil {
		return data, err
	}
	data.Preferences = prefs
	return data, nil
}

// SaveUserData replaces the habit and event tables in one transaction,
// leaving the preferences row untouched.
func (s *SQLiteStore) SaveUserData(habits []models.Habit, manualEvents []models.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		return err
	}

	for _, h := range habits {
		weekdaysJSON, err := json.Marshal(h.Weekdays)
		if err != nil {
			return err
		}
		active := 0
		if h.Active {
			active = 1
		}
		if _, err := tx.Exec(`INSERT INTO habits (id, original_text, active, title,
			weekdays, start_time, end_time, start_date, end_date, category)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.OriginalText, active, h.Title, string(weekdaysJSON),
			h.StartTime, h.EndTime, h.StartDate, h.EndDate, string(h.Category)); err != nil {
			return fmt.Errorf("saving habit %s: %w", h.ID, err)
		}
	}

	for _, e := range manualEvents {
		if e.FromHabit {
			continue // derived events are never persisted
		}
		remindersJSON, err := json.Marshal(e.Reminders)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO events (id, title, category, date, time,
			end_time, description, reminders) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Title, string(e.Category), e.Date, e.Time, e.EndTime,
			e.Description, string(remindersJSON)); err != nil {
			return fmt.Errorf("saving event %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetPreferences() (models.Preferences, error) {
	var p models.Preferences
	var remindersJSON string
	err := s.db.QueryRow(`SELECT work_start, work_end, reminders FROM preferences WHERE id = 1`).
		Scan(&p.WorkStart, &p.WorkEnd, &remindersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return p, fmt.Errorf("loading preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(remindersJSON), &p.Reminders); err != nil {
		return p, fmt.Errorf("corrupt reminder preferences: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) SavePreferences(p models.Preferences) error {
	remindersJSON, err := json.Marshal(p.Reminders)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO preferences (id, work_start, work_end, reminders)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET work_start = excluded.work_start,
			work_end = excluded.work_end, reminders = excluded.reminders`,
		p.WorkStart, p.WorkEnd, string(remindersJSON))
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
