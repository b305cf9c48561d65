package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"agendai/internal/models"
)

type document struct {
	Version     int                `json:"version"`
	Habits      []models.Habit     `json:"habits"`
	Events      []models.Event     `json:"events"`
	Preferences models.Preferences `json:"preferences"`
}

type JSONStore struct {
	path  string
	store *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &document{
		Version:     1,
		Preferences: models.DefaultPreferences(),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'agendai init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &document{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Preferences.WorkStart == "" {
		s.store.Preferences = models.DefaultPreferences()
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) LoadUserData() (UserData, error) {
	if s.store == nil {
		return UserData{}, fmt.Errorf("storage not loaded")
	}
	return UserData{
		Habits:      s.store.Habits,
		Events:      s.store.Events,
		Preferences: s.store.Preferences,
	}, nil
}

func (s *JSONStore) SaveUserData(habits []models.Habit, manualEvents []models.Event) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	events := make([]models.Event, 0, len(manualEvents))
	for _, e := range manualEvents {
		if e.FromHabit {
			continue // derived events are never persisted
		}
		events = append(events, e)
	}

	s.store.Habits = habits
	s.store.Events = events
	return s.save()
}

func (s *JSONStore) GetPreferences() (models.Preferences, error) {
	if s.store == nil {
		return models.Preferences{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Preferences, nil
}

func (s *JSONStore) SavePreferences(p models.Preferences) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Preferences = p
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
