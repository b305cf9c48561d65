// Package storage persists one user's calendar document: habits, the manual
// events, and preferences. Habit-derived events are never written; they are
// recomputed from the habits on load.
package storage

import (
	"strings"

	"agendai/internal/models"
)

// UserData is the persisted document shape.
type UserData struct {
	Habits      []models.Habit     `json:"habits"`
	Events      []models.Event     `json:"events"` // manual events only
	Preferences models.Preferences `json:"preferences"`
}

// Provider is the storage contract. Saves have merge semantics: writing
// preferences alone must not clobber habits or events, and vice versa.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// User document
	LoadUserData() (UserData, error)
	SaveUserData(habits []models.Habit, manualEvents []models.Event) error

	// Preferences
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	// Utils
	GetConfigPath() string
}

// NewStore picks a backend from the file extension: .json files get the
// plain-text store, everything else SQLite.
func NewStore(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
