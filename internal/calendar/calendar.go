// Package calendar owns the live habit and event collections. Every habit
// mutation synchronously rederives the habit events before returning, so a
// query issued right after a mutation never sees stale derived state.
package calendar

import (
	"fmt"

	"agendai/internal/assistant"
	"agendai/internal/dateutil"
	"agendai/internal/models"
	"agendai/internal/parser"
	"agendai/internal/recurrence"
)

// Service holds one user's ruled-over snapshot. It is not safe for concurrent
// use; the host serializes access.
type Service struct {
	habits      []models.Habit
	events      []models.Event
	preferences models.Preferences
}

// New creates an empty service with default preferences.
func New() *Service {
	return &Service{preferences: models.DefaultPreferences()}
}

// Replace loads a persisted snapshot: habits, the manual events, and
// preferences. Habit events are rederived immediately.
func (s *Service) Replace(habits []models.Habit, manualEvents []models.Event, prefs models.Preferences) error {
	s.habits = habits
	s.events = manualEvents
	s.preferences = prefs
	return s.recompute()
}

func (s *Service) recompute() error {
	events, err := recurrence.Derive(s.habits, s.events)
	if err != nil {
		return err
	}
	s.events = events
	return nil
}

// AddHabit parses the sentence and, when valid, appends the habit and
// rederives events. The parsed habit is returned for display.
func (s *Service) AddHabit(text string) (models.Habit, error) {
	habit, err := parser.Parse(text)
	if err != nil {
		return models.Habit{}, err
	}
	if habit.Title == "" {
		return models.Habit{}, &parser.ValidationError{Reason: "non ho capito il nome dell'attività"}
	}
	if !habit.Timed() {
		return models.Habit{}, &parser.ValidationError{Reason: "manca l'orario (ad esempio \"dalle 18:00 alle 19:30\")"}
	}

	s.habits = append(s.habits, habit)
	if err := s.recompute(); err != nil {
		s.habits = s.habits[:len(s.habits)-1]
		return models.Habit{}, err
	}
	return habit, nil
}

// ToggleHabit flips a habit's active flag and rederives events.
func (s *Service) ToggleHabit(id string) (models.Habit, error) {
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i].Active = !s.habits[i].Active
			if err := s.recompute(); err != nil {
				return models.Habit{}, err
			}
			return s.habits[i], nil
		}
	}
	return models.Habit{}, fmt.Errorf("abitudine %s non trovata", id)
}

// DeleteHabit removes a habit; the rederivation cascades away every event it
// generated.
func (s *Service) DeleteHabit(id string) error {
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			return s.recompute()
		}
	}
	return fmt.Errorf("abitudine %s non trovata", id)
}

// AddEvent appends a manual event.
func (s *Service) AddEvent(e models.Event) {
	e.FromHabit = false
	e.HabitID = ""
	s.events = append(s.events, e)
}

// RemoveEvents drops the manual events with the given ids. Habit-derived
// events are skipped even if listed.
func (s *Service) RemoveEvents(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.events[:0]
	removed := 0
	for _, e := range s.events {
		if drop[e.ID] && !e.FromHabit {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return removed
}

// Apply executes an assistant mutation against the collections.
func (s *Service) Apply(m *assistant.Mutation) {
	if m == nil {
		return
	}
	for _, e := range m.Append {
		s.AddEvent(e)
	}
	if len(m.RemoveIDs) > 0 {
		s.RemoveEvents(m.RemoveIDs)
	}
}

// Habits returns the habit list in insertion order.
func (s *Service) Habits() []models.Habit {
	return s.habits
}

// Events returns the full event collection, habit-derived included.
func (s *Service) Events() []models.Event {
	return s.events
}

// ManualEvents returns only the events that are persisted as-is.
func (s *Service) ManualEvents() []models.Event {
	var out []models.Event
	for _, e := range s.events {
		if !e.FromHabit {
			out = append(out, e)
		}
	}
	return out
}

// Preferences returns the current preferences.
func (s *Service) Preferences() models.Preferences {
	return s.preferences
}

// SetPreferences replaces the preferences.
func (s *Service) SetPreferences(p models.Preferences) {
	s.preferences = p
}

// EventsForDate returns the events dated on the given YYYY-MM-DD day.
func (s *Service) EventsForDate(date string) []models.Event {
	var out []models.Event
	for _, e := range s.events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// TodaysEvents returns the events dated today.
func (s *Service) TodaysEvents() []models.Event {
	return s.EventsForDate(dateutil.FormatDate(dateutil.Today()))
}

// WeeklyCategoryHours sums the committed hours per category over all timed
// events, for the analytics view.
func (s *Service) WeeklyCategoryHours() map[models.Category]float64 {
	hours := make(map[models.Category]float64)
	for _, e := range s.events {
		if !e.Timed() {
			continue
		}
		if m := dateutil.MinutesBetween(e.Time, e.EndTime); m > 0 {
			hours[e.Category] += float64(m) / 60
		}
	}
	return hours
}

// AssistantContext builds the read-only snapshot one chat turn reasons over.
func (s *Service) AssistantContext(pending *models.PendingRoutine) assistant.Context {
	return assistant.Context{
		Events:    s.events,
		Habits:    s.habits,
		Pending:   pending,
		WorkStart: s.preferences.WorkStart,
		WorkEnd:   s.preferences.WorkEnd,
		Reminders: s.preferences.Reminders,
	}
}
