package models

// Event represents a single dated calendar entry. Events either come from a
// habit expansion (FromHabit=true, regenerated whenever the habit set changes)
// or were created manually/via the assistant (persisted and editable).
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Date        string    `json:"date"`               // YYYY-MM-DD
	Time        string    `json:"time,omitempty"`     // HH:MM
	EndTime     string    `json:"end_time,omitempty"` // HH:MM
	Description string    `json:"description,omitempty"`
	FromHabit   bool      `json:"from_habit,omitempty"`
	HabitID     string    `json:"habit_id,omitempty"`
	Reminders   Reminders `json:"reminders,omitempty"`
}

// Timed reports whether the event has both a start and an end time.
func (e Event) Timed() bool {
	return e.Time != "" && e.EndTime != ""
}

// Reminders flags the lead times at which the host should deliver a reminder
// before an event starts. The core only carries them as data.
type Reminders struct {
	Min15 bool `json:"15min,omitempty"`
	Hour1 bool `json:"1hour,omitempty"`
	Day1  bool `json:"1day,omitempty"`
}

// Any reports whether at least one lead time is enabled.
func (r Reminders) Any() bool {
	return r.Min15 || r.Hour1 || r.Day1
}
