package models

import "time"

// Habit represents a recurring commitment parsed from a natural-language sentence
type Habit struct {
	ID           string         `json:"id"`
	OriginalText string         `json:"original_text"`
	Active       bool           `json:"active"`
	Title        string         `json:"title"`
	Weekdays     []time.Weekday `json:"weekdays"`             // 0=Sunday .. 6=Saturday
	StartTime    string         `json:"start_time,omitempty"` // HH:MM
	EndTime      string         `json:"end_time,omitempty"`   // HH:MM
	StartDate    string         `json:"start_date"`           // YYYY-MM-DD
	EndDate      string         `json:"end_date"`             // YYYY-MM-DD
	Category     Category       `json:"category"`
}

// RecursOn reports whether the habit falls on the given weekday.
func (h Habit) RecursOn(wd time.Weekday) bool {
	for _, d := range h.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// Timed reports whether the habit carries a time range. Habits without one are
// still valid; their derived events are untimed.
func (h Habit) Timed() bool {
	return h.StartTime != "" && h.EndTime != ""
}
