// Package recurrence turns a Habit into the concrete dated events it implies.
// Expansion is deterministic and idempotent: the same habit always produces
// the same event ids, so recomputing never duplicates anything.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

// maxRangeDays caps how many calendar days a single habit may span. A range
// beyond this fails fast instead of expanding.
const maxRangeDays = 3700

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// EventID composes the deterministic id of a habit-derived event.
func EventID(habitID, date string) string {
	return habitID + "-" + date
}

// Expand enumerates every date in the habit's range that falls on one of its
// weekdays and emits one event per date. Inactive habits and habits missing a
// date bound expand to nothing.
func Expand(h models.Habit) ([]models.Event, error) {
	if !h.Active || h.StartDate == "" || h.EndDate == "" {
		return nil, nil
	}
	if len(h.Weekdays) == 0 {
		return nil, nil
	}

	start, err := dateutil.ParseDate(h.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dateutil.ParseDate(h.EndDate)
	if err != nil {
		return nil, err
	}
	if days := int(end.Sub(start).Hours() / 24); days > maxRangeDays {
		return nil, fmt.Errorf("intervallo abitudine troppo lungo: %d giorni (massimo %d)", days, maxRangeDays)
	}

	byDay := make([]rrule.Weekday, 0, len(h.Weekdays))
	for _, wd := range h.Weekdays {
		byDay = append(byDay, rruleWeekdays[wd])
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Until:     end,
		Byweekday: byDay,
	})
	if err != nil {
		return nil, fmt.Errorf("building recurrence rule: %w", err)
	}

	occurrences := rule.All()
	events := make([]models.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		date := dateutil.FormatDate(occ)
		events = append(events, models.Event{
			ID:        EventID(h.ID, date),
			Title:     h.Title,
			Category:  h.Category,
			Date:      date,
			Time:      h.StartTime,
			EndTime:   h.EndTime,
			FromHabit: true,
			HabitID:   h.ID,
		})
	}
	return events, nil
}

// Derive recomputes the full event collection from scratch: the manual events
// already present plus the expansion of every habit. Habit-derived events from
// previous expansions are discarded first, so deleted or deactivated habits
// leave no orphans behind.
func Derive(habits []models.Habit, events []models.Event) ([]models.Event, error) {
	merged := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.FromHabit {
			merged = append(merged, e)
		}
	}
	for _, h := range habits {
		expanded, err := Expand(h)
		if err != nil {
			return nil, fmt.Errorf("expanding habit %q: %w", h.Title, err)
		}
		merged = append(merged, expanded...)
	}
	return merged, nil
}
