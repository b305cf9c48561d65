package cli

import (
	"fmt"
	"strings"
	"time"

	"agendai/internal/calendar"
	"agendai/internal/config"
	"agendai/internal/dateutil"
	"agendai/internal/models"
	"agendai/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
}

// loadCalendar opens the store and builds a calendar service from its
// contents, rederiving habit events.
func (ctx *Context) loadCalendar() (*calendar.Service, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}

	data, err := ctx.Store.LoadUserData()
	if err != nil {
		return nil, err
	}

	svc := calendar.New()
	if err := svc.Replace(data.Habits, data.Events, data.Preferences); err != nil {
		return nil, fmt.Errorf("failed to rebuild calendar: %w", err)
	}
	return svc, nil
}

// saveCalendar writes the habits and manual events back to the store.
func (ctx *Context) saveCalendar(svc *calendar.Service) error {
	return ctx.Store.SaveUserData(svc.Habits(), svc.ManualEvents())
}

// resolveDate accepts YYYY-MM-DD plus the shortcuts "oggi" and "domani".
func resolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "oggi", "today":
		return dateutil.FormatDate(dateutil.Today()), nil
	case "domani", "tomorrow":
		return dateutil.FormatDate(dateutil.AddDays(dateutil.Today(), 1)), nil
	}
	t, err := dateutil.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'oggi' or 'domani'", s)
	}
	return dateutil.FormatDate(t), nil
}

func formatEventLine(e models.Event) string {
	clock := "tutto il giorno"
	if e.Timed() {
		clock = e.Time
		if e.EndTime != "" {
			clock += "–" + e.EndTime
		}
	}
	marker := ""
	if e.FromHabit {
		marker = "  [abitudine]"
	}
	return fmt.Sprintf("%-13s %-30s %s%s", clock, e.Title, e.Category, marker)
}

func formatWeekdays(weekdays []time.Weekday) string {
	names := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		names = append(names, dateutil.WeekdayName(wd)[:3])
	}
	return strings.Join(names, ",")
}

// matchByPrefix finds the single ID beginning with the given prefix.
func matchByPrefix(ids []string, prefix string) (string, error) {
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no entry matches ID %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ID %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
