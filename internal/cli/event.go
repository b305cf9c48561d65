package cli

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"agendai/internal/dateutil"
	"agendai/internal/models"
	"agendai/internal/parser"
)

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Date        string `short:"d" help:"Date (YYYY-MM-DD, 'oggi' or 'domani')." default:"oggi"`
	Time        string `short:"t" help:"Start time (HH:MM)."`
	End         string `short:"e" help:"End time (HH:MM)."`
	Category    string `short:"c" help:"Category (lavoro|sport|studio|personale). Inferred from the title when omitted."`
	Description string `help:"Optional note."`
}

func (c *EventAddCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	for _, clock := range []string{c.Time, c.End} {
		if clock == "" {
			continue
		}
		if _, err := dateutil.ParseClock(clock); err != nil {
			return err
		}
	}
	if c.End != "" && c.Time == "" {
		return fmt.Errorf("an end time requires a start time")
	}

	category := models.Category(c.Category)
	if c.Category == "" {
		category = parser.InferCategory(c.Title)
	} else if !category.Valid() {
		return fmt.Errorf("invalid category %q", c.Category)
	}

	event := models.Event{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Category:    category,
		Date:        date,
		Time:        c.Time,
		EndTime:     c.End,
		Description: c.Description,
		Reminders: models.Reminders{
			Min15: ctx.Config.Reminders.Min15,
			Hour1: ctx.Config.Reminders.Hour1,
			Day1:  ctx.Config.Reminders.Day1,
		},
	}
	svc.AddEvent(event)

	if err := ctx.saveCalendar(svc); err != nil {
		return err
	}

	fmt.Printf("Added event: %s on %s (ID: %.8s)\n", c.Title, date, event.ID)
	return nil
}

type EventListCmd struct {
	Date string `short:"d" help:"Only show one date (YYYY-MM-DD, 'oggi' or 'domani')."`
	All  bool   `short:"a" help:"Include habit-derived events."`
}

func (c *EventListCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	var events []models.Event
	if c.Date != "" {
		date, err := resolveDate(c.Date)
		if err != nil {
			return err
		}
		events = svc.EventsForDate(date)
	} else {
		events = svc.Events()
	}
	if !c.All {
		manual := events[:0:0]
		for _, e := range events {
			if !e.FromHabit {
				manual = append(manual, e)
			}
		}
		events = manual
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
	for _, e := range events {
		fmt.Printf("%.8s  %s  %s\n", e.ID, e.Date, formatEventLine(e))
	}
	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event ID (a unique prefix is enough)."`
}

func (c *EventDeleteCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	manual := svc.ManualEvents()
	ids := make([]string, 0, len(manual))
	for _, e := range manual {
		ids = append(ids, e.ID)
	}
	id, err := matchByPrefix(ids, c.ID)
	if err != nil {
		return err
	}

	if removed := svc.RemoveEvents([]string{id}); removed == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	if err := ctx.saveCalendar(svc); err != nil {
		return err
	}

	fmt.Printf("Deleted event %.8s\n", id)
	return nil
}
