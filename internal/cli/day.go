package cli

import (
	"fmt"

	"agendai/internal/availability"
	"agendai/internal/dateutil"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD, 'oggi' or 'domani')." default:"oggi"`
}

func (c *DayCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	day, _ := dateutil.ParseDate(date)
	fmt.Printf("%s %s\n\n", dateutil.WeekdayName(day.Weekday()), date)

	events := svc.EventsForDate(date)
	if len(events) == 0 {
		fmt.Println("  Nessun impegno.")
	}
	for _, e := range events {
		fmt.Printf("  %s\n", formatEventLine(e))
	}

	prefs := svc.Preferences()
	slots := availability.FreeSlots(events, prefs.WorkStart, prefs.WorkEnd)
	if len(slots) > 0 {
		fmt.Println("\n  Spazi liberi:")
		for _, s := range slots {
			fmt.Printf("    %s–%s (%d min)\n", s.Start, s.End, s.DurationMinutes)
		}
	}
	return nil
}
