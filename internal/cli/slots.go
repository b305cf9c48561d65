package cli

import (
	"fmt"

	"agendai/internal/availability"
)

type SlotsCmd struct {
	Date     string `arg:"" help:"Date to inspect (YYYY-MM-DD, 'oggi' or 'domani')." default:"oggi"`
	Duration int    `short:"m" help:"Only show slots of at least this many minutes." default:"30"`
}

func (c *SlotsCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	prefs := svc.Preferences()
	slots := availability.FreeSlots(svc.EventsForDate(date), prefs.WorkStart, prefs.WorkEnd)

	shown := 0
	for _, s := range slots {
		if s.DurationMinutes < c.Duration {
			continue
		}
		fmt.Printf("%s–%s  (%d min)\n", s.Start, s.End, s.DurationMinutes)
		shown++
	}
	if shown == 0 {
		fmt.Printf("No free slots of %d+ minutes on %s within %s–%s.\n",
			c.Duration, date, prefs.WorkStart, prefs.WorkEnd)
	}
	return nil
}
