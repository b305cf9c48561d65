package cli

import (
	"fmt"

	"agendai/internal/availability"
	"agendai/internal/dateutil"
	"agendai/internal/models"
)

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	week := availability.AnalyzeWeek(svc.Events(), dateutil.Today())

	fmt.Println("Prossimi 7 giorni:")
	for _, day := range week.Days {
		load := fmt.Sprintf("%d eventi, %.1fh", len(day.Events), float64(day.CommittedMinutes)/60)
		if day.IsFree {
			load = "libero"
		}
		fmt.Printf("  %-10s %s  %s\n", dateutil.WeekdayName(day.Weekday), day.Date, load)
	}

	fmt.Printf("\nTotale: %d eventi, %.1fh impegnate, %d giorni liberi\n",
		week.TotalEvents(), float64(week.TotalMinutes())/60, week.FreeDays())

	hours := svc.WeeklyCategoryHours()
	if len(hours) > 0 {
		fmt.Println("\nOre per categoria:")
		for _, cat := range models.Categories() {
			if h, ok := hours[cat]; ok {
				fmt.Printf("  %-10s %.1fh\n", cat, h)
			}
		}
	}
	return nil
}
