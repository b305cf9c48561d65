package cli

import (
	"fmt"
	"strings"

	"agendai/internal/calendar"
)

type HabitAddCmd struct {
	Text []string `arg:"" help:"Habit described in natural language, e.g. 'vado in palestra dal lunedì al venerdì dalle 7 alle 8'."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	habit, err := svc.AddHabit(strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	if err := ctx.saveCalendar(svc); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Title, habit.ID)
	fmt.Printf("  %s  %s–%s  %s → %s  [%s]\n",
		formatWeekdays(habit.Weekdays), habit.StartTime, habit.EndTime,
		habit.StartDate, habit.EndDate, habit.Category)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	habits := svc.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'agendai habit add'.")
		return nil
	}

	for _, h := range habits {
		status := " "
		if !h.Active {
			status = "⏸"
		}
		window := "senza orario"
		if h.Timed() {
			window = h.StartTime + "–" + h.EndTime
		}
		fmt.Printf("%s %.8s  %-25s %-12s %-11s %s → %s  [%s]\n",
			status, h.ID, h.Title, formatWeekdays(h.Weekdays), window,
			h.StartDate, h.EndDate, h.Category)
	}
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit ID (a unique prefix is enough)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	id, err := matchByPrefix(habitIDs(svc), c.ID)
	if err != nil {
		return err
	}
	habit, err := svc.ToggleHabit(id)
	if err != nil {
		return err
	}
	if err := ctx.saveCalendar(svc); err != nil {
		return err
	}

	state := "paused"
	if habit.Active {
		state = "active"
	}
	fmt.Printf("Habit %q is now %s\n", habit.Title, state)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID (a unique prefix is enough)."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	id, err := matchByPrefix(habitIDs(svc), c.ID)
	if err != nil {
		return err
	}
	if err := svc.DeleteHabit(id); err != nil {
		return err
	}
	if err := ctx.saveCalendar(svc); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %s and its derived events\n", id)
	return nil
}

func habitIDs(svc *calendar.Service) []string {
	habits := svc.Habits()
	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	return ids
}
