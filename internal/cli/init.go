package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

type InitCmd struct {
	NoInput bool `help:"Skip the interactive setup and use defaults."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	prefs := models.DefaultPreferences()
	prefs.WorkStart = ctx.Config.WorkStart
	prefs.WorkEnd = ctx.Config.WorkEnd
	prefs.Reminders = models.Reminders{
		Min15: ctx.Config.Reminders.Min15,
		Hour1: ctx.Config.Reminders.Hour1,
		Day1:  ctx.Config.Reminders.Day1,
	}

	if !c.NoInput {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Inizio della giornata lavorativa (HH:MM)").
					Validate(validClock).
					Value(&prefs.WorkStart),
				huh.NewInput().
					Title("Fine della giornata lavorativa (HH:MM)").
					Validate(validClock).
					Value(&prefs.WorkEnd),
				huh.NewConfirm().
					Title("Promemoria 15 minuti prima degli eventi?").
					Value(&prefs.Reminders.Min15),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return err
	}

	fmt.Printf("Initialized agendai storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("Working window: %s–%s\n", prefs.WorkStart, prefs.WorkEnd)
	return nil
}

func validClock(s string) error {
	if _, err := dateutil.ParseClock(s); err != nil {
		return fmt.Errorf("usa il formato HH:MM")
	}
	return nil
}
