package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"agendai/internal/cli"
	"agendai/internal/config"
	"agendai/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/agendai/config.yaml"`
	Store   string `help:"Calendar data file. Overrides the configured path; a .json extension selects the plain-text backend."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize agendai storage."`
	Chat  cli.ChatCmd  `cmd:"" help:"Chat with the scheduling assistant." default:"1"`
	Ask   cli.AskCmd   `cmd:"" help:"Ask the assistant a single question."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit from a natural language description."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits."`
		Toggle cli.HabitToggleCmd `cmd:"" help:"Pause or resume a habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit and its derived events."`
	} `cmd:"" help:"Manage recurring habits."`
	Event struct {
		Add    cli.EventAddCmd    `cmd:"" help:"Add a one-off event."`
		List   cli.EventListCmd   `cmd:"" help:"List events."`
		Delete cli.EventDeleteCmd `cmd:"" help:"Delete a manually added event."`
	} `cmd:"" help:"Manage one-off events."`
	Day    cli.DayCmd    `cmd:"" help:"Show a day's agenda and free slots."`
	Week   cli.WeekCmd   `cmd:"" help:"Summarize the next seven days."`
	Slots  cli.SlotsCmd  `cmd:"" help:"Show free slots for a day."`
	Export cli.ExportCmd `cmd:"" help:"Export the calendar to an iCalendar file."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the calendar."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the calendar from a backup."`
	} `cmd:"" help:"Manage calendar backups."`
	Remind cli.RemindCmd `cmd:"" help:"Run the reminder dispatcher in the foreground."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("agendai"),
		kong.Description("Assistente personale per la pianificazione: abitudini, eventi e disponibilità"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	storePath := cfg.StorePath
	if CLI.Store != "" {
		storePath = CLI.Store
	}

	appCtx := &cli.Context{
		Store:  storage.NewStore(storePath),
		Config: cfg,
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Store.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
