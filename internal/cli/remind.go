package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agendai/internal/models"
	"agendai/internal/notify"
)

// RemindCmd runs the reminder dispatcher in the foreground, printing each
// due reminder to stdout until interrupted.
type RemindCmd struct{}

func (c *RemindCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	defaults := models.Reminders{
		Min15: ctx.Config.Reminders.Min15,
		Hour1: ctx.Config.Reminders.Hour1,
		Day1:  ctx.Config.Reminders.Day1,
	}
	dispatcher, err := notify.NewDispatcher(svc.Events, defaults, func(r notify.Reminder) {
		fmt.Println(r.String())
	})
	if err != nil {
		return err
	}

	dispatcher.Start()
	defer dispatcher.Stop()
	fmt.Println("Reminder dispatcher running, press Ctrl+C to stop.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	fmt.Println("\nStopped.")
	return nil
}
