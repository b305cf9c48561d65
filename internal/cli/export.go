package cli

import (
	"fmt"

	"agendai/internal/export"
)

type ExportCmd struct {
	Output string `arg:"" help:"Destination .ics file." default:"agendai.ics"`
	Manual bool   `help:"Export only manually added events."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	events := svc.Events()
	if c.Manual {
		events = svc.ManualEvents()
	}
	if err := export.WriteICSFile(c.Output, events); err != nil {
		return err
	}

	fmt.Printf("Exported %d events to %s\n", len(events), c.Output)
	return nil
}
