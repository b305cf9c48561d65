package cli

import (
	"fmt"
	"strings"

	"agendai/internal/assistant"
)

type AskCmd struct {
	Message []string `arg:"" help:"Message for the assistant, e.g. 'che giorni ho liberi?'."`
}

func (c *AskCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	// One-shot interpretation: routine proposals need the chat session to
	// confirm, so any pending proposal is dropped here.
	result := assistant.Interpret(strings.Join(c.Message, " "), svc.AssistantContext(nil))
	if result.Mutation != nil {
		svc.Apply(result.Mutation)
		if err := ctx.saveCalendar(svc); err != nil {
			return err
		}
	}

	fmt.Println(result.Reply)
	if result.Pending != nil {
		fmt.Println("\n(Per confermare una routine usa la chat interattiva: 'agendai chat')")
	}
	return nil
}
