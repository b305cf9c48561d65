package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"agendai/internal/tui"
)

type ChatCmd struct{}

func (c *ChatCmd) Run(ctx *Context) error {
	svc, err := ctx.loadCalendar()
	if err != nil {
		return err
	}

	model := tui.NewChat(svc)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return ctx.saveCalendar(svc)
}
