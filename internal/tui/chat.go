// Package tui implements the interactive chat with the scheduling
// assistant.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"agendai/internal/assistant"
	"agendai/internal/calendar"
	"agendai/internal/models"
)

const welcome = "Ciao! Sono il tuo assistente. Scrivi un messaggio, ad esempio " +
	"\"aggiungi riunione domani alle 15\" oppure \"che giorni ho liberi?\"."

type message struct {
	fromUser bool
	text     string
}

// ChatModel is the bubbletea model for the assistant chat. The pending
// routine proposal survives across turns until confirmed or cancelled.
type ChatModel struct {
	svc      *calendar.Service
	pending  *models.PendingRoutine
	messages []message

	viewport viewport.Model
	input    textinput.Model
	ready    bool
	quitting bool
}

func NewChat(svc *calendar.Service) *ChatModel {
	input := textinput.New()
	input.Placeholder = "Scrivi un messaggio..."
	input.Focus()
	input.CharLimit = 300

	return &ChatModel{
		svc:      svc,
		messages: []message{{text: welcome}},
		input:    input,
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.send(text)
				m.input.Reset()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *ChatModel) send(text string) {
	m.messages = append(m.messages, message{fromUser: true, text: text})

	result := assistant.Interpret(text, m.svc.AssistantContext(m.pending))
	if result.Mutation != nil {
		m.svc.Apply(result.Mutation)
	}
	m.pending = result.Pending

	m.messages = append(m.messages, message{text: result.Reply})
	m.refresh()
}

func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *ChatModel) renderMessages() string {
	var b strings.Builder
	for _, msg := range m.messages {
		if msg.fromUser {
			b.WriteString(userStyle.Render("Tu: ") + msg.text)
		} else {
			b.WriteString(assistantStyle.Render(msg.text))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m *ChatModel) View() string {
	if m.quitting {
		return "A presto!\n"
	}
	if !m.ready {
		return "Caricamento..."
	}

	status := helpStyle.Render("invio: invia · esc: esci")
	if m.pending != nil {
		status = pendingStyle.Render("Proposta in attesa di conferma") + "  " + status
	}

	return m.viewport.View() + "\n" +
		inputStyle.Width(m.viewport.Width).Render(m.input.View()+"\n"+status)
}
