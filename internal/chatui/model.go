// Package chatui is the terminal chat with the rule-based assistant.
package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"whd.healthtrends.org/internal/models"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/session"
	"whd.healthtrends.org/internal/trend"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
	chromeLines   = 5
)

// Conversation holds the transcript for one selection.
type Conversation struct {
	state    *session.State
	context  narrative.Context
	messages []models.ChatMessage
}

func NewConversation(state *session.State, table trend.Table) *Conversation {
	return &Conversation{
		state:    state,
		context:  state.Context(table),
		messages: []models.ChatMessage{models.NewGreetingMessage()},
	}
}

// Ask records question and its reply. Blank questions are ignored.
func (c *Conversation) Ask(question string) (models.ChatMessage, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.ChatMessage{}, false
	}
	reply := models.NewAnswerMessage(narrative.ChatReply(c.context, question))
	c.messages = append(c.messages, models.NewChatMessage(models.RoleUser, question), reply)
	return reply, true
}

func (c *Conversation) Messages() []models.ChatMessage {
	return c.messages
}

// Model is the bubbletea model of the chat screen.
type Model struct {
	conv     *Conversation
	input    textinput.Model
	viewport viewport.Model
	quitting bool
}

func New(conv *Conversation) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the trend, a comparison, or what it means"
	ti.CharLimit = 500
	ti.Width = defaultWidth - 4
	ti.Focus()

	vp := viewport.New(defaultWidth, defaultHeight-chromeLines)

	m := Model{conv: conv, input: ti, viewport: vp}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeLines, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if _, ok := m.conv.Ask(m.input.Value()); ok {
				m.input.Reset()
				m.refresh()
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.conv.Messages(), m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(title(m.conv.state)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.conv.state.Greeting()))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter send • pgup/pgdn scroll • esc quit"))
	return b.String()
}

func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) Conversation() *Conversation {
	return m.conv
}

func title(state *session.State) string {
	sel := state.Selection
	if sel.Indicator == "" {
		return "Health dashboard chat"
	}
	countries := sel.CountryA
	if sel.CountryB != "" {
		countries += " vs " + sel.CountryB
	}
	return fmt.Sprintf("%s: %s", sel.Indicator, countries)
}

func renderTranscript(messages []models.ChatMessage, width int) string {
	body := bodyStyle
	if width > 4 {
		body = body.Width(width - 2)
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.Role == models.RoleUser {
			b.WriteString(userStyle.Render("You"))
		} else {
			b.WriteString(assistantStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Text))
		b.WriteString("\n")
	}
	return b.String()
}
