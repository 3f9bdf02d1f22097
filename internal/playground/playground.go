// Package playground provides an interactive terminal for poking at a
// dispatcher by hand. It hosts a single emitter over a fresh world; typed
// commands spawn entities, edit registrations, and broadcast slots, and
// every delivery and diagnostic scrolls through the transcript above the
// prompt.
package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the bubbletea model for the playground.
type Model struct {
	width  int
	height int

	ready bool

	// Components
	session    *session
	transcript Transcript
	inputLine  InputLine

	// Key bindings
	keys KeyBindings
}

// New creates a playground model with the given slot count and transcript
// history cap.
func New(slots, history int) Model {
	return Model{
		session:    newSession(slots, history),
		transcript: NewTranscript(),
		inputLine:  NewInputLine(),
		keys:       DefaultKeyBindings(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.inputLine.CursorBlink()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Cancel):
			m.inputLine.Clear()
			m.inputLine.ResetHistoryNavigation()

		case key.Matches(msg, m.keys.Submit):
			input := m.inputLine.Value()
			if input != "" {
				m.session.append(commandStyle.Render("> " + input))
				m.inputLine.AddToHistory(input)
				m.inputLine.Clear()
				quit := m.session.exec(input)
				m.transcript.SetLines(m.session.lines)
				m.transcript.ScrollToBottom()
				if quit {
					return m, tea.Quit
				}
			}

		case key.Matches(msg, m.keys.Up):
			m.inputLine.HistoryUp()

		case key.Matches(msg, m.keys.Down):
			m.inputLine.HistoryDown()

		case key.Matches(msg, m.keys.PageUp):
			m.transcript.PageUp()

		case key.Matches(msg, m.keys.PageDown):
			m.transcript.PageDown()

		default:
			// Pass to input
			cmd := m.inputLine.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	return m, tea.Batch(cmds...)
}

// updateLayout recalculates component dimensions.
func (m *Model) updateLayout() {
	m.inputLine.SetWidth(m.width)

	// Header, input, and status bar each take one row
	transcriptHeight := m.height - 3
	m.transcript.SetSize(m.width, transcriptHeight)
	m.transcript.SetLines(m.session.lines)
	m.transcript.ScrollToBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Left side: branding. Right side: live dispatcher stats.
	brand := headerBrandStyle.Render("📡 slotcast playground")
	stats := headerStatsStyle.Render(fmt.Sprintf("%d slots  •  %d entities  •  %d registered",
		m.session.slots, m.session.world.Count(), m.totalRegistered()))

	spacerWidth := m.width - lipgloss.Width(brand) - lipgloss.Width(stats)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")
	header := headerContainerStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, brand, spacer, stats),
	)

	status := statusStyle.Width(m.width).Render(formatHelp([]key.Binding{
		m.keys.Submit, m.keys.Up, m.keys.PageUp, m.keys.Quit,
	}))

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.transcript.View(), m.inputLine.View(), status)
}

// totalRegistered sums live registrations across every slot.
func (m Model) totalRegistered() int {
	total := 0
	for slot := 0; slot < m.session.slots; slot++ {
		total += m.session.emitter.Registered(slot)
	}
	return total
}

// formatHelp renders key bindings as "key: action  key: action".
func formatHelp(bindings []key.Binding) string {
	var parts []string
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+": "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

// Run starts the playground and blocks until the user quits.
func Run(slots, history int) error {
	p := tea.NewProgram(
		New(slots, history),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
