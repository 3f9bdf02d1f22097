package playground

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// historyCap bounds the command history kept for up/down recall.
const historyCap = 100

// InputLine is the single-line command prompt at the bottom of the playground.
type InputLine struct {
	width int
	input textarea.Model

	// Command recall state. Up and down walk history oldest-last; the
	// line being typed is stashed in draft while recalling and restored
	// when the walk passes the newest entry.
	history []string
	browse  int // index into history while recalling, -1 otherwise
	draft   string
}

// NewInputLine creates a new input line component.
func NewInputLine() InputLine {
	ta := textarea.New()
	ta.Placeholder = "Type a command (help lists them)..."
	ta.CharLimit = 256
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	// Commands are one line; enter submits instead of inserting a newline
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()
	return InputLine{
		input:  ta,
		browse: -1,
	}
}

// SetWidth updates the component width.
func (i *InputLine) SetWidth(width int) {
	i.width = width
	i.input.SetWidth(width - 4) // Account for prompt and padding
}

// Update handles input events and returns a command.
func (i *InputLine) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd
}

// Value returns the current input value.
func (i *InputLine) Value() string {
	return i.input.Value()
}

// Clear resets the input value.
func (i *InputLine) Clear() {
	i.input.SetValue("")
}

// View renders the input line.
func (i InputLine) View() string {
	return inputLineStyle.Width(i.width).Render(i.input.View())
}

// CursorBlink returns the cursor blink command for Init.
func (i InputLine) CursorBlink() tea.Cmd {
	return i.input.Cursor.BlinkCmd()
}

// AddToHistory records a submitted command for recall. Empty commands
// and immediate repeats are not recorded.
func (i *InputLine) AddToHistory(command string) {
	if command == "" {
		return
	}
	if n := len(i.history); n > 0 && i.history[n-1] == command {
		return
	}
	i.history = append(i.history, command)
	if over := len(i.history) - historyCap; over > 0 {
		i.history = i.history[over:]
	}
	i.browse = -1
	i.draft = ""
}

// HistoryUp recalls the previous (older) command, stashing the current
// line on the first press. It reports whether the line changed.
func (i *InputLine) HistoryUp() bool {
	switch {
	case len(i.history) == 0:
		return false
	case i.browse == -1:
		i.draft = i.input.Value()
		i.browse = len(i.history) - 1
	case i.browse > 0:
		i.browse--
	default:
		// Already at the oldest command
		return false
	}
	i.input.SetValue(i.history[i.browse])
	i.input.CursorEnd()
	return true
}

// HistoryDown recalls the next (newer) command; past the newest entry it
// restores the stashed line. It reports whether the line changed.
func (i *InputLine) HistoryDown() bool {
	if i.browse == -1 {
		return false
	}
	if i.browse < len(i.history)-1 {
		i.browse++
		i.input.SetValue(i.history[i.browse])
	} else {
		i.browse = -1
		i.input.SetValue(i.draft)
		i.draft = ""
	}
	i.input.CursorEnd()
	return true
}

// ResetHistoryNavigation drops any in-progress recall.
func (i *InputLine) ResetHistoryNavigation() {
	i.browse = -1
	i.draft = ""
}
