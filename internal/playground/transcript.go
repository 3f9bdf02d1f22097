package playground

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"
)

// Transcript is the scrollback pane showing commands, deliveries, and
// dispatcher diagnostics. Lines arrive already styled; the transcript only
// wraps them to the current width and manages scrolling.
type Transcript struct {
	lines    []string
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// NewTranscript creates a new transcript component.
func NewTranscript() Transcript {
	return Transcript{}
}

// SetSize updates the component dimensions.
func (v *Transcript) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height

	if !v.ready {
		v.viewport = viewport.New(width, height)
		v.ready = true
	} else {
		v.viewport.Width = width
		v.viewport.Height = height
	}

	v.updateContent()
}

// SetLines replaces the transcript contents.
func (v *Transcript) SetLines(lines []string) {
	v.lines = lines
	if !v.ready {
		return
	}

	wasNearBottom := v.viewport.AtBottom() ||
		v.viewport.YOffset >= v.viewport.TotalLineCount()-v.viewport.Height-5

	v.updateContent()

	// Auto-scroll unless the user has scrolled away to read older output
	if wasNearBottom {
		v.viewport.GotoBottom()
	}
}

// ScrollToBottom scrolls to the bottom.
func (v *Transcript) ScrollToBottom() {
	v.viewport.GotoBottom()
}

// PageUp scrolls up by one page.
func (v *Transcript) PageUp() {
	v.viewport.ViewUp()
}

// PageDown scrolls down by one page.
func (v *Transcript) PageDown() {
	v.viewport.ViewDown()
}

// updateContent refreshes the viewport content from the stored lines.
func (v *Transcript) updateContent() {
	if !v.ready {
		return
	}

	wrapped := make([]string, 0, len(v.lines))
	for _, line := range v.lines {
		// wordwrap is ANSI-aware, so styled lines keep their colors
		wrapped = append(wrapped, wordwrap.String(line, v.width))
	}

	v.viewport.SetContent(strings.Join(wrapped, "\n"))
}

// View renders the transcript.
func (v Transcript) View() string {
	if !v.ready {
		return ""
	}
	return v.viewport.View()
}
