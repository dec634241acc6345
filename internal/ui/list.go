package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/whattocook/internal/state"
)

// selection is the selected row of a list of count rows.
type selection struct {
	index int
	count int
	page  int
}

// setCount clamps the selection to a new row count.
func (c *selection) setCount(n int) {
	c.count = n
	c.clamp()
}

func (c *selection) clamp() {
	if c.index >= c.count {
		c.index = c.count - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}

// atEnd reports whether the last row is selected.
func (c selection) atEnd() bool {
	return c.count > 0 && c.index == c.count-1
}

// update moves the selection for a navigation key and reports whether the
// key was one.
func (c *selection) update(msg tea.KeyMsg, keys keyMap) bool {
	page := max(c.page, 1)
	switch {
	case key.Matches(msg, keys.Up):
		c.index--
	case key.Matches(msg, keys.Down):
		c.index++
	case key.Matches(msg, keys.Top):
		c.index = 0
	case key.Matches(msg, keys.Bottom):
		c.index = c.count - 1
	case key.Matches(msg, keys.PageUp):
		c.index -= page
	case key.Matches(msg, keys.PageDown):
		c.index += page
	default:
		return false
	}
	c.clamp()
	return true
}

// renderRows renders rows with the selected one highlighted, scrolled so
// the selection stays within height lines.
func renderRows(r renderCtx, rows []string, selected, height int) string {
	if len(rows) == 0 || height <= 0 {
		return ""
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(start+height, len(rows))

	selStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(r.theme.SelectionBg)).
		Foreground(lipgloss.Color(r.theme.SelectionText)).
		Width(r.width)
	rowStyle := r.styles.Text.Width(r.width)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		marker := "  "
		style := rowStyle
		if i == selected {
			marker = "› "
			style = selStyle
		}
		lines = append(lines, style.Render(marker+rows[i]))
	}
	return strings.Join(lines, "\n")
}

// renderPhase renders the placeholder for a content phase that has no rows
// to show, and reports whether it did.
func renderPhase[D any](r renderCtx, c state.Content[D], noun string) (string, bool) {
	badge := r.styles.PhaseStyle(c.Phase()).Render(c.Phase().String())
	var msg string
	switch c.Phase() {
	case state.PhaseIdle:
		msg = r.styles.MutedText.Render("Nothing loaded yet")
	case state.PhaseLoading:
		msg = r.spinner + " " + r.styles.MutedText.Render("Loading "+noun+"...")
	case state.PhaseEmpty:
		msg = r.styles.WarningText.Render("No " + noun + " found")
	case state.PhaseFailed:
		msg = r.styles.DangerText.Render(c.Err().Error()) + "\n\n" +
			r.styles.FaintText.Render("press r to retry")
	default:
		return "", false
	}
	block := lipgloss.JoinVertical(lipgloss.Center, badge, "", msg)
	return lipgloss.Place(r.width, r.height, lipgloss.Center, lipgloss.Center, block), true
}
