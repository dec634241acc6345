package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Lists", "Meal", "Search", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	// Title
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}

		keyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Warning)).
			Width(12)
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			help := binding.Help()
			b.WriteString(keyStyle.Render(help.Key))
			b.WriteString(styles.Text.Render(help.Desc))
			b.WriteString("\n")
		}

		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderCommandBar renders the key hints for the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	var hints []key.Binding
	if top := m.stack.top(); top != nil {
		hints = append(hints, top.Hints(m.keys)...)
	}
	hints = append(hints, m.keys.ShortHelp()...)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if !h.Enabled() {
			continue
		}
		help := h.Help()
		parts = append(parts,
			bg.Render("<"+help.Key+">", styles.AccentText)+bg.Space()+bg.Render(help.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}
