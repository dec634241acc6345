package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bgStyle paints text over a solid background. lipgloss resets the
// background after every styled segment, so plain spaces between segments
// would show the terminal color through; bgStyle styles them too.
type bgStyle struct {
	bg    lipgloss.Color
	space string
}

func newBgStyle(color string) bgStyle {
	bg := lipgloss.Color(color)
	return bgStyle{bg: bg, space: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// Render styles each word of text and rejoins the words with styled spaces.
// Runs of spaces are kept.
func (b bgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return style.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

func (b bgStyle) Space() string { return b.space }

// Join joins already rendered parts with a styled separator.
func (b bgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}
