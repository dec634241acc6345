package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/whattocook/internal/state"
)

// Theme is a named color palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string
	FocusBg    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// PhaseColors colors the badge shown for each list load phase.
	PhaseColors map[state.Phase]string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style

	phaseColors map[state.Phase]string
	badgeText   string
	fallback    string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: bar.Foreground(lipgloss.Color(t.Text)),
		Footer: bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Warning).Bold(true),

		phaseColors: t.PhaseColors,
		badgeText:   t.Background,
		fallback:    t.Muted,
	}
}

// PhaseStyle returns the badge style for a load phase.
func (s Styles) PhaseStyle(phase state.Phase) lipgloss.Style {
	color, ok := s.phaseColors[phase]
	if !ok {
		color = s.fallback
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of s whose styles paint bgColor behind their
// text, so segments joined on a colored bar leave no gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Header, &s.Footer, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

// GetTheme returns the named theme, or Nightfox for an unknown name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func ThemeNames() []string {
	return themeOrder
}

// phases maps the load phases onto palette colors in one fixed pattern:
// idle is faint, loading is info, data is success, loadingMore is accent,
// empty is warning and a failure is danger.
func phases(faint, info, success, accent, warning, danger string) map[state.Phase]string {
	return map[state.Phase]string{
		state.PhaseIdle:        faint,
		state.PhaseLoading:     info,
		state.PhaseData:        success,
		state.PhaseLoadingMore: accent,
		state.PhaseEmpty:       warning,
		state.PhaseFailed:      danger,
	}
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	t := Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SurfaceAlt:    "#212e3f",
		FocusBg:       "#29394f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
	}
	t.PhaseColors = phases(t.Muted, t.Info, t.Success, t.Accent, t.Warning, t.Danger)
	return t
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	t := Theme{
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		SurfaceAlt:    "#2A2A37",
		FocusBg:       "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#54546D",
		BorderFocus:   "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Success:       "#98BB6C",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Info:          "#7FB4CA",
	}
	t.PhaseColors = phases(t.Faint, t.Info, t.Success, t.Accent, t.Warning, t.Danger)
	return t
}

// Tailwind slate and sky.
func slateTheme() Theme {
	t := Theme{
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SurfaceAlt:    "#1e293b",
		FocusBg:       "#283548",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
	}
	t.PhaseColors = phases(t.Faint, t.Info, t.Success, "#0ea5e9", t.Warning, "#dc2626")
	return t
}
