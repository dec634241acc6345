package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the logo, the breadcrumb of open screens and the
// saved meal count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	parts := []string{bg.Render("whattocook", styles.Logo)}
	if m.saved != nil {
		parts = append(parts, bg.Render(fmt.Sprintf("★ %d saved", m.saved.Len()), styles.WarningText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	crumbs := truncate(strings.Join(m.stack.titles(), " › "), max(m.width/2, 10))
	parts = append(parts, bg.Render(crumbs, styles.MutedText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}
