package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/whattocook/internal/screen"
)

type menuEntry struct {
	label  string
	desc   string
	action screen.MenuAction
}

var menuEntries = []menuEntry{
	{"Explore", "Browse meals by category", screen.MenuExplore{}},
	{"Random", "Let fate pick tonight's meal", screen.MenuRandom{}},
	{"Saved", "Meals you kept for later", screen.MenuSaved{}},
	{"Search", "Find meals by ingredient", screen.MenuSearch{}},
}

// menuView is the root screen.
type menuView struct {
	store  *screen.MenuStore
	state  screen.MenuState
	cursor selection
}

func newMenuView(store *screen.MenuStore) *menuView {
	v := &menuView{
		store:  store,
		state:  store.State(),
		cursor: selection{count: len(menuEntries)},
	}
	store.Subscribe(func(s screen.MenuState) { v.state = s })
	return v
}

func (v *menuView) Title() string { return "What to cook" }

func (v *menuView) Hints(keys keyMap) []key.Binding {
	return []key.Binding{keys.Confirm}
}

func (v *menuView) Enter() {}

func (v *menuView) Update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if v.cursor.update(msg, keys) {
		return nil
	}
	if key.Matches(msg, keys.Confirm) {
		v.store.Dispatch(menuEntries[v.cursor.index].action)
	}
	return nil
}

func (v *menuView) View(r renderCtx) string {
	labelWidth := 10
	rows := make([]string, len(menuEntries))
	for i, e := range menuEntries {
		row := padRight(e.label, labelWidth)
		if r.width >= LayoutCompactWidth {
			row += e.desc
		}
		rows[i] = row
	}
	list := renderRows(r, rows, v.cursor.index, len(rows))

	status := ""
	if v.state.Fetching {
		status = r.spinner + " " + r.styles.MutedText.Render("Picking a random meal...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, "", list, "", status)
}

func (v *menuView) Resize(int, int) {}

func (v *menuView) Capturing() bool { return false }

func (v *menuView) Leave() { v.store.Subscribe(nil) }
