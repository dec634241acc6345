package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/whattocook/internal/screen"
	"github.com/five82/whattocook/internal/state"
)

// mealsView is a paginated meal list. Selecting the last row asks the store
// for the next page; the reducer ignores the request when there is none.
type mealsView struct {
	store  *screen.MealsStore
	state  screen.MealsState
	cursor selection
}

func newMealsView(store *screen.MealsStore) *mealsView {
	v := &mealsView{store: store}
	v.apply(store.State())
	store.Subscribe(v.apply)
	return v
}

func (v *mealsView) apply(s screen.MealsState) {
	v.state = s
	data, _ := s.Content.Data()
	v.cursor.setCount(len(data))
}

func (v *mealsView) Title() string {
	if v.state.Title == "" {
		return "Meals"
	}
	return v.state.Title
}

func (v *mealsView) Hints(keys keyMap) []key.Binding {
	if v.state.Content.Phase() == state.PhaseFailed {
		return []key.Binding{keys.Retry}
	}
	return []key.Binding{keys.Confirm}
}

func (v *mealsView) Enter() { v.store.Dispatch(screen.MealsLoad{}) }

func (v *mealsView) Update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case v.cursor.update(msg, keys):
		if v.cursor.atEnd() {
			v.store.Dispatch(screen.ReachEndOfList{})
		}
	case key.Matches(msg, keys.Retry):
		if v.state.Content.Phase() == state.PhaseFailed {
			v.store.Dispatch(screen.MealsRetry{})
		}
	case key.Matches(msg, keys.Confirm):
		if v.cursor.count > 0 {
			v.store.Dispatch(screen.SelectMeal{Index: v.cursor.index})
		}
	}
	return nil
}

func (v *mealsView) View(r renderCtx) string {
	if out, ok := renderPhase(r, v.state.Content, "meals"); ok {
		return out
	}
	list := v.state.Content.MustData()
	rows := make([]string, len(list))
	for i, m := range list {
		row := truncate(m.Name, max(r.width/2, 20))
		if r.width >= LayoutCompactWidth {
			row = padRight(row, r.width/2+2) + r.styles.MutedText.Render(joinNonEmpty(" · ", m.Category, m.Area))
		}
		rows[i] = row
	}
	body := renderRows(r, rows, v.cursor.index, max(r.height-2, 1))
	return lipgloss.JoinVertical(lipgloss.Left, body, "", v.footer(r))
}

func (v *mealsView) footer(r renderCtx) string {
	switch {
	case v.state.Content.Phase() == state.PhaseLoadingMore:
		return r.spinner + " " + r.styles.MutedText.Render("Loading more...")
	case v.state.MoreErr != nil:
		return r.styles.DangerText.Render("Couldn't load more: "+v.state.MoreErr.Error()) +
			r.styles.FaintText.Render("  (move down to try again)")
	case v.state.NextPage != 0:
		return r.styles.FaintText.Render(fmt.Sprintf("%d meals, more below", v.cursor.count))
	default:
		return r.styles.FaintText.Render(fmt.Sprintf("%d meals", v.cursor.count))
	}
}

func (v *mealsView) Resize(_, height int) { v.cursor.page = height }

func (v *mealsView) Capturing() bool { return false }

func (v *mealsView) Leave() { v.store.Subscribe(nil) }
