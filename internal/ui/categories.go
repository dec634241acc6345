package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/whattocook/internal/screen"
	"github.com/five82/whattocook/internal/state"
)

// categoriesView lists the meal categories.
type categoriesView struct {
	store  *screen.CategoriesStore
	state  screen.CategoriesState
	cursor selection
}

func newCategoriesView(store *screen.CategoriesStore) *categoriesView {
	v := &categoriesView{store: store}
	v.apply(store.State())
	store.Subscribe(v.apply)
	return v
}

func (v *categoriesView) apply(s screen.CategoriesState) {
	v.state = s
	data, _ := s.Content.Data()
	v.cursor.setCount(len(data))
}

func (v *categoriesView) Title() string {
	if v.state.Title == "" {
		return "Categories"
	}
	return v.state.Title
}

func (v *categoriesView) Hints(keys keyMap) []key.Binding {
	if v.state.Content.Phase() == state.PhaseFailed {
		return []key.Binding{keys.Retry}
	}
	return []key.Binding{keys.Confirm}
}

func (v *categoriesView) Enter() { v.store.Dispatch(screen.CategoriesLoad{}) }

func (v *categoriesView) Update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case v.cursor.update(msg, keys):
	case key.Matches(msg, keys.Retry):
		if v.state.Content.Phase() == state.PhaseFailed {
			v.store.Dispatch(screen.CategoriesRetry{})
		}
	case key.Matches(msg, keys.Confirm):
		if v.cursor.count > 0 {
			v.store.Dispatch(screen.SelectCategory{Index: v.cursor.index})
		}
	}
	return nil
}

func (v *categoriesView) View(r renderCtx) string {
	if out, ok := renderPhase(r, v.state.Content, "categories"); ok {
		return out
	}
	cats := v.state.Content.MustData()
	rows := make([]string, len(cats))
	for i, c := range cats {
		row := padRight(c.Name, 16)
		if r.width >= LayoutCompactWidth {
			row += r.styles.MutedText.Render(truncate(firstLine(c.Description), r.width-22))
		}
		rows[i] = row
	}
	return renderRows(r, rows, v.cursor.index, r.height)
}

func (v *categoriesView) Resize(_, height int) { v.cursor.page = height }

func (v *categoriesView) Capturing() bool { return false }

func (v *categoriesView) Leave() { v.store.Subscribe(nil) }
