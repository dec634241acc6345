package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/whattocook/internal/screen"
)

// ingredientsView is the ingredient picker. The filter input narrows the
// displayed rows; picks survive filtering.
type ingredientsView struct {
	store  *screen.IngredientsStore
	state  screen.IngredientsState
	cursor selection
	filter textinput.Model
}

func newIngredientsView(store *screen.IngredientsStore) *ingredientsView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter ingredients"
	ti.CharLimit = 32
	ti.Cursor.SetMode(cursor.CursorStatic)

	v := &ingredientsView{store: store, filter: ti}
	v.apply(store.State())
	store.Subscribe(v.apply)
	return v
}

func (v *ingredientsView) apply(s screen.IngredientsState) {
	v.state = s
	v.cursor.setCount(len(s.Displayed()))
}

func (v *ingredientsView) Title() string { return "Search by ingredient" }

func (v *ingredientsView) Hints(keys keyMap) []key.Binding {
	if v.filter.Focused() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/esc", "Done filtering")),
		}
	}
	search := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Search"))
	return []key.Binding{keys.Toggle, keys.Filter, keys.ClearPick, search}
}

func (v *ingredientsView) Enter() {}

func (v *ingredientsView) Update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if v.filter.Focused() {
		if key.Matches(msg, keys.Confirm) || msg.Type == tea.KeyEsc {
			v.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		v.filter, cmd = v.filter.Update(msg)
		if text := v.filter.Value(); text != v.state.Filter {
			v.store.Dispatch(screen.SetFilter{Text: text})
		}
		return cmd
	}

	switch {
	case v.cursor.update(msg, keys):
	case key.Matches(msg, keys.Filter):
		return v.filter.Focus()
	case key.Matches(msg, keys.Toggle):
		if v.cursor.count > 0 {
			v.store.Dispatch(screen.SelectIngredient{Index: v.cursor.index})
		}
	case key.Matches(msg, keys.ClearPick):
		v.store.Dispatch(screen.ClearSelection{})
	case key.Matches(msg, keys.Confirm):
		v.store.Dispatch(screen.SearchIngredients{})
	}
	return nil
}

func (v *ingredientsView) View(r renderCtx) string {
	shown := v.state.Displayed()
	rows := make([]string, len(shown))
	for i, ing := range shown {
		box := "[ ]"
		if ing.Selected {
			box = "[x]"
		}
		rows[i] = box + " " + ing.Icon + " " + ing.Name
	}

	var body string
	if len(rows) == 0 {
		body = r.styles.WarningText.Render("No ingredient matches the filter")
	} else {
		body = renderRows(r, rows, v.cursor.index, max(r.height-4, 1))
	}

	picked := v.state.Selected()
	summary := r.styles.FaintText.Render("Pick at least one ingredient to search")
	if len(picked) > 0 {
		summary = r.styles.MutedText.Render("Picked: ") + r.styles.AccentText.Render(strings.Join(picked, ", "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, v.filter.View(), "", body, "", summary)
}

func (v *ingredientsView) Resize(width, height int) {
	v.filter.Width = max(width-4, 10)
	v.cursor.page = height
}

func (v *ingredientsView) Capturing() bool { return v.filter.Focused() }

func (v *ingredientsView) Leave() { v.store.Subscribe(nil) }
