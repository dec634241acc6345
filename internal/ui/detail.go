package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/whattocook/internal/screen"
)

// detailHeaderLines is how many lines the meal header takes above the
// instructions viewport.
const detailHeaderLines = 6

// mealView shows one meal. The instructions scroll in a viewport.
type mealView struct {
	store    *screen.MealStore
	state    screen.MealState
	viewport viewport.Model
}

func newMealView(store *screen.MealStore) *mealView {
	v := &mealView{
		store:    store,
		viewport: viewport.New(0, 0),
	}
	v.apply(store.State())
	store.Subscribe(v.apply)
	return v
}

func (v *mealView) apply(s screen.MealState) {
	changed := s.Meal.Instructions != v.state.Meal.Instructions
	v.state = s
	if changed {
		v.setContent()
	}
}

func (v *mealView) setContent() {
	text := strings.TrimSpace(v.state.Meal.Instructions)
	if text == "" {
		text = "No instructions yet."
	}
	v.viewport.SetContent(lipgloss.NewStyle().Width(max(v.viewport.Width, 1)).Render(text))
}

func (v *mealView) Title() string {
	if v.state.Title() == "" {
		return "Meal"
	}
	return v.state.Title()
}

func (v *mealView) Hints(keys keyMap) []key.Binding {
	return []key.Binding{keys.ToggleSave, keys.OpenLink}
}

func (v *mealView) Enter() { v.store.Dispatch(screen.MealLoad{}) }

func (v *mealView) Update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.ToggleSave):
		v.store.Dispatch(screen.ToggleSave{})
		return nil
	case key.Matches(msg, keys.OpenLink):
		v.store.Dispatch(screen.OpenVideo{})
		return nil
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *mealView) View(r renderCtx) string {
	s := v.state
	styles := r.styles

	saved := styles.FaintText.Render("☆ not saved")
	if s.Saved {
		saved = styles.SuccessText.Render("★ saved")
	}

	var image string
	switch {
	case s.ImageTask != nil:
		image = r.spinner + " " + styles.MutedText.Render("loading image")
	case len(s.Image) > 0:
		image = styles.InfoText.Render("image " + formatBytes(len(s.Image)))
	case s.ImageErr != nil:
		image = styles.WarningText.Render("image unavailable")
	default:
		image = styles.FaintText.Render("no image")
	}

	status := ""
	if s.Err != nil {
		status = styles.DangerText.Render(s.Err.Error())
	}

	link := s.Meal.Link()
	if link == "" {
		link = "no link"
	}

	header := []string{
		styles.Text.Bold(true).Render(truncate(s.Meal.Name, r.width)),
		styles.MutedText.Render(joinNonEmpty(" · ", s.Meal.Category, s.Meal.Area)),
		saved + "  " + image,
		styles.AccentText.Render(truncate(link, r.width)),
		status,
		styles.FaintText.Render(strings.Repeat("─", max(r.width, 0))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(header, v.viewport.View())...)
}

func (v *mealView) Resize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(height-detailHeaderLines, 1)
	v.setContent()
}

func (v *mealView) Capturing() bool { return false }

func (v *mealView) Leave() {
	v.store.Dispatch(screen.MealLeave{})
	v.store.Subscribe(nil)
}
