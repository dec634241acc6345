package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/prefs"
	"github.com/five82/whattocook/internal/screen"
	"github.com/five82/whattocook/internal/state"
)

type testModel struct {
	t         *testing.T
	m         Model
	mb        *state.Mailbox
	prefsPath string
}

func newTestModel(t *testing.T, svc meals.Service) *testModel {
	t.Helper()
	mb := state.NewMailbox(16)
	t.Cleanup(mb.Close)
	saved := meals.NewSavedList()
	tm := &testModel{t: t, mb: mb, prefsPath: filepath.Join(t.TempDir(), "prefs.toml")}
	tm.m = New(Options{
		Context: context.Background(),
		Mailbox: mb,
		Shared: screen.Shared{
			Saved:      saved,
			Meals:      svc,
			SavedMeals: meals.NewSavedService(saved, nil),
		},
		PrefsPath: tm.prefsPath,
		Opener:    (&recordingOpener{}).open,
	})
	tm.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	tm.send(launchMsg{})
	return tm
}

func (tm *testModel) send(msg tea.Msg) {
	next, _ := tm.m.Update(msg)
	tm.m = next.(Model)
}

func (tm *testModel) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			tm.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			tm.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "backspace":
			tm.send(tea.KeyMsg{Type: tea.KeyBackspace})
		case " ":
			tm.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			tm.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// pump delivers the next task result through the model, as the running
// program would.
func (tm *testModel) pump() {
	tm.t.Helper()
	select {
	case fn := <-tm.mb.C():
		tm.send(runMsg(fn))
	case <-time.After(2 * time.Second):
		tm.t.Fatal("timed out waiting for task result")
	}
}

func TestModel_LaunchShowsMenu(t *testing.T) {
	tm := newTestModel(t, &stubService{})

	if _, ok := tm.m.stack.top().(*menuView); !ok {
		t.Fatalf("top view = %T, want *menuView", tm.m.stack.top())
	}
	out := tm.m.View()
	for _, want := range []string{"whattocook", "Explore", "Random", "Saved", "Search"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q", want)
		}
	}
}

func TestModel_ExploreLoadsCategoriesAndGoesBack(t *testing.T) {
	tm := newTestModel(t, &stubService{categories: []meals.Category{{Name: "Beef"}, {Name: "Vegan"}}})

	tm.press("enter")
	view, ok := tm.m.stack.top().(*categoriesView)
	if !ok {
		t.Fatalf("top view = %T, want *categoriesView", tm.m.stack.top())
	}
	if got := view.state.Content.Phase(); got != state.PhaseLoading {
		t.Fatalf("phase = %s, want loading", got)
	}

	tm.pump()
	if got := view.state.Content.Phase(); got != state.PhaseData {
		t.Fatalf("phase = %s, want data", got)
	}
	if out := tm.m.View(); !strings.Contains(out, "Vegan") {
		t.Fatalf("View() missing loaded category")
	}

	tm.press("esc")
	if _, ok := tm.m.stack.top().(*menuView); !ok {
		t.Fatalf("top view after esc = %T, want *menuView", tm.m.stack.top())
	}
}

func TestModel_RandomFailureShowsErrorModal(t *testing.T) {
	tm := newTestModel(t, &stubService{err: meals.ErrEmptyResponse})

	tm.press("j", "enter")
	tm.pump()

	modal, ok := tm.m.stack.modal.(errorModal)
	if !ok || !errors.Is(modal.err, meals.ErrEmptyResponse) {
		t.Fatalf("modal = %#v, want empty response error", tm.m.stack.modal)
	}
	if !strings.Contains(tm.m.View(), "Error") {
		t.Fatalf("View() does not show the error modal")
	}

	tm.press("esc")
	if tm.m.stack.modal != nil {
		t.Fatalf("modal still open after esc")
	}
	if _, ok := tm.m.stack.top().(*menuView); !ok {
		t.Fatalf("esc on the modal must not pop the menu")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	tm := newTestModel(t, &stubService{})

	tm.press("T")
	if tm.m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", tm.m.theme.Name)
	}

	p, err := prefs.Load(tm.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestModel_SearchPickerFiltersAndRemembers(t *testing.T) {
	tm := newTestModel(t, &stubService{})

	tm.press("j", "j", "j", "enter")
	view, ok := tm.m.stack.top().(*ingredientsView)
	if !ok {
		t.Fatalf("top view = %T, want *ingredientsView", tm.m.stack.top())
	}

	// While the filter has focus, q is text, not quit.
	tm.press("/", "e", "g", "q")
	if !view.Capturing() {
		t.Fatalf("filter lost focus")
	}
	if view.state.Filter != "egq" {
		t.Fatalf("filter = %q, want egq", view.state.Filter)
	}
	tm.press("esc")
	if view.Capturing() {
		t.Fatalf("esc did not leave the filter")
	}
	if _, ok := tm.m.stack.top().(*ingredientsView); !ok {
		t.Fatalf("esc in the filter must not pop the picker")
	}

	tm.press("/", "backspace", "backspace", "backspace", "esc")
	if view.state.Filter != "" {
		t.Fatalf("filter = %q, want it cleared", view.state.Filter)
	}
	tm.press(" ", "enter")

	// No search service is configured, so the search reports an error after
	// remembering the pick.
	if tm.m.stack.modal == nil {
		t.Fatalf("expected an error modal")
	}
	p, err := prefs.Load(tm.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if len(p.Ingredients) != 1 || p.Ingredients[0] != "Meat" {
		t.Fatalf("remembered %v, want [Meat]", p.Ingredients)
	}
}
