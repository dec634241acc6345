package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/whattocook/internal/screen"
)

// screenView is one entry of the navigation stack. Views subscribe to their
// store and keep the latest snapshot; every method runs on the Bubble Tea
// goroutine, which is also the goroutine that drains the store mailbox.
type screenView interface {
	Title() string
	Hints(keys keyMap) []key.Binding
	// Enter runs once, right after the view is pushed.
	Enter()
	Update(msg tea.KeyMsg, keys keyMap) tea.Cmd
	View(r renderCtx) string
	Resize(width, height int)
	// Capturing reports whether plain keys belong to the view, as they do
	// while a text input is focused.
	Capturing() bool
	// Leave runs once, when the view is popped or replaced.
	Leave()
}

// renderCtx carries what a view needs to draw itself.
type renderCtx struct {
	theme   Theme
	styles  Styles
	width   int
	height  int
	spinner string
}

// Opener opens a URL outside the terminal.
type Opener func(url string) error

// DetailStrategy decides what selecting a meal in a list does.
type DetailStrategy int

const (
	// PushDetail pushes the meal detail screen.
	PushDetail DetailStrategy = iota
	// OpenLink opens the meal's page in the browser instead.
	OpenLink
)

var errNoLink = errors.New("this meal has no video or source link")

// navStack is the screen stack shared by the model and every navigator.
type navStack struct {
	views  []screenView
	modal  Modal
	open   Opener
	log    *zap.Logger
	width  int
	height int
}

func (s *navStack) top() screenView {
	if len(s.views) == 0 {
		return nil
	}
	return s.views[len(s.views)-1]
}

func (s *navStack) push(v screenView) {
	v.Resize(s.width, s.height)
	s.views = append(s.views, v)
	v.Enter()
}

// pop removes the top view. The root view stays.
func (s *navStack) pop() bool {
	if len(s.views) <= 1 {
		return false
	}
	top := s.views[len(s.views)-1]
	s.views = s.views[:len(s.views)-1]
	top.Leave()
	return true
}

// reset replaces the whole stack with v.
func (s *navStack) reset(v screenView) {
	for i := len(s.views) - 1; i >= 0; i-- {
		s.views[i].Leave()
	}
	s.views = nil
	s.push(v)
}

func (s *navStack) resize(width, height int) {
	s.width, s.height = width, height
	for _, v := range s.views {
		v.Resize(width, height)
	}
}

func (s *navStack) titles() []string {
	out := make([]string, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, v.Title())
	}
	return out
}

func (s *navStack) showError(err error) {
	if err == nil {
		return
	}
	s.log.Warn("showing error", zap.Error(err))
	s.modal = errorModal{err: err}
}

func (s *navStack) openURL(url string) {
	if url == "" {
		s.showError(errNoLink)
		return
	}
	s.log.Info("opening link", zap.String("url", url))
	if err := s.open(url); err != nil {
		s.showError(fmt.Errorf("open %s: %w", url, err))
	}
}

type rootNav struct{ stack *navStack }

func (n rootNav) SetRoot(store *screen.MenuStore) { n.stack.reset(newMenuView(store)) }

type menuNav struct{ stack *navStack }

func (n menuNav) ShowError(err error) { n.stack.showError(err) }

func (n menuNav) Categories() screen.CategoriesNavigator { return categoriesNav(n) }

func (n menuNav) Search() screen.SearchNavigator { return searchNav(n) }

func (n menuNav) Navigate(to screen.MenuDestination) {
	switch d := to.(type) {
	case screen.ToExplore:
		n.stack.push(newCategoriesView(d.Store))
	case screen.ToRandom:
		n.stack.push(newMealView(d.Store))
	case screen.ToSaved:
		n.stack.push(newMealsView(d.Store))
	case screen.ToSearch:
		n.stack.push(newIngredientsView(d.Store))
	default:
		panic(fmt.Sprintf("ui: unknown menu destination %T", to))
	}
}

type categoriesNav struct{ stack *navStack }

func (n categoriesNav) ShowError(err error) { n.stack.showError(err) }

func (n categoriesNav) Meals() screen.MealsNavigator {
	return mealsNav{stack: n.stack, strategy: PushDetail}
}

func (n categoriesNav) Navigate(to screen.CategoriesDestination) {
	switch d := to.(type) {
	case screen.ToMealsList:
		n.stack.push(newMealsView(d.Store))
	default:
		panic(fmt.Sprintf("ui: unknown categories destination %T", to))
	}
}

// mealsNav shows a selected meal according to its strategy. Search results
// carry only a title and a link, so that list opens the link directly.
type mealsNav struct {
	stack    *navStack
	strategy DetailStrategy
}

func (n mealsNav) ShowError(err error) { n.stack.showError(err) }

func (n mealsNav) Meal() screen.MealNavigator { return mealNav{stack: n.stack} }

func (n mealsNav) Navigate(to screen.MealsDestination) {
	switch d := to.(type) {
	case screen.ToMealDetails:
		if n.strategy == OpenLink {
			n.stack.openURL(d.Store.State().Meal.Link())
			return
		}
		n.stack.push(newMealView(d.Store))
	default:
		panic(fmt.Sprintf("ui: unknown meals destination %T", to))
	}
}

type mealNav struct{ stack *navStack }

func (n mealNav) ShowError(err error) { n.stack.showError(err) }

func (n mealNav) Navigate(to screen.MealDestination) {
	switch d := to.(type) {
	case screen.ToVideo:
		n.stack.openURL(d.URL)
	default:
		panic(fmt.Sprintf("ui: unknown meal destination %T", to))
	}
}

type searchNav struct{ stack *navStack }

func (n searchNav) ShowError(err error) { n.stack.showError(err) }

func (n searchNav) Results() screen.MealsNavigator {
	return mealsNav{stack: n.stack, strategy: OpenLink}
}

func (n searchNav) Navigate(to screen.SearchDestination) {
	switch d := to.(type) {
	case screen.ToSearchResults:
		n.stack.push(newMealsView(d.Store))
	default:
		panic(fmt.Sprintf("ui: unknown search destination %T", to))
	}
}
