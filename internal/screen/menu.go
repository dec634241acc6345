package screen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/state"
)

// MenuState tracks whether a random meal is on its way.
type MenuState struct {
	Fetching bool
}

// WithFetching returns a copy with Fetching set.
func (s MenuState) WithFetching(v bool) MenuState {
	s.Fetching = v
	return s
}

// MenuAction is one of MenuExplore, MenuRandom, MenuSaved, MenuSearch,
// RandomReceived or MenuFailed.
type MenuAction interface{ menuAction() }

type (
	MenuExplore struct{}
	MenuRandom  struct{}
	MenuSaved   struct{}
	MenuSearch  struct{}

	// RandomReceived carries the meal picked by the service.
	RandomReceived struct{ Meal meals.Meal }
	// MenuFailed carries a failure to show to the user.
	MenuFailed struct{ Err error }
)

func (MenuExplore) menuAction()    {}
func (MenuRandom) menuAction()     {}
func (MenuSaved) menuAction()      {}
func (MenuSearch) menuAction()     {}
func (RandomReceived) menuAction() {}
func (MenuFailed) menuAction()     {}

// MenuEffect is one of NavigateToExplore, FetchRandom, NavigateToRandom,
// NavigateToSaved, NavigateToSearch or ShowError.
type MenuEffect interface{ menuEffect() }

type (
	NavigateToExplore struct{}
	FetchRandom       struct{}
	NavigateToRandom  struct{ Meal meals.Meal }
	NavigateToSaved   struct{}
	NavigateToSearch  struct{}
	ShowError         struct{ Err error }
)

func (NavigateToExplore) menuEffect() {}
func (FetchRandom) menuEffect()       {}
func (NavigateToRandom) menuEffect()  {}
func (NavigateToSaved) menuEffect()   {}
func (NavigateToSearch) menuEffect()  {}
func (ShowError) menuEffect()         {}

type MenuStore = state.Store[MenuState, MenuAction, MenuEffect, MenuEnv]

// NewMenuStore returns the root menu store.
func NewMenuStore(rt state.Runtime, env MenuEnv) *MenuStore {
	return state.New(rt.Named("menu"), MenuState{}, ReduceMenu, HandleMenu, env)
}

// ReduceMenu is the menu reducer. A second random request while one is in
// flight is ignored.
func ReduceMenu(s MenuState, action MenuAction) (MenuState, []MenuEffect) {
	switch a := action.(type) {
	case MenuExplore:
		return s, []MenuEffect{NavigateToExplore{}}
	case MenuRandom:
		if s.Fetching {
			return s, nil
		}
		return s.WithFetching(true), []MenuEffect{FetchRandom{}}
	case MenuSaved:
		return s, []MenuEffect{NavigateToSaved{}}
	case MenuSearch:
		return s, []MenuEffect{NavigateToSearch{}}
	case RandomReceived:
		return s.WithFetching(false), []MenuEffect{NavigateToRandom{Meal: a.Meal}}
	case MenuFailed:
		return s.WithFetching(false), []MenuEffect{ShowError{Err: a.Err}}
	default:
		panic(fmt.Sprintf("screen: unknown menu action %T", action))
	}
}

// HandleMenu runs menu effects.
func HandleMenu(store *MenuStore, effect MenuEffect) {
	env := store.Env()
	rt := store.Runtime()
	switch e := effect.(type) {
	case NavigateToExplore:
		nav := env.Navigator.Categories()
		child := NewCategoriesStore(rt, CategoriesEnv{
			Saved:     env.Saved,
			Meals:     env.Meals,
			Navigator: nav,
		})
		env.Navigator.Navigate(ToExplore{Store: child})
	case FetchRandom:
		store.Go(func(ctx context.Context) MenuAction {
			meal, err := env.Meals.RandomMeal(ctx)
			if err != nil {
				return MenuFailed{Err: fmt.Errorf("fetch random meal: %w", err)}
			}
			return RandomReceived{Meal: meal}
		})
	case NavigateToRandom:
		child := NewMealStore(rt, e.Meal, MealEnv{
			Saved:     env.Saved,
			Meals:     env.Meals,
			Navigator: env.Navigator.Categories().Meals().Meal(),
		})
		env.Navigator.Navigate(ToRandom{Store: child})
	case NavigateToSaved:
		child := NewMealsStore(rt, meals.SavedCategory, MealsEnv{
			Saved:     env.Saved,
			Meals:     env.SavedMeals,
			Navigator: env.Navigator.Categories().Meals(),
		})
		env.Navigator.Navigate(ToSaved{Store: child})
	case NavigateToSearch:
		catalogue := env.Ingredients
		if catalogue == nil {
			catalogue = DefaultIngredients()
		}
		child := NewIngredientsStore(rt, catalogue, IngredientsEnv{
			Saved:     env.Saved,
			Search:    env.Search,
			Remember:  env.Remember,
			Navigator: env.Navigator.Search(),
		})
		env.Navigator.Navigate(ToSearch{Store: child})
	case ShowError:
		store.Logger().Warn("menu error", zap.Error(e.Err))
		env.Navigator.ShowError(e.Err)
	default:
		panic(fmt.Sprintf("screen: unknown menu effect %T", effect))
	}
}
