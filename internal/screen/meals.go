package screen

import (
	"context"
	"fmt"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/state"
)

// MealsState is a paginated meal list for one category.
//
// NextPage is the token of the page after the last one received, zero when
// there is none. MoreErr records why the last attempt to load more failed;
// the list itself stays usable.
type MealsState struct {
	Title    string
	Category meals.Category
	Content  state.Content[[]meals.Meal]
	NextPage int
	MoreErr  error
}

func (s MealsState) WithContent(c state.Content[[]meals.Meal]) MealsState {
	s.Content = c
	return s
}

func (s MealsState) WithNextPage(page int) MealsState {
	s.NextPage = page
	return s
}

func (s MealsState) WithMoreErr(err error) MealsState {
	s.MoreErr = err
	return s
}

// MealsAction is one of MealsLoad, MealsRetry, MealsReceived, MealsFailed,
// ReachEndOfList, MoreMealsReceived, MoreMealsFailed or SelectMeal.
type MealsAction interface{ mealsAction() }

type (
	MealsLoad         struct{}
	MealsRetry        struct{}
	MealsReceived     struct{ Page meals.Page }
	MealsFailed       struct{ Err error }
	ReachEndOfList    struct{}
	MoreMealsReceived struct{ Page meals.Page }
	MoreMealsFailed   struct{ Err error }
	SelectMeal        struct{ Index int }
)

func (MealsLoad) mealsAction()         {}
func (MealsRetry) mealsAction()        {}
func (MealsReceived) mealsAction()     {}
func (MealsFailed) mealsAction()       {}
func (ReachEndOfList) mealsAction()    {}
func (MoreMealsReceived) mealsAction() {}
func (MoreMealsFailed) mealsAction()   {}
func (SelectMeal) mealsAction()        {}

// MealsEffect is one of FetchMeals, FetchMoreMeals or NavigateToMeal.
type MealsEffect interface{ mealsEffect() }

type (
	FetchMeals     struct{}
	FetchMoreMeals struct{ Page int }
	NavigateToMeal struct{ Meal meals.Meal }
)

func (FetchMeals) mealsEffect()     {}
func (FetchMoreMeals) mealsEffect() {}
func (NavigateToMeal) mealsEffect() {}

type MealsStore = state.Store[MealsState, MealsAction, MealsEffect, MealsEnv]

// NewMealsStore returns an idle meal list for category.
func NewMealsStore(rt state.Runtime, category meals.Category, env MealsEnv) *MealsStore {
	initial := MealsState{
		Title:    category.Name,
		Category: category,
		Content:  state.Idle[[]meals.Meal](),
	}
	return state.New(rt.Named("meals"), initial, ReduceMeals, HandleMeals, env)
}

// ReduceMeals is the meal list reducer.
func ReduceMeals(s MealsState, action MealsAction) (MealsState, []MealsEffect) {
	switch a := action.(type) {
	case MealsLoad, MealsRetry:
		next := s.WithContent(state.Loading[[]meals.Meal]()).WithNextPage(0).WithMoreErr(nil)
		return next, []MealsEffect{FetchMeals{}}

	case MealsReceived:
		if len(a.Page.Meals) == 0 {
			return s.WithContent(state.Empty[[]meals.Meal]()).WithNextPage(0), nil
		}
		list := append([]meals.Meal(nil), a.Page.Meals...)
		return s.WithContent(state.Loaded(list)).WithNextPage(a.Page.NextPage), nil

	case MealsFailed:
		return s.WithContent(state.Failed[[]meals.Meal](a.Err)), nil

	case ReachEndOfList:
		if s.Content.Phase() != state.PhaseData || s.NextPage == 0 {
			return s, nil
		}
		next := s.WithContent(state.LoadingMore(s.Content.MustData())).WithMoreErr(nil)
		return next, []MealsEffect{FetchMoreMeals{Page: s.NextPage}}

	case MoreMealsReceived:
		if s.Content.Phase() != state.PhaseLoadingMore {
			return s, nil
		}
		have := s.Content.MustData()
		if len(a.Page.Meals) == 0 {
			// A trailing empty page ends pagination and keeps what is shown.
			return s.WithContent(state.Loaded(have)).WithNextPage(0), nil
		}
		list := make([]meals.Meal, 0, len(have)+len(a.Page.Meals))
		list = append(list, have...)
		list = append(list, a.Page.Meals...)
		return s.WithContent(state.Loaded(list)).WithNextPage(a.Page.NextPage), nil

	case MoreMealsFailed:
		if s.Content.Phase() != state.PhaseLoadingMore {
			return s, nil
		}
		return s.WithContent(state.Loaded(s.Content.MustData())).WithMoreErr(a.Err), nil

	case SelectMeal:
		list, ok := s.Content.Data()
		if !ok || a.Index < 0 || a.Index >= len(list) {
			return s, nil
		}
		return s, []MealsEffect{NavigateToMeal{Meal: list[a.Index]}}

	default:
		panic(fmt.Sprintf("screen: unknown meals action %T", action))
	}
}

// HandleMeals runs meal list effects.
func HandleMeals(store *MealsStore, effect MealsEffect) {
	env := store.Env()
	category := store.State().Category
	switch e := effect.(type) {
	case FetchMeals:
		store.Go(func(ctx context.Context) MealsAction {
			page, err := env.Meals.Meals(ctx, category, 0)
			if err != nil {
				return MealsFailed{Err: fmt.Errorf("fetch meals: %w", err)}
			}
			return MealsReceived{Page: page}
		})
	case FetchMoreMeals:
		store.Go(func(ctx context.Context) MealsAction {
			page, err := env.Meals.Meals(ctx, category, e.Page)
			if err != nil {
				return MoreMealsFailed{Err: fmt.Errorf("fetch page %d: %w", e.Page, err)}
			}
			return MoreMealsReceived{Page: page}
		})
	case NavigateToMeal:
		child := NewMealStore(store.Runtime(), e.Meal, MealEnv{
			Saved:     env.Saved,
			Meals:     env.Meals,
			Navigator: env.Navigator.Meal(),
		})
		env.Navigator.Navigate(ToMealDetails{Store: child})
	default:
		panic(fmt.Sprintf("screen: unknown meals effect %T", effect))
	}
}
