package screen

import (
	"context"
	"fmt"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/state"
)

const (
	categoriesTitle = "Categories"
	errorTitle      = "Error"
)

// CategoriesState is the category list.
type CategoriesState struct {
	Title   string
	Content state.Content[[]meals.Category]
}

func (s CategoriesState) WithTitle(title string) CategoriesState {
	s.Title = title
	return s
}

func (s CategoriesState) WithContent(c state.Content[[]meals.Category]) CategoriesState {
	s.Content = c
	return s
}

// CategoriesAction is one of CategoriesLoad, CategoriesRetry,
// CategoriesReceived, CategoriesFailed or SelectCategory.
type CategoriesAction interface{ categoriesAction() }

type (
	CategoriesLoad     struct{}
	CategoriesRetry    struct{}
	CategoriesReceived struct{ Categories []meals.Category }
	CategoriesFailed   struct{ Err error }
	SelectCategory     struct{ Index int }
)

func (CategoriesLoad) categoriesAction()     {}
func (CategoriesRetry) categoriesAction()    {}
func (CategoriesReceived) categoriesAction() {}
func (CategoriesFailed) categoriesAction()   {}
func (SelectCategory) categoriesAction()     {}

// CategoriesEffect is FetchCategories or NavigateToMeals.
type CategoriesEffect interface{ categoriesEffect() }

type (
	FetchCategories struct{}
	NavigateToMeals struct{ Category meals.Category }
)

func (FetchCategories) categoriesEffect() {}
func (NavigateToMeals) categoriesEffect() {}

type CategoriesStore = state.Store[CategoriesState, CategoriesAction, CategoriesEffect, CategoriesEnv]

// NewCategoriesStore returns an idle category list.
func NewCategoriesStore(rt state.Runtime, env CategoriesEnv) *CategoriesStore {
	initial := CategoriesState{Title: categoriesTitle, Content: state.Idle[[]meals.Category]()}
	return state.New(rt.Named("categories"), initial, ReduceCategories, HandleCategories, env)
}

// ReduceCategories is the category list reducer.
func ReduceCategories(s CategoriesState, action CategoriesAction) (CategoriesState, []CategoriesEffect) {
	switch a := action.(type) {
	case CategoriesLoad, CategoriesRetry:
		return s.WithContent(state.Loading[[]meals.Category]()), []CategoriesEffect{FetchCategories{}}
	case CategoriesReceived:
		if len(a.Categories) == 0 {
			return s.WithTitle(categoriesTitle).WithContent(state.Empty[[]meals.Category]()), nil
		}
		list := append([]meals.Category(nil), a.Categories...)
		return s.WithTitle(categoriesTitle).WithContent(state.Loaded(list)), nil
	case CategoriesFailed:
		return s.WithTitle(errorTitle).WithContent(state.Failed[[]meals.Category](a.Err)), nil
	case SelectCategory:
		list, ok := s.Content.Data()
		if !ok || a.Index < 0 || a.Index >= len(list) {
			return s, nil
		}
		return s, []CategoriesEffect{NavigateToMeals{Category: list[a.Index]}}
	default:
		panic(fmt.Sprintf("screen: unknown categories action %T", action))
	}
}

// HandleCategories runs category list effects.
func HandleCategories(store *CategoriesStore, effect CategoriesEffect) {
	env := store.Env()
	switch e := effect.(type) {
	case FetchCategories:
		store.Go(func(ctx context.Context) CategoriesAction {
			list, err := env.Meals.Categories(ctx)
			if err != nil {
				return CategoriesFailed{Err: fmt.Errorf("fetch categories: %w", err)}
			}
			return CategoriesReceived{Categories: list}
		})
	case NavigateToMeals:
		child := NewMealsStore(store.Runtime(), e.Category, MealsEnv{
			Saved:     env.Saved,
			Meals:     env.Meals,
			Navigator: env.Navigator.Meals(),
		})
		env.Navigator.Navigate(ToMealsList{Store: child})
	default:
		panic(fmt.Sprintf("screen: unknown categories effect %T", effect))
	}
}
