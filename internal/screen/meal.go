package screen

import (
	"context"
	"fmt"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/state"
)

// MealState is the detail screen of one meal. MealTask and ImageTask are the
// in-flight detail and image fetches, nil when there is none. Left is set once
// the screen is popped; no fetch starts after that.
type MealState struct {
	Meal      meals.Meal
	Image     []byte
	Saved     bool
	Err       error
	ImageErr  error
	MealTask  *state.Task
	ImageTask *state.Task
	Left      bool
}

// Title is the meal name.
func (s MealState) Title() string { return s.Meal.Name }

func (s MealState) WithMeal(m meals.Meal) MealState {
	s.Meal = m
	return s
}

func (s MealState) WithImage(data []byte) MealState {
	s.Image = data
	return s
}

func (s MealState) WithSaved(v bool) MealState {
	s.Saved = v
	return s
}

func (s MealState) WithErr(err error) MealState {
	s.Err = err
	return s
}

func (s MealState) WithImageErr(err error) MealState {
	s.ImageErr = err
	return s
}

func (s MealState) WithMealTask(t *state.Task) MealState {
	s.MealTask = t
	return s
}

func (s MealState) WithImageTask(t *state.Task) MealState {
	s.ImageTask = t
	return s
}

func (s MealState) WithLeft(v bool) MealState {
	s.Left = v
	return s
}

// MealAction is one of MealLoad, MealLoadStarted, MealReceived,
// ImageLoadStarted, ImageReceived, MealFailed, ImageFailed, ToggleSave,
// MealSaved, MealUnsaved, SavedStateFetched, OpenVideo or MealLeave.
type MealAction interface{ mealAction() }

type (
	MealLoad struct{}
	// MealLoadStarted and ImageLoadStarted record the handle of a fetch so
	// leaving the screen can cancel it.
	MealLoadStarted   struct{ Task *state.Task }
	MealReceived      struct{ Meal meals.Meal }
	ImageLoadStarted  struct{ Task *state.Task }
	ImageReceived     struct{ Data []byte }
	MealFailed        struct{ Err error }
	ImageFailed       struct{ Err error }
	ToggleSave        struct{}
	MealSaved         struct{}
	MealUnsaved       struct{}
	SavedStateFetched struct{ Saved bool }
	OpenVideo         struct{}
	MealLeave         struct{}
)

func (MealLoad) mealAction()          {}
func (MealLoadStarted) mealAction()   {}
func (MealReceived) mealAction()      {}
func (ImageLoadStarted) mealAction()  {}
func (ImageReceived) mealAction()     {}
func (MealFailed) mealAction()        {}
func (ImageFailed) mealAction()       {}
func (ToggleSave) mealAction()        {}
func (MealSaved) mealAction()         {}
func (MealUnsaved) mealAction()       {}
func (SavedStateFetched) mealAction() {}
func (OpenVideo) mealAction()         {}
func (MealLeave) mealAction()         {}

// MealEffect is one of FetchMeal, FetchSavedState, FetchImage, SaveMeal,
// UnsaveMeal, OpenVideoLink, CancelMeal or CancelImage.
type MealEffect interface{ mealEffect() }

type (
	FetchMeal       struct{ Meal meals.Meal }
	FetchSavedState struct{}
	FetchImage      struct{ URL string }
	SaveMeal        struct{}
	UnsaveMeal      struct{}
	OpenVideoLink   struct{ URL string }
	CancelMeal      struct{ Task *state.Task }
	CancelImage     struct{ Task *state.Task }
)

func (FetchMeal) mealEffect()       {}
func (FetchSavedState) mealEffect() {}
func (FetchImage) mealEffect()      {}
func (SaveMeal) mealEffect()        {}
func (UnsaveMeal) mealEffect()      {}
func (OpenVideoLink) mealEffect()   {}
func (CancelMeal) mealEffect()      {}
func (CancelImage) mealEffect()     {}

type MealStore = state.Store[MealState, MealAction, MealEffect, MealEnv]

// NewMealStore returns the detail store for meal, which may only carry an id
// and a name until MealLoad fetches the rest.
func NewMealStore(rt state.Runtime, meal meals.Meal, env MealEnv) *MealStore {
	return state.New(rt.Named("meal"), MealState{Meal: meal}, ReduceMeal, HandleMeal, env)
}

// ReduceMeal is the meal detail reducer. A started fetch replaces and cancels
// the one it supersedes; after MealLeave every late handle is cancelled and no
// result starts new work.
func ReduceMeal(s MealState, action MealAction) (MealState, []MealEffect) {
	switch a := action.(type) {
	case MealLoad:
		if s.Left {
			return s, nil
		}
		return s.WithErr(nil), []MealEffect{FetchMeal{Meal: s.Meal}, FetchSavedState{}}
	case MealLoadStarted:
		if s.Left {
			return s, []MealEffect{CancelMeal{Task: a.Task}}
		}
		var effects []MealEffect
		if s.MealTask != nil && s.MealTask != a.Task {
			effects = append(effects, CancelMeal{Task: s.MealTask})
		}
		return s.WithMealTask(a.Task), effects
	case MealReceived:
		next := s.WithMeal(a.Meal).WithErr(nil).WithMealTask(nil)
		if s.Left || a.Meal.Thumb == "" {
			return next, nil
		}
		return next.WithImageErr(nil), []MealEffect{FetchImage{URL: a.Meal.Thumb}}
	case ImageLoadStarted:
		if s.Left {
			return s, []MealEffect{CancelImage{Task: a.Task}}
		}
		var effects []MealEffect
		if s.ImageTask != nil && s.ImageTask != a.Task {
			effects = append(effects, CancelImage{Task: s.ImageTask})
		}
		return s.WithImageTask(a.Task), effects
	case ImageReceived:
		return s.WithImage(a.Data).WithImageErr(nil).WithImageTask(nil), nil
	case MealFailed:
		return s.WithErr(a.Err).WithMealTask(nil), nil
	case ImageFailed:
		return s.WithImageErr(a.Err).WithImageTask(nil), nil
	case ToggleSave:
		if s.Saved {
			return s, []MealEffect{UnsaveMeal{}}
		}
		return s, []MealEffect{SaveMeal{}}
	case MealSaved:
		return s.WithSaved(true), nil
	case MealUnsaved:
		return s.WithSaved(false), nil
	case SavedStateFetched:
		return s.WithSaved(a.Saved), nil
	case OpenVideo:
		link := s.Meal.Link()
		if link == "" {
			return s, nil
		}
		return s, []MealEffect{OpenVideoLink{URL: link}}
	case MealLeave:
		var effects []MealEffect
		if s.MealTask != nil {
			effects = append(effects, CancelMeal{Task: s.MealTask})
		}
		if s.ImageTask != nil {
			effects = append(effects, CancelImage{Task: s.ImageTask})
		}
		return s.WithLeft(true).WithMealTask(nil).WithImageTask(nil), effects
	default:
		panic(fmt.Sprintf("screen: unknown meal action %T", action))
	}
}

// HandleMeal runs meal detail effects. Save and unsave touch the shared list
// synchronously and confirm with a nested dispatch.
func HandleMeal(store *MealStore, effect MealEffect) {
	env := store.Env()
	switch e := effect.(type) {
	case FetchMeal:
		task := store.Go(func(ctx context.Context) MealAction {
			meal, err := env.Meals.Meal(ctx, e.Meal)
			if err != nil {
				return MealFailed{Err: fmt.Errorf("fetch meal: %w", err)}
			}
			return MealReceived{Meal: meal}
		})
		store.Dispatch(MealLoadStarted{Task: task})
	case FetchSavedState:
		store.Dispatch(SavedStateFetched{Saved: env.Saved.IsSaved(store.State().Meal)})
	case FetchImage:
		task := store.Go(func(ctx context.Context) MealAction {
			data, err := env.Meals.Image(ctx, e.URL)
			if err != nil {
				return ImageFailed{Err: fmt.Errorf("fetch image: %w", err)}
			}
			return ImageReceived{Data: data}
		})
		store.Dispatch(ImageLoadStarted{Task: task})
	case SaveMeal:
		env.Saved.Save(store.State().Meal)
		store.Dispatch(MealSaved{})
	case UnsaveMeal:
		env.Saved.Unsave(store.State().Meal)
		store.Dispatch(MealUnsaved{})
	case OpenVideoLink:
		env.Navigator.Navigate(ToVideo{URL: e.URL})
	case CancelMeal:
		e.Task.Cancel()
	case CancelImage:
		e.Task.Cancel()
	default:
		panic(fmt.Sprintf("screen: unknown meal effect %T", effect))
	}
}
