package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/screen"
	"github.com/five82/whattocook/internal/state"
)

// RandomMeal asks the menu for a random meal without starting the TUI.
func RandomMeal(ctx context.Context, opts Options) (meal meals.Meal, err error) {
	s, err := open(opts)
	if err != nil {
		return meals.Meal{}, err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	return randomMeal(ctx, s.log, s.shared)
}

// SavedMeals lists the saved meals the way the saved screen loads them.
func SavedMeals(ctx context.Context, opts Options) (list []meals.Meal, err error) {
	s, err := open(opts)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	return savedMeals(ctx, s.log, s.shared)
}

// SearchMeals runs an ingredient search and returns its first page.
func SearchMeals(ctx context.Context, opts Options, ingredients []string) (list []meals.Meal, err error) {
	s, err := open(opts)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	return searchMeals(ctx, s.log, s.shared, ingredients)
}

func randomMeal(ctx context.Context, log *zap.Logger, shared screen.Shared) (meals.Meal, error) {
	d := newDriver(ctx, log)
	defer d.close()

	menu := screen.NewMenuStore(d.rt, screen.MenuEnv{Shared: shared, Navigator: headlessMenu{d}})
	menu.Dispatch(screen.MenuRandom{})
	if err := d.settle(ctx, func() bool { return d.random != nil }); err != nil {
		return meals.Meal{}, err
	}
	return d.random.State().Meal, nil
}

func savedMeals(ctx context.Context, log *zap.Logger, shared screen.Shared) ([]meals.Meal, error) {
	d := newDriver(ctx, log)
	defer d.close()

	menu := screen.NewMenuStore(d.rt, screen.MenuEnv{Shared: shared, Navigator: headlessMenu{d}})
	menu.Dispatch(screen.MenuSaved{})
	if d.list == nil {
		return nil, d.failure("saved")
	}
	return d.load(ctx, d.list)
}

func searchMeals(ctx context.Context, log *zap.Logger, shared screen.Shared, ingredients []string) ([]meals.Meal, error) {
	catalogue := make([]screen.Ingredient, 0, len(ingredients))
	for _, name := range ingredients {
		if name = strings.TrimSpace(name); name != "" {
			catalogue = append(catalogue, screen.Ingredient{Name: name, Selected: true})
		}
	}
	if len(catalogue) == 0 {
		return nil, screen.ErrNoIngredients
	}
	shared.Ingredients = catalogue
	shared.Remember = nil

	d := newDriver(ctx, log)
	defer d.close()

	menu := screen.NewMenuStore(d.rt, screen.MenuEnv{Shared: shared, Navigator: headlessMenu{d}})
	menu.Dispatch(screen.MenuSearch{})
	if d.picker == nil {
		return nil, d.failure("search")
	}
	d.picker.Dispatch(screen.SearchIngredients{})
	if d.list == nil {
		return nil, d.failure("search results")
	}
	return d.load(ctx, d.list)
}

// driver stands in for the TUI: it drains the store mailbox on the calling
// goroutine and records where the stores navigate.
type driver struct {
	mb  *state.Mailbox
	rt  state.Runtime
	err error

	random *screen.MealStore
	list   *screen.MealsStore
	picker *screen.IngredientsStore
}

func newDriver(ctx context.Context, log *zap.Logger) *driver {
	mb := state.NewMailbox(0)
	return &driver{
		mb: mb,
		rt: state.Runtime{Exec: mb, Context: ctx, Logger: log.Named("headless")},
	}
}

func (d *driver) close() { d.mb.Close() }

// settle runs posted closures until done reports true, a navigator reports
// an error or ctx ends.
func (d *driver) settle(ctx context.Context, done func() bool) error {
	for d.err == nil && !done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-d.mb.C():
			fn()
		}
	}
	return d.err
}

// load fetches the first page of a meal list.
func (d *driver) load(ctx context.Context, list *screen.MealsStore) ([]meals.Meal, error) {
	list.Dispatch(screen.MealsLoad{})
	err := d.settle(ctx, func() bool {
		switch list.State().Content.Phase() {
		case state.PhaseData, state.PhaseEmpty, state.PhaseFailed:
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	content := list.State().Content
	if err := content.Err(); err != nil {
		return nil, err
	}
	data, _ := content.Data()
	return data, nil
}

func (d *driver) failure(name string) error {
	if d.err != nil {
		return d.err
	}
	return fmt.Errorf("%s screen did not open", name)
}

func (d *driver) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

type headlessMenu struct{ d *driver }

func (n headlessMenu) ShowError(err error)                    { n.d.fail(err) }
func (n headlessMenu) Categories() screen.CategoriesNavigator { return headlessCategories(n) }
func (n headlessMenu) Search() screen.SearchNavigator         { return headlessSearch(n) }

func (n headlessMenu) Navigate(to screen.MenuDestination) {
	switch dest := to.(type) {
	case screen.ToRandom:
		n.d.random = dest.Store
	case screen.ToSaved:
		n.d.list = dest.Store
	case screen.ToSearch:
		n.d.picker = dest.Store
	case screen.ToExplore:
		n.d.fail(errors.New("explore needs the interactive UI"))
	default:
		panic(fmt.Sprintf("app: unknown menu destination %T", to))
	}
}

type headlessCategories struct{ d *driver }

func (n headlessCategories) ShowError(err error)          { n.d.fail(err) }
func (n headlessCategories) Meals() screen.MealsNavigator { return headlessMeals(n) }

func (n headlessCategories) Navigate(to screen.CategoriesDestination) {
	n.d.fail(fmt.Errorf("unexpected categories destination %T", to))
}

type headlessMeals struct{ d *driver }

func (n headlessMeals) ShowError(err error)        { n.d.fail(err) }
func (n headlessMeals) Meal() screen.MealNavigator { return headlessMeal(n) }

func (n headlessMeals) Navigate(to screen.MealsDestination) {
	n.d.fail(fmt.Errorf("unexpected meals destination %T", to))
}

type headlessMeal struct{ d *driver }

func (n headlessMeal) ShowError(err error) { n.d.fail(err) }

func (n headlessMeal) Navigate(to screen.MealDestination) {
	n.d.fail(fmt.Errorf("unexpected meal destination %T", to))
}

type headlessSearch struct{ d *driver }

func (n headlessSearch) ShowError(err error)            { n.d.fail(err) }
func (n headlessSearch) Results() screen.MealsNavigator { return headlessMeals(n) }

func (n headlessSearch) Navigate(to screen.SearchDestination) {
	switch dest := to.(type) {
	case screen.ToSearchResults:
		n.d.list = dest.Store
	default:
		panic(fmt.Sprintf("app: unknown search destination %T", to))
	}
}
