package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/state"
)

// ErrNoIngredients is shown when a search is started with nothing picked.
var ErrNoIngredients = errors.New("no ingredients picked")

// Ingredient is one pickable search term. Name is its key.
type Ingredient struct {
	Name     string
	Icon     string
	Selected bool
}

// DefaultIngredients returns the built-in catalogue, nothing selected.
func DefaultIngredients() []Ingredient {
	return []Ingredient{
		{Name: "Meat", Icon: "🥩"},
		{Name: "Chicken", Icon: "🍗"},
		{Name: "Egg", Icon: "🥚"},
		{Name: "Noodle", Icon: "🍜"},
		{Name: "Tomato", Icon: "🍅"},
		{Name: "Apple", Icon: "🍎"},
	}
}

// RestoreSelection returns a copy of items with exactly the named ones
// selected. Names are matched case-insensitively; unknown names are ignored.
func RestoreSelection(items []Ingredient, names []string) []Ingredient {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}
	out := make([]Ingredient, len(items))
	for i, it := range items {
		it.Selected = want[strings.ToLower(it.Name)]
		out[i] = it
	}
	return out
}

// IngredientsState is the ingredient picker. Items is the full catalogue;
// Displayed is the part of it matching Filter.
type IngredientsState struct {
	Items  []Ingredient
	Filter string
}

func (s IngredientsState) WithItems(items []Ingredient) IngredientsState {
	s.Items = items
	return s
}

func (s IngredientsState) WithFilter(text string) IngredientsState {
	s.Filter = text
	return s
}

// Displayed returns the items whose name contains the filter, ignoring case.
// An empty filter shows everything.
func (s IngredientsState) Displayed() []Ingredient {
	needle := strings.ToLower(strings.TrimSpace(s.Filter))
	if needle == "" {
		return append([]Ingredient(nil), s.Items...)
	}
	var out []Ingredient
	for _, it := range s.Items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Selected returns the names of the selected items in catalogue order.
func (s IngredientsState) Selected() []string {
	var out []string
	for _, it := range s.Items {
		if it.Selected {
			out = append(out, it.Name)
		}
	}
	return out
}

// IngredientsAction is one of SetFilter, SelectIngredient, ClearSelection or
// SearchIngredients.
type IngredientsAction interface{ ingredientsAction() }

type (
	SetFilter struct{ Text string }
	// SelectIngredient toggles the item at Index of the displayed view.
	SelectIngredient  struct{ Index int }
	ClearSelection    struct{}
	SearchIngredients struct{}
)

func (SetFilter) ingredientsAction()         {}
func (SelectIngredient) ingredientsAction()  {}
func (ClearSelection) ingredientsAction()    {}
func (SearchIngredients) ingredientsAction() {}

// IngredientsEffect is NavigateToResults.
type IngredientsEffect interface{ ingredientsEffect() }

// NavigateToResults starts a search for Names.
type NavigateToResults struct{ Names []string }

func (NavigateToResults) ingredientsEffect() {}

type IngredientsStore = state.Store[IngredientsState, IngredientsAction, IngredientsEffect, IngredientsEnv]

// NewIngredientsStore returns a picker over a copy of items.
func NewIngredientsStore(rt state.Runtime, items []Ingredient, env IngredientsEnv) *IngredientsStore {
	initial := IngredientsState{Items: append([]Ingredient(nil), items...)}
	return state.New(rt.Named("ingredients"), initial, ReduceIngredients, HandleIngredients, env)
}

// ReduceIngredients is the ingredient picker reducer. Selection resolves the
// displayed index to a name first, so a later filter change cannot shift it
// onto another item.
func ReduceIngredients(s IngredientsState, action IngredientsAction) (IngredientsState, []IngredientsEffect) {
	switch a := action.(type) {
	case SetFilter:
		return s.WithFilter(a.Text), nil
	case SelectIngredient:
		shown := s.Displayed()
		if a.Index < 0 || a.Index >= len(shown) {
			return s, nil
		}
		key := shown[a.Index].Name
		items := append([]Ingredient(nil), s.Items...)
		for i := range items {
			if items[i].Name == key {
				items[i].Selected = !items[i].Selected
				break
			}
		}
		return s.WithItems(items), nil
	case ClearSelection:
		items := append([]Ingredient(nil), s.Items...)
		for i := range items {
			items[i].Selected = false
		}
		return s.WithItems(items), nil
	case SearchIngredients:
		return s, []IngredientsEffect{NavigateToResults{Names: s.Selected()}}
	default:
		panic(fmt.Sprintf("screen: unknown ingredients action %T", action))
	}
}

// HandleIngredients runs ingredient picker effects.
func HandleIngredients(store *IngredientsStore, effect IngredientsEffect) {
	env := store.Env()
	switch e := effect.(type) {
	case NavigateToResults:
		if len(e.Names) == 0 {
			env.Navigator.ShowError(fmt.Errorf("start search: %w", ErrNoIngredients))
			return
		}
		if env.Remember != nil {
			env.Remember(e.Names)
		}
		if env.Search == nil {
			env.Navigator.ShowError(fmt.Errorf("start search: %w", meals.ErrNotSupported))
			return
		}
		svc, err := env.Search(e.Names)
		if err != nil {
			env.Navigator.ShowError(fmt.Errorf("start search: %w", err))
			return
		}
		child := NewMealsStore(store.Runtime(), meals.SearchCategory, MealsEnv{
			Saved:     env.Saved,
			Meals:     svc,
			Navigator: env.Navigator.Results(),
		})
		env.Navigator.Navigate(ToSearchResults{Store: child})
	default:
		panic(fmt.Sprintf("screen: unknown ingredients effect %T", effect))
	}
}
