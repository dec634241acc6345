package screen

import (
	"github.com/five82/whattocook/internal/meals"
)

// SearchFactory builds the service that answers an ingredient search.
type SearchFactory func(ingredients []string) (meals.Service, error)

// Shared holds the collaborators one session hands down from the app store
// to every screen. The saved list is shared by pointer.
type Shared struct {
	Saved      *meals.SavedList
	Meals      meals.Service
	SavedMeals meals.Service
	Search     SearchFactory

	// Ingredients is the picker's starting catalogue. Nil uses
	// DefaultIngredients.
	Ingredients []Ingredient
	// Remember, when set, receives the selected ingredient names each time
	// a search starts.
	Remember func(selected []string)
}

// AppEnv is the environment of the app store.
type AppEnv struct {
	Shared
	Root RootNavigator
	Menu MenuNavigator
}

// MenuEnv is the environment of the menu store.
type MenuEnv struct {
	Shared
	Navigator MenuNavigator
}

// CategoriesEnv is the environment of the category list.
type CategoriesEnv struct {
	Saved     *meals.SavedList
	Meals     meals.Service
	Navigator CategoriesNavigator
}

// MealsEnv is the environment of a meal list. Meals is whichever service
// backs the list: network, saved or search.
type MealsEnv struct {
	Saved     *meals.SavedList
	Meals     meals.Service
	Navigator MealsNavigator
}

// MealEnv is the environment of the meal detail screen.
type MealEnv struct {
	Saved     *meals.SavedList
	Meals     meals.Service
	Navigator MealNavigator
}

// IngredientsEnv is the environment of the ingredient picker.
type IngredientsEnv struct {
	Saved     *meals.SavedList
	Search    SearchFactory
	Remember  func(selected []string)
	Navigator SearchNavigator
}
