package screen

// ErrorPresenter shows a failure to the user. Every navigator can do it.
type ErrorPresenter interface {
	ShowError(err error)
}

// RootNavigator installs the first screen of a session.
type RootNavigator interface {
	SetRoot(store *MenuStore)
}

// MenuNavigator moves from the menu to its four sections.
type MenuNavigator interface {
	ErrorPresenter
	Categories() CategoriesNavigator
	Search() SearchNavigator
	Navigate(to MenuDestination)
}

// CategoriesNavigator moves from the category list to a category's meals.
type CategoriesNavigator interface {
	ErrorPresenter
	Meals() MealsNavigator
	Navigate(to CategoriesDestination)
}

// MealsNavigator moves from a meal list to one meal. Implementations decide
// what showing a meal means in their context.
type MealsNavigator interface {
	ErrorPresenter
	Meal() MealNavigator
	Navigate(to MealsDestination)
}

// MealNavigator leaves the meal detail screen for an external link.
type MealNavigator interface {
	ErrorPresenter
	Navigate(to MealDestination)
}

// SearchNavigator moves from the ingredient picker to the search results.
type SearchNavigator interface {
	ErrorPresenter
	Results() MealsNavigator
	Navigate(to SearchDestination)
}

// MenuDestination is one of ToExplore, ToRandom, ToSaved or ToSearch.
type MenuDestination interface{ menuDestination() }

// ToExplore opens the category list.
type ToExplore struct{ Store *CategoriesStore }

// ToRandom opens the detail screen of a random meal.
type ToRandom struct{ Store *MealStore }

// ToSaved opens the saved meal list.
type ToSaved struct{ Store *MealsStore }

// ToSearch opens the ingredient picker.
type ToSearch struct{ Store *IngredientsStore }

func (ToExplore) menuDestination() {}
func (ToRandom) menuDestination()  {}
func (ToSaved) menuDestination()   {}
func (ToSearch) menuDestination()  {}

// CategoriesDestination is ToMealsList.
type CategoriesDestination interface{ categoriesDestination() }

// ToMealsList opens the meals of one category.
type ToMealsList struct{ Store *MealsStore }

func (ToMealsList) categoriesDestination() {}

// MealsDestination is ToMealDetails.
type MealsDestination interface{ mealsDestination() }

// ToMealDetails shows one meal.
type ToMealDetails struct{ Store *MealStore }

func (ToMealDetails) mealsDestination() {}

// MealDestination is ToVideo.
type MealDestination interface{ mealDestination() }

// ToVideo opens an external video or recipe page.
type ToVideo struct{ URL string }

func (ToVideo) mealDestination() {}

// SearchDestination is ToSearchResults.
type SearchDestination interface{ searchDestination() }

// ToSearchResults opens the meals matching the picked ingredients.
type ToSearchResults struct{ Store *MealsStore }

func (ToSearchResults) searchDestination() {}
