package mealdb

import (
	"strings"

	"github.com/five82/whattocook/internal/meals"
)

// mealsResponse mirrors random.php, filter.php and lookup.php. An unknown id
// or empty category comes back as {"meals": null}.
type mealsResponse struct {
	Meals []rawMeal `json:"meals"`
}

type rawMeal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Thumb        string `json:"strMealThumb"`
	YouTube      string `json:"strYoutube"`
	Source       string `json:"strSource"`
}

func (r rawMeal) toMeal() meals.Meal {
	return meals.Meal{
		ID:           strings.TrimSpace(r.ID),
		Name:         strings.TrimSpace(r.Name),
		Category:     strings.TrimSpace(r.Category),
		Area:         strings.TrimSpace(r.Area),
		Instructions: strings.TrimSpace(r.Instructions),
		Thumb:        strings.TrimSpace(r.Thumb),
		YouTube:      strings.TrimSpace(r.YouTube),
		Source:       strings.TrimSpace(r.Source),
	}
}

// categoriesResponse mirrors categories.php.
type categoriesResponse struct {
	Categories []rawCategory `json:"categories"`
}

type rawCategory struct {
	Name        string `json:"strCategory"`
	Thumb       string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

func (r rawCategory) toCategory() meals.Category {
	return meals.Category{
		Name:        strings.TrimSpace(r.Name),
		Thumb:       strings.TrimSpace(r.Thumb),
		Description: strings.TrimSpace(r.Description),
	}
}
