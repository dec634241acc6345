// Package mealdb implements meals.Service over TheMealDB JSON API.
//
// TheMealDB answers {"meals": null} when nothing matches. Listings treat that
// as an empty result; RandomMeal reports meals.ErrEmptyResponse and Meal
// reports meals.ErrNotFound. Category listings come back in one page, so
// Meals never advertises a next page. Concurrent downloads of the same image
// share one request.
package mealdb
