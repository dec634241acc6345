package meals

import (
	"context"
	"fmt"
)

// SavedService serves meals from the saved list instead of the network.
type SavedService struct {
	list   *SavedList
	images ImageFetcher
}

var _ Service = (*SavedService)(nil)

// NewSavedService serves list. Images are still downloaded through images;
// a nil fetcher makes Image unsupported.
func NewSavedService(list *SavedList, images ImageFetcher) *SavedService {
	return &SavedService{list: list, images: images}
}

// RandomMeal is not supported for saved meals.
func (s *SavedService) RandomMeal(context.Context) (Meal, error) {
	return Meal{}, fmt.Errorf("random saved meal: %w", ErrNotSupported)
}

// Image downloads url through the configured fetcher.
func (s *SavedService) Image(ctx context.Context, url string) ([]byte, error) {
	if s.images == nil {
		return nil, fmt.Errorf("saved meal image: %w", ErrNotSupported)
	}
	return s.images.Image(ctx, url)
}

// Categories is not supported for saved meals.
func (s *SavedService) Categories(context.Context) ([]Category, error) {
	return nil, fmt.Errorf("saved categories: %w", ErrNotSupported)
}

// Meals returns every saved meal as a single page.
func (s *SavedService) Meals(context.Context, Category, int) (Page, error) {
	return Page{Meals: s.list.List()}, nil
}

// Meal returns the saved record matching meal.ID.
func (s *SavedService) Meal(_ context.Context, meal Meal) (Meal, error) {
	saved, ok := s.list.Lookup(meal.ID)
	if !ok {
		return Meal{}, fmt.Errorf("saved meal %q: %w", meal.ID, ErrNotFound)
	}
	return saved, nil
}
