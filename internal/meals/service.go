package meals

import (
	"context"
	"errors"
)

// Service is the data source behind every meal screen. Implementations must
// honour the same contract so reducers and effect handlers never care which
// one is active.
type Service interface {
	RandomMeal(ctx context.Context) (Meal, error)
	Image(ctx context.Context, url string) ([]byte, error)
	Categories(ctx context.Context) ([]Category, error)
	// Meals returns one page of a category. page 0 requests the first page.
	Meals(ctx context.Context, category Category, page int) (Page, error)
	// Meal returns the full record for a meal that may only carry an ID.
	Meal(ctx context.Context, meal Meal) (Meal, error)
}

// ImageFetcher downloads image bytes.
type ImageFetcher interface {
	Image(ctx context.Context, url string) ([]byte, error)
}

var (
	// ErrNotSupported is returned by services that cannot serve an operation.
	ErrNotSupported = errors.New("operation not supported")
	// ErrNotFound is returned when a lookup by id yields nothing.
	ErrNotFound = errors.New("meal not found")
	// ErrEmptyResponse is returned when the upstream answered without data.
	ErrEmptyResponse = errors.New("empty response")
	// ErrInvalidResponse is returned when the upstream payload is malformed.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrNoResponse is returned when the upstream sent no body at all.
	ErrNoResponse = errors.New("no response")
)
