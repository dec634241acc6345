package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/screen"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errOffline = errors.New("offline")

type fakeService struct {
	random meals.Meal
	page   meals.Page
	err    error
}

func (f *fakeService) RandomMeal(context.Context) (meals.Meal, error) { return f.random, f.err }
func (f *fakeService) Image(context.Context, string) ([]byte, error)  { return nil, f.err }
func (f *fakeService) Categories(context.Context) ([]meals.Category, error) {
	return nil, meals.ErrNotSupported
}
func (f *fakeService) Meals(context.Context, meals.Category, int) (meals.Page, error) {
	return f.page, f.err
}
func (f *fakeService) Meal(_ context.Context, m meals.Meal) (meals.Meal, error) { return m, f.err }

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRandomMeal_ReturnsMealTheMenuOpens(t *testing.T) {
	svc := &fakeService{random: meals.Meal{ID: "52772", Name: "Teriyaki Chicken"}}

	got, err := randomMeal(testContext(t), zaptest.NewLogger(t), screen.Shared{
		Saved: meals.NewSavedList(),
		Meals: svc,
	})

	require.NoError(t, err)
	assert.Equal(t, "Teriyaki Chicken", got.Name)
}

func TestRandomMeal_FailureIsReturned(t *testing.T) {
	svc := &fakeService{err: errOffline}

	_, err := randomMeal(testContext(t), zaptest.NewLogger(t), screen.Shared{
		Saved: meals.NewSavedList(),
		Meals: svc,
	})

	assert.ErrorIs(t, err, errOffline)
}

func TestRandomMeal_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := randomMeal(ctx, zaptest.NewLogger(t), screen.Shared{
		Saved: meals.NewSavedList(),
		Meals: &fakeService{},
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSavedMeals_ListsInSavedOrder(t *testing.T) {
	saved := meals.NewSavedList()
	saved.Save(meals.Meal{ID: "1", Name: "Soup"})
	saved.Save(meals.Meal{ID: "2", Name: "Stew"})

	got, err := savedMeals(testContext(t), zaptest.NewLogger(t), screen.Shared{
		Saved:      saved,
		SavedMeals: meals.NewSavedService(saved, nil),
	})

	require.NoError(t, err)
	assert.Equal(t, saved.List(), got)
}

func TestSavedMeals_EmptyListIsNotAnError(t *testing.T) {
	saved := meals.NewSavedList()

	got, err := savedMeals(testContext(t), zaptest.NewLogger(t), screen.Shared{
		Saved:      saved,
		SavedMeals: meals.NewSavedService(saved, nil),
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchMeals_PassesTrimmedIngredients(t *testing.T) {
	results := &fakeService{page: meals.Page{Meals: []meals.Meal{{ID: "a", Name: "Omelette"}}}}
	var asked []string

	got, err := searchMeals(testContext(t), zaptest.NewLogger(t), screen.Shared{
		Saved: meals.NewSavedList(),
		Search: func(names []string) (meals.Service, error) {
			asked = names
			return results, nil
		},
		Remember: func([]string) { t.Fatal("headless search must not remember ingredients") },
	}, []string{" egg ", "", "tomato"})

	require.NoError(t, err)
	assert.Equal(t, []string{"egg", "tomato"}, asked)
	assert.Equal(t, []meals.Meal{{ID: "a", Name: "Omelette"}}, got)
}

func TestSearchMeals_Errors(t *testing.T) {
	shared := screen.Shared{Saved: meals.NewSavedList()}

	_, err := searchMeals(testContext(t), zaptest.NewLogger(t), shared, []string{" "})
	assert.ErrorIs(t, err, screen.ErrNoIngredients)

	shared.Search = func([]string) (meals.Service, error) { return nil, errOffline }
	_, err = searchMeals(testContext(t), zaptest.NewLogger(t), shared, []string{"egg"})
	assert.ErrorIs(t, err, errOffline)

	shared.Search = func([]string) (meals.Service, error) { return &fakeService{err: errOffline}, nil }
	_, err = searchMeals(testContext(t), zaptest.NewLogger(t), shared, []string{"egg"})
	assert.ErrorIs(t, err, errOffline)
}

func TestOpen_WiresSessionFromConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(t.TempDir(), "data")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`data_dir = "`+dataDir+`"`+"\n"), 0o600))

	s, err := open(Options{ConfigPath: cfgPath})
	require.NoError(t, err)

	assert.NotNil(t, s.shared.Saved)
	assert.NotNil(t, s.shared.Meals)
	assert.NotNil(t, s.shared.SavedMeals)
	svc, err := s.shared.Search([]string{"egg"})
	require.NoError(t, err)
	assert.NotNil(t, svc)

	s.shared.Saved.Save(meals.Meal{ID: "1", Name: "Soup"})
	require.NoError(t, s.Close())

	assert.FileExists(t, filepath.Join(dataDir, "saved.db"))
	assert.FileExists(t, filepath.Join(dataDir, "whattocook.log"))

	// A second session sees what the first one saved.
	s, err = open(Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	assert.True(t, s.shared.Saved.IsSaved(meals.Meal{ID: "1"}))
}

func TestOpen_BadConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("debug = ["), 0o600))

	_, err := open(Options{ConfigPath: cfgPath})
	assert.ErrorContains(t, err, "load config")
}
