package ui

import (
	"slices"

	"go.uber.org/zap"

	"github.com/five82/whattocook/internal/prefs"
)

// settings keeps the preferences the UI changes while running and writes
// them back after every change.
type settings struct {
	path  string
	prefs prefs.Prefs
	log   *zap.Logger
}

func (s *settings) setTheme(name string) {
	s.prefs.Theme = name
	s.save()
}

func (s *settings) rememberIngredients(names []string) {
	s.prefs.Ingredients = slices.Clone(names)
	s.save()
}

func (s *settings) save() {
	if s.path == "" {
		return
	}
	if err := prefs.Save(s.path, s.prefs); err != nil {
		s.log.Warn("save prefs", zap.String("path", s.path), zap.Error(err))
	}
}
