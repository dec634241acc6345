package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/whattocook/internal/config"
	"github.com/five82/whattocook/internal/logging"
	"github.com/five82/whattocook/internal/mealdb"
	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/prefs"
	"github.com/five82/whattocook/internal/savedb"
	"github.com/five82/whattocook/internal/screen"
	"github.com/five82/whattocook/internal/search"
	"github.com/five82/whattocook/internal/state"
	"github.com/five82/whattocook/internal/ui"
)

// Options configure the whattocook application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/whattocook/prefs.toml
}

// session holds everything one run opens: the logger, the saved meal
// database and the services built on top of them.
type session struct {
	cfg    config.Config
	log    *zap.Logger
	db     *savedb.DB
	shared screen.Shared
}

func open(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	db, err := savedb.Open(cfg.SavedDBPath())
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open saved meals: %w", err)
	}

	s := &session{cfg: cfg, log: log, db: db}
	shared, err := s.services()
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.shared = shared

	log.Info("session opened",
		zap.String("meal_db_url", cfg.MealDBURL),
		zap.String("saved_db", cfg.SavedDBPath()),
		zap.Bool("debug", cfg.Debug),
	)
	return s, nil
}

func (s *session) services() (screen.Shared, error) {
	saved, err := meals.OpenSavedList(s.db, s.log.Named("saved"))
	if err != nil {
		return screen.Shared{}, fmt.Errorf("load saved meals: %w", err)
	}

	client, err := mealdb.NewClient(s.cfg.MealDBURL,
		mealdb.WithTimeout(s.cfg.RequestTimeout),
		mealdb.WithRateLimit(s.cfg.RequestsPerSecond),
	)
	if err != nil {
		return screen.Shared{}, fmt.Errorf("init meal client: %w", err)
	}

	return screen.Shared{
		Saved:      saved,
		Meals:      client,
		SavedMeals: meals.NewSavedService(saved, client),
		Search:     searchFactory(s.cfg),
	}, nil
}

// Close releases the saved meal database and flushes the log.
func (s *session) Close() error {
	err := s.db.Close()
	_ = s.log.Sync()
	return err
}

// searchFactory builds one search client per ingredient selection.
func searchFactory(cfg config.Config) screen.SearchFactory {
	return func(ingredients []string) (meals.Service, error) {
		c, err := search.NewClient(cfg.SearchURL, ingredients,
			search.WithTimeout(cfg.RequestTimeout),
			search.WithRateLimit(cfg.RequestsPerSecond),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Run boots the whattocook TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	s, err := open(opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, perr := prefs.Load(prefsPath)
	if perr != nil {
		s.log.Warn("using default prefs", zap.Error(perr))
	}

	mb := state.NewMailbox(0)
	return ui.Run(ctx, ui.Options{
		Context:   ctx,
		Mailbox:   mb,
		Logger:    s.log,
		Shared:    s.shared,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
	})
}
