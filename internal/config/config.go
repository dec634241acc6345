package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings whattocook reads at startup.
type Config struct {
	MealDBURL         string
	SearchURL         string
	DataDir           string
	LogFile           string
	Debug             bool
	RequestTimeout    time.Duration
	RequestsPerSecond float64
}

const (
	defaultConfigPath        = "~/.config/whattocook/config.toml"
	defaultMealDBURL         = "https://www.themealdb.com/api/json/v1/1/"
	defaultSearchURL         = "http://www.recipepuppy.com/api/"
	defaultDataDir           = "~/.local/share/whattocook"
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 5
	logFileName              = "whattocook.log"
	savedDBName              = "saved.db"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		MealDBURL:         defaultMealDBURL,
		SearchURL:         defaultSearchURL,
		DataDir:           dataDir,
		LogFile:           filepath.Join(dataDir, logFileName),
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
	}
}

// Load reads the config at path, falling back to defaults when the file is
// missing. Empty or non-positive values also fall back to their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		MealDBURL         string  `toml:"meal_db_url"`
		SearchURL         string  `toml:"search_url"`
		DataDir           string  `toml:"data_dir"`
		LogFile           string  `toml:"log_file"`
		Debug             bool    `toml:"debug"`
		RequestTimeout    int     `toml:"request_timeout_seconds"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		MealDBURL:         orDefault(raw.MealDBURL, defaultMealDBURL),
		SearchURL:         orDefault(raw.SearchURL, defaultSearchURL),
		DataDir:           mustExpand(orDefault(raw.DataDir, defaultDataDir)),
		Debug:             raw.Debug,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
	}

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	return cfg, nil
}

// SavedDBPath returns the path of the saved meal database.
func (c Config) SavedDBPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/" + savedDBName)
	}
	return filepath.Join(c.DataDir, savedDBName)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
