package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultPath is where the Nakama module and the CLI look for the optional config file.
	DefaultPath = "data/game_config.json"

	defaultLocale   = "es"
	defaultTickRate = 10
	defaultLogLevel = "info"

	minTickRate = 1
	maxTickRate = 60
)

// GameConfig holds host settings. The game rules themselves are fixed in the domain package.
type GameConfig struct {
	// Locale selects the message language ("es" or "en").
	Locale string `json:"locale" env:"RPS_LOCALE"`
	// TickRate is the Nakama match loop rate in ticks per second.
	TickRate int `json:"tick_rate" env:"RPS_TICK_RATE"`
	// LogLevel is used by the terminal host only.
	LogLevel string `json:"log_level" env:"RPS_LOG_LEVEL"`
	// Seed fixes the computer's random choices; 0 means time-seeded.
	Seed int64 `json:"seed" env:"RPS_SEED"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Defaults returns the configuration used when nothing else is provided.
func Defaults() GameConfig {
	return GameConfig{
		Locale:   defaultLocale,
		TickRate: defaultTickRate,
		LogLevel: defaultLogLevel,
	}
}

// Load reads the JSON file at path (a missing file is not an error), applies
// overrides from the process environment and fills defaults.
func Load(path string) (*GameConfig, error) {
	return LoadFrom(path, nil)
}

// LoadFrom is Load with an explicit environment. A nil environment means the
// process environment; Nakama passes its runtime env map here.
func LoadFrom(path string, environment map[string]string) (*GameConfig, error) {
	c := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read game config: %w", err)
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
		}
	}

	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	c.normalize()
	return &c, nil
}

// LoadGameConfig loads the process-wide game configuration once.
func LoadGameConfig(path string, environment map[string]string) error {
	loadOnce.Do(func() {
		cfg, loadErr = LoadFrom(path, environment)
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or defaults when it was never loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		c := Defaults()
		return &c
	}
	return cfg
}

func (c *GameConfig) normalize() {
	if c.Locale == "" {
		c.Locale = defaultLocale
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.TickRate == 0 {
		c.TickRate = defaultTickRate
	}
	c.TickRate = min(max(c.TickRate, minTickRate), maxTickRate)
}
