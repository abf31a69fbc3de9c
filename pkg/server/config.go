package server

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by LoadConfig. Durations use Go's
// duration syntax, e.g. "5s" or "1m30s".
const (
	envEndGameDelay     = "POKER_END_GAME_DELAY"
	envNextGameDelay    = "POKER_NEXT_GAME_DELAY"
	envAFKTimeout       = "POKER_AFK_DELAY"
	envAutoDestroyDelay = "POKER_AUTO_DESTROY_DELAY"
)

// Config is the process-level pacing shared by every table the registry
// creates.
type Config struct {
	// EndGameDelay is the pause between the end of a hand and the winner
	// announcement.
	EndGameDelay time.Duration

	// NextGameDelay is the pause between the end of a hand and the next
	// one starting. Must not be shorter than EndGameDelay.
	NextGameDelay time.Duration

	// AFKTimeout is the default away timeout for tables that do not set
	// their own.
	AFKTimeout time.Duration

	// AutoDestroyDelay is how long a table with every seat disconnected
	// survives before it is torn down.
	AutoDestroyDelay time.Duration
}

// DefaultConfig returns the stock pacing.
func DefaultConfig() Config {
	return Config{
		EndGameDelay:     5 * time.Second,
		NextGameDelay:    8 * time.Second,
		AFKTimeout:       30 * time.Second,
		AutoDestroyDelay: time.Minute,
	}
}

// Validate checks the pacing invariants.
func (c Config) Validate() error {
	if c.EndGameDelay <= 0 {
		return fmt.Errorf("end game delay must be positive, got %v", c.EndGameDelay)
	}
	if c.NextGameDelay < c.EndGameDelay {
		return fmt.Errorf("next game delay %v must not be shorter than end game delay %v",
			c.NextGameDelay, c.EndGameDelay)
	}
	if c.AFKTimeout <= 0 {
		return fmt.Errorf("afk timeout must be positive, got %v", c.AFKTimeout)
	}
	if c.AutoDestroyDelay <= 0 {
		return fmt.Errorf("auto destroy delay must be positive, got %v", c.AutoDestroyDelay)
	}
	return nil
}

// LoadConfig builds the config from the defaults, an optional env file and
// the process environment, in that order.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else {
		// A missing default .env is fine.
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()
	var err error
	if cfg.EndGameDelay, err = envDuration(envEndGameDelay, cfg.EndGameDelay); err != nil {
		return Config{}, err
	}
	if cfg.NextGameDelay, err = envDuration(envNextGameDelay, cfg.NextGameDelay); err != nil {
		return Config{}, err
	}
	if cfg.AFKTimeout, err = envDuration(envAFKTimeout, cfg.AFKTimeout); err != nil {
		return Config{}, err
	}
	if cfg.AutoDestroyDelay, err = envDuration(envAutoDestroyDelay, cfg.AutoDestroyDelay); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, raw, err)
	}
	return d, nil
}
