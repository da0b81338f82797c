// Package config loads simulator settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"war/game"
	"war/meta"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	NumPlayers  int    `env:"WAR_NUM_PLAYERS"`
	MaxTurns    int    `env:"WAR_MAX_TURNS"`
	StakePerWar int    `env:"WAR_STAKE_PER_WAR"`
	Simulations int    `env:"WAR_SIMULATIONS"`
	Workers     int    `env:"WAR_WORKERS"`
	Seed        uint64 `env:"WAR_SEED"` // 0 picks a time-based seed
	OutputDir   string `env:"WAR_OUTPUT_DIR" envDefault:"experiments"`
	DBPath      string `env:"WAR_DB_PATH"`
	LogLevel    string `env:"WAR_LOG_LEVEL" envDefault:"info"`
}

func Default() Config {
	return Config{
		NumPlayers:  meta.NUM_PLAYERS,
		MaxTurns:    meta.MAX_TURNS,
		StakePerWar: meta.STAKE_PER_WAR,
		Simulations: meta.NUM_SIMULATIONS,
		OutputDir:   "experiments",
		LogLevel:    "info",
	}
}

// Load reads the given .env files, if present, then the environment on top of
// the defaults. Variables already set in the environment win over .env files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.NumPlayers < 2 || c.NumPlayers > game.DeckSize {
		return fmt.Errorf("%w: number of players must be between 2 and %d, got %d", game.ErrInvalidConfiguration, game.DeckSize, c.NumPlayers)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("%w: max turns must be at least 1, got %d", game.ErrInvalidConfiguration, c.MaxTurns)
	}
	if c.StakePerWar < 1 {
		return fmt.Errorf("%w: stake per war must be at least 1, got %d", game.ErrInvalidConfiguration, c.StakePerWar)
	}
	if c.Simulations < 1 {
		return fmt.Errorf("%w: simulations must be at least 1, got %d", game.ErrInvalidConfiguration, c.Simulations)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log level %q", game.ErrInvalidConfiguration, c.LogLevel)
	}
	return level, nil
}
