package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"war/config"
	"war/engine"
	"war/experiments"
	"war/game"
	"war/storage/sqlite"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	mode := flag.String("mode", "game", "What to run: game, batch or matrix")
	flag.IntVar(&cfg.NumPlayers, "players", cfg.NumPlayers, "Number of players")
	flag.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "Turns after which a game is a draw")
	flag.IntVar(&cfg.StakePerWar, "stake", cfg.StakePerWar, "Face-down cards staked per war round")
	flag.IntVar(&cfg.Simulations, "simulations", cfg.Simulations, "Games played in batch mode")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent games in batch mode (0 uses every CPU)")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Shuffle seed (0 picks one from the clock)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory for experiment CSV files")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for batch summaries (empty disables)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if err := run(*mode, cfg); err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

// run executes one mode. Everything it sets up is released before it returns.
func run(mode string, cfg config.Config) error {
	switch mode {
	case "game":
		return runGame(cfg)
	case "batch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runBatch(ctx, cfg)
	case "matrix":
		dir, err := experiments.RunTurnValuesMatrix(cfg.OutputDir)
		if err != nil {
			return err
		}
		printer.Printf("> Saved turn values matrix to %s\n", dir)
		return nil
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// runGame plays one game and prints how it ended.
func runGame(cfg config.Config) error {
	log.Info().Msgf("dealing a deck shuffled with seed %d to %d players", cfg.Seed, cfg.NumPlayers)

	e, err := engine.NewGame(game.NewShuffledDeck(cfg.Seed), cfg.NumPlayers, game.NewRules(cfg.StakePerWar), engine.WithMaxTurns(cfg.MaxTurns))
	if err != nil {
		return err
	}

	result, err := e.Run()
	if errors.Is(err, engine.ErrNoPlayersRemaining) {
		result = e.Report()
		printer.Printf("---\n> Game stopped after %d turns: %v\n", result.CompletedTurns, err)
	} else if err != nil {
		return err
	} else {
		printer.Printf("---\n> Game ended with a '%s' in %.3fms after %d turns.\n", result.Status, result.ElapsedMillis(), result.CompletedTurns)
	}

	for player, count := range result.FinalCounts {
		printer.Printf("> Player %d has %d cards.\n", player, count)
	}
	return nil
}

// runBatch plays many games, stores the results and prints the turn-count distribution.
func runBatch(ctx context.Context, cfg config.Config) error {
	var store experiments.Store
	if cfg.DBPath != "" {
		s, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	batch := experiments.DefaultBatch()
	batch.Simulations = cfg.Simulations
	batch.Players = cfg.NumPlayers
	batch.MaxTurns = cfg.MaxTurns
	batch.StakePerWar = cfg.StakePerWar
	batch.Workers = cfg.Workers
	batch.Seed = cfg.Seed

	printer.Printf("> Simulating %d games of war...\n", batch.Simulations)
	outcome, dir, err := experiments.RunExperiment(ctx, batch, cfg.OutputDir, store)
	if err != nil {
		return err
	}

	m := outcome.Metric
	printer.Printf("> %d games ended with a winner. %d ended in a draw. %d were stranded by a war nobody could finish.\n", m.Winners, m.Draws, m.Anomalies)
	for player, wins := range m.Wins {
		printer.Printf("> Player %d won %d games.\n", player, wins)
	}

	s := m.Turns
	printer.Printf("Turn Count Distribution Statistics:\n")
	printer.Printf("========================================\n")
	printer.Printf("Number of completed games: %d\n", s.N)
	printer.Printf("Mean turns: %.2f\n", s.Mean)
	printer.Printf("Median turns: %.2f\n", s.Median)
	printer.Printf("Standard deviation: %.2f\n", s.StdDev)
	printer.Printf("Minimum turns: %d\n", s.Min)
	printer.Printf("Maximum turns: %d\n", s.Max)
	printer.Printf("Q1 (25th percentile): %.2f\n", s.Q1)
	printer.Printf("Q3 (75th percentile): %.2f\n", s.Q3)
	printer.Printf("IQR (Interquartile range): %.2f\n", s.IQR)
	printer.Printf("Coefficient of variation: %.2f%%\n", s.CV)
	printer.Printf("> Results written to %s\n", dir)
	return nil
}
