package experiments

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"war/engine"
	"war/experiments/metrics"
	"war/game"
	"war/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Batch describes a set of independent games played with the same settings.
type Batch struct {
	Name        string
	Simulations int
	Players     int
	MaxTurns    int
	StakePerWar int
	Workers     int    // Defaults to the number of CPUs
	Seed        uint64 // Master seed from which every game's shuffle seed is drawn
	Bins        int    // Turn-count histogram bins
}

func DefaultBatch() Batch {
	return Batch{
		Name:        "turn_count_distribution",
		Simulations: meta.NUM_SIMULATIONS,
		Players:     meta.NUM_PLAYERS,
		MaxTurns:    meta.MAX_TURNS,
		StakePerWar: meta.STAKE_PER_WAR,
		Bins:        meta.HISTOGRAM_BINS,
	}
}

// Outcome holds everything a batch produced.
type Outcome struct {
	Config  metrics.BatchConfig
	Records []metrics.GameRecord // Indexed by game
	Metric  metrics.BatchMetric
}

func (b Batch) validate() error {
	if b.Simulations < 1 {
		return fmt.Errorf("%w: simulations must be at least 1, got %d", game.ErrInvalidConfiguration, b.Simulations)
	}
	if b.Players < 2 || b.Players > game.DeckSize {
		return fmt.Errorf("%w: players must be between 2 and %d, got %d", game.ErrInvalidConfiguration, game.DeckSize, b.Players)
	}
	if b.MaxTurns < 1 {
		return fmt.Errorf("%w: max turns must be at least 1, got %d", game.ErrInvalidConfiguration, b.MaxTurns)
	}
	if b.StakePerWar < 1 {
		return fmt.Errorf("%w: stake per war must be at least 1, got %d", game.ErrInvalidConfiguration, b.StakePerWar)
	}
	return nil
}

// RunBatch plays the batch's games over a bounded pool of workers. Every game
// shuffles its own deck from a seed drawn up front, so the records do not
// depend on scheduling. Games stranded by a war in which every tied player
// forfeited are recorded as anomalies; any other game error aborts the batch.
func RunBatch(ctx context.Context, b Batch, collector metrics.Collector) (Outcome, error) {
	if err := b.validate(); err != nil {
		return Outcome{}, err
	}
	if b.Workers <= 0 {
		b.Workers = runtime.NumCPU()
	}
	if b.Bins <= 0 {
		b.Bins = meta.HISTOGRAM_BINS
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}

	config := metrics.BatchConfig{
		ID:          uuid.NewString(),
		Name:        b.Name,
		Simulations: b.Simulations,
		Players:     b.Players,
		MaxTurns:    b.MaxTurns,
		StakePerWar: b.StakePerWar,
		Workers:     b.Workers,
		Seed:        b.Seed,
	}

	rng := rand.New(rand.NewSource(b.Seed))
	seeds := make([]uint64, b.Simulations)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	log.Info().Msgf("starting %s experiment %s: %d games, %d players, %d workers...", b.Name, config.ID, b.Simulations, b.Players, b.Workers)

	records := make([]metrics.GameRecord, b.Simulations)
	collector.Start(b.Players, b.Bins)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)
	for i, seed := range seeds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := RunGame(i, seed, b)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			records[i] = record
			collector.AddGame(record.GameMetric)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	metric := collector.Complete()
	log.Info().Msgf("completed %s experiment %s: %d winners, %d draws, %d anomalies", b.Name, config.ID, metric.Winners, metric.Draws, metric.Anomalies)

	return Outcome{
		Config:  config,
		Records: records,
		Metric:  metric,
	}, nil
}

// RunGame plays a single game of the batch from a deck shuffled with seed.
func RunGame(index int, seed uint64, b Batch) (metrics.GameRecord, error) {
	e, err := engine.NewGame(game.NewShuffledDeck(seed), b.Players, game.NewRules(b.StakePerWar), engine.WithMaxTurns(b.MaxTurns))
	if err != nil {
		return metrics.GameRecord{}, err
	}

	result, err := e.Run()
	if errors.Is(err, engine.ErrNoPlayersRemaining) {
		log.Debug().Msgf("game %d (seed %d) stranded: %v", index, seed, err)
		metric := newGameMetric(e.Report())
		metric.Status = metrics.StatusAnomaly
		return metrics.GameRecord{Game: index, Seed: seed, GameMetric: metric}, nil
	}
	if err != nil {
		return metrics.GameRecord{}, err
	}

	return metrics.GameRecord{Game: index, Seed: seed, GameMetric: newGameMetric(result)}, nil
}

func newGameMetric(result engine.GameResult) metrics.GameMetric {
	return metrics.GameMetric{
		GameID:      result.ID,
		Status:      string(result.Status),
		Winner:      result.Winner,
		Turns:       result.CompletedTurns,
		Wars:        result.Wars,
		Forfeits:    result.Forfeits,
		Duration:    result.Elapsed,
		FinalCounts: result.FinalCounts,
	}
}

// Store persists batch summaries.
type Store interface {
	SaveBatch(ctx context.Context, config metrics.BatchConfig, metric metrics.BatchMetric) error
	SaveGames(ctx context.Context, batchID string, records []metrics.GameRecord) error
}

// RunExperiment runs a batch, writes its CSV files under root and, when store
// is not nil, saves the summaries there too.
func RunExperiment(ctx context.Context, b Batch, root string, store Store) (Outcome, string, error) {
	outcome, err := RunBatch(ctx, b, metrics.NewCollector())
	if err != nil {
		return Outcome{}, "", err
	}

	writer, err := metrics.NewWriter(root, b.Name)
	if err != nil {
		return Outcome{}, "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteBatchConfig(outcome.Config); err != nil {
		return Outcome{}, "", fmt.Errorf("failed to store batch config: %w", err)
	}
	log.Info().Msg("stored batch config")

	if err := writer.WriteGameRecords(outcome.Records); err != nil {
		return Outcome{}, "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteTurnStats(outcome.Metric.Turns); err != nil {
		return Outcome{}, "", fmt.Errorf("failed to write turn stats: %w", err)
	}
	if err := writer.WriteHistogram(outcome.Metric.Histogram); err != nil {
		return Outcome{}, "", fmt.Errorf("failed to write histogram: %w", err)
	}
	log.Info().Msgf("stored turn statistics in %s", writer.Dir())

	if store != nil {
		if err := store.SaveBatch(ctx, outcome.Config, outcome.Metric); err != nil {
			return Outcome{}, "", fmt.Errorf("failed to save batch: %w", err)
		}
		if err := store.SaveGames(ctx, outcome.Config.ID, outcome.Records); err != nil {
			return Outcome{}, "", fmt.Errorf("failed to save game records: %w", err)
		}
		log.Info().Msgf("saved batch %s to store", outcome.Config.ID)
	}

	return outcome, writer.Dir(), nil
}
