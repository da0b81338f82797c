package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"war/experiments/metrics"
	"war/game"
	"war/utils"

	"github.com/stretchr/testify/require"
)

func smallBatch() Batch {
	b := DefaultBatch()
	b.Name = "test"
	b.Simulations = 40
	b.Workers = 4
	b.Seed = 1234
	b.Bins = 10
	return b
}

type outcomeSummary struct {
	seed   uint64
	status string
	winner int
	turns  int
}

func summarize(records []metrics.GameRecord) []outcomeSummary {
	out := make([]outcomeSummary, len(records))
	for i, r := range records {
		out[i] = outcomeSummary{seed: r.Seed, status: r.Status, winner: r.Winner, turns: r.Turns}
	}
	return out
}

func TestRunBatch(t *testing.T) {
	t.Run("plays every game", func(t *testing.T) {
		outcome, err := RunBatch(context.Background(), smallBatch(), metrics.NewCollector())
		require.NoError(t, err)

		require.Len(t, outcome.Records, 40)
		require.NotEmpty(t, outcome.Config.ID)
		for i, r := range outcome.Records {
			require.Equal(t, i, r.Game)
			require.Contains(t, []string{metrics.StatusWinner, metrics.StatusDraw}, r.Status)
			total := 0
			for _, c := range r.FinalCounts {
				total += c
			}
			require.Equal(t, game.DeckSize, total)
		}

		m := outcome.Metric
		require.Equal(t, 40, m.Games)
		require.Equal(t, 40, m.Winners+m.Draws+m.Anomalies)
		require.Equal(t, m.Winners, m.Wins[0]+m.Wins[1])
		require.Equal(t, m.Winners, m.Turns.N)
	})

	t.Run("same seed gives the same games regardless of workers", func(t *testing.T) {
		b := smallBatch()
		first, err := RunBatch(context.Background(), b, nil)
		require.NoError(t, err)

		b.Workers = 1
		second, err := RunBatch(context.Background(), b, nil)
		require.NoError(t, err)

		require.Equal(t, summarize(first.Records), summarize(second.Records))
	})

	t.Run("more players can strand a war", func(t *testing.T) {
		b := smallBatch()
		b.Players = 5
		b.MaxTurns = 1000

		outcome, err := RunBatch(context.Background(), b, metrics.NewCollector())
		require.NoError(t, err)

		anomalies := 0
		for _, r := range outcome.Records {
			require.Contains(t, []string{metrics.StatusWinner, metrics.StatusDraw, metrics.StatusAnomaly}, r.Status)
			if r.Status != metrics.StatusAnomaly {
				continue
			}
			anomalies++
			require.Equal(t, -1, r.Winner)
			require.Less(t, utils.Sum(r.FinalCounts), game.DeckSize, "Stranded stake is held by nobody")
		}
		require.Positive(t, outcome.Metric.Anomalies)
		require.Equal(t, outcome.Metric.Anomalies, anomalies)
		require.Len(t, outcome.Metric.Wins, 5)
	})

	t.Run("invalid batches are rejected", func(t *testing.T) {
		for _, mutate := range []func(*Batch){
			func(b *Batch) { b.Simulations = 0 },
			func(b *Batch) { b.Players = 1 },
			func(b *Batch) { b.MaxTurns = 0 },
			func(b *Batch) { b.StakePerWar = 0 },
		} {
			b := smallBatch()
			mutate(&b)
			_, err := RunBatch(context.Background(), b, nil)
			require.ErrorIs(t, err, game.ErrInvalidConfiguration)
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := RunBatch(ctx, smallBatch(), nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunGame(t *testing.T) {
	b := smallBatch()

	first, err := RunGame(3, 99, b)
	require.NoError(t, err)
	second, err := RunGame(3, 99, b)
	require.NoError(t, err)

	require.Equal(t, 3, first.Game)
	require.Equal(t, uint64(99), first.Seed)
	require.Equal(t, first.Turns, second.Turns)
	require.Equal(t, first.FinalCounts, second.FinalCounts)
	require.NotEqual(t, first.GameID, second.GameID)
}

type fakeStore struct {
	batches []metrics.BatchConfig
	games   map[string][]metrics.GameRecord
}

func (s *fakeStore) SaveBatch(_ context.Context, config metrics.BatchConfig, _ metrics.BatchMetric) error {
	s.batches = append(s.batches, config)
	return nil
}

func (s *fakeStore) SaveGames(_ context.Context, batchID string, records []metrics.GameRecord) error {
	if s.games == nil {
		s.games = map[string][]metrics.GameRecord{}
	}
	s.games[batchID] = append(s.games[batchID], records...)
	return nil
}

func TestRunExperiment(t *testing.T) {
	root := t.TempDir()
	store := &fakeStore{}

	outcome, dir, err := RunExperiment(context.Background(), smallBatch(), root, store)
	require.NoError(t, err)

	for _, name := range []string{"config.csv", "game_records.csv", "turn_stats.csv", "histogram.csv"} {
		require.FileExists(t, filepath.Join(dir, name))
	}
	require.Len(t, store.batches, 1)
	require.Equal(t, outcome.Config.ID, store.batches[0].ID)
	require.Len(t, store.games[outcome.Config.ID], 40)
}

func TestRunTurnValuesMatrix(t *testing.T) {
	dir, err := RunTurnValuesMatrix(t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "turn_values_matrix.csv"))
	require.NoError(t, err)
	require.Contains(t, string(data), "played,2,3")
}
