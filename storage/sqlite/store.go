// Package sqlite provides a SQLite-backed store of experiment summaries.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"war/experiments/metrics"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var ErrNotFound = errors.New("not found")

// Store persists batch and game summaries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// BatchSummary is the stored view of a batch.
type BatchSummary struct {
	Config      metrics.BatchConfig
	Games       int
	Winners     int
	Draws       int
	Anomalies   int
	MeanTurns   float64
	MedianTurns float64
	Duration    time.Duration
	CreatedAt   time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and creates the schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveBatch inserts one batch summary or updates it in place, keeping its games.
func (s *Store) SaveBatch(ctx context.Context, config metrics.BatchConfig, metric metrics.BatchMetric) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(config.ID) == "" {
		return fmt.Errorf("batch id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO batches (
    id, name, simulations, players, max_turns, stake_per_war, workers, seed,
    games, winners, draws, anomalies, mean_turns, median_turns, duration_ns, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    simulations = excluded.simulations,
    players = excluded.players,
    max_turns = excluded.max_turns,
    stake_per_war = excluded.stake_per_war,
    workers = excluded.workers,
    seed = excluded.seed,
    games = excluded.games,
    winners = excluded.winners,
    draws = excluded.draws,
    anomalies = excluded.anomalies,
    mean_turns = excluded.mean_turns,
    median_turns = excluded.median_turns,
    duration_ns = excluded.duration_ns`,
		config.ID, config.Name, config.Simulations, config.Players, config.MaxTurns, config.StakePerWar, config.Workers, int64(config.Seed),
		metric.Games, metric.Winners, metric.Draws, metric.Anomalies, metric.Turns.Mean, metric.Turns.Median, int64(metric.Duration), toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

// SaveGames inserts game records of a saved batch in one transaction.
func (s *Store) SaveGames(ctx context.Context, batchID string, records []metrics.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR REPLACE INTO games (
    batch_id, game, game_id, seed, status, winner, turns, wars, forfeits, duration_ns, final_counts
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare game insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		counts, err := json.Marshal(r.FinalCounts)
		if err != nil {
			return fmt.Errorf("encode final counts: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			batchID, r.Game, r.GameID, int64(r.Seed), r.Status, r.Winner, r.Turns, r.Wars, r.Forfeits, int64(r.Duration), string(counts),
		); err != nil {
			return fmt.Errorf("insert game %d: %w", r.Game, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetBatch returns one batch summary.
func (s *Store) GetBatch(ctx context.Context, id string) (BatchSummary, error) {
	if err := ctx.Err(); err != nil {
		return BatchSummary{}, err
	}
	if s == nil || s.sqlDB == nil {
		return BatchSummary{}, fmt.Errorf("storage is not configured")
	}

	var (
		b         BatchSummary
		seed      int64
		duration  int64
		createdAt int64
	)
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, simulations, players, max_turns, stake_per_war, workers, seed,
    games, winners, draws, anomalies, mean_turns, median_turns, duration_ns, created_at
FROM batches WHERE id = ?`, id)
	err := row.Scan(
		&b.Config.ID, &b.Config.Name, &b.Config.Simulations, &b.Config.Players, &b.Config.MaxTurns, &b.Config.StakePerWar, &b.Config.Workers, &seed,
		&b.Games, &b.Winners, &b.Draws, &b.Anomalies, &b.MeanTurns, &b.MedianTurns, &duration, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return BatchSummary{}, fmt.Errorf("batch %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return BatchSummary{}, fmt.Errorf("get batch: %w", err)
	}
	b.Config.Seed = uint64(seed)
	b.Duration = time.Duration(duration)
	b.CreatedAt = fromMillis(createdAt)
	return b, nil
}

// ListGames returns the game records of a batch ordered by game index.
func (s *Store) ListGames(ctx context.Context, batchID string) ([]metrics.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT game, game_id, seed, status, winner, turns, wars, forfeits, duration_ns, final_counts
FROM games WHERE batch_id = ? ORDER BY game`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var records []metrics.GameRecord
	for rows.Next() {
		var (
			r        metrics.GameRecord
			seed     int64
			duration int64
			counts   string
		)
		if err := rows.Scan(&r.Game, &r.GameID, &seed, &r.Status, &r.Winner, &r.Turns, &r.Wars, &r.Forfeits, &duration, &counts); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if err := json.Unmarshal([]byte(counts), &r.FinalCounts); err != nil {
			return nil, fmt.Errorf("decode final counts: %w", err)
		}
		r.Seed = uint64(seed)
		r.Duration = time.Duration(duration)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return records, nil
}
