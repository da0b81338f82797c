package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type BatchConfig struct {
	ID          string
	Name        string
	Simulations int
	Players     int
	MaxTurns    int
	StakePerWar int
	Workers     int
	Seed        uint64
}

type GameRecord struct {
	Game int    // Index within the batch
	Seed uint64 // Shuffle seed of the game's deck
	GameMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the files of one experiment.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteBatchConfig(config BatchConfig) error {
	header := []string{"id", "name", "simulations", "players", "max_turns", "stake_per_war", "workers", "seed"}
	row := []string{
		config.ID,
		config.Name,
		strconv.Itoa(config.Simulations),
		strconv.Itoa(config.Players),
		strconv.Itoa(config.MaxTurns),
		strconv.Itoa(config.StakePerWar),
		strconv.Itoa(config.Workers),
		strconv.FormatUint(config.Seed, 10),
	}
	return w.write("config.csv", header, [][]string{row})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"game", "seed", "game_id", "status", "winner", "turns", "wars", "forfeits", "duration", "final_counts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		counts := make([]string, len(record.FinalCounts))
		for i, c := range record.FinalCounts {
			counts[i] = strconv.Itoa(c)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.FormatUint(record.Seed, 10),
			record.GameID,
			record.Status,
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Wars),
			strconv.Itoa(record.Forfeits),
			record.Duration.String(),
			strings.Join(counts, ";"),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteTurnStats(stats TurnStats) error {
	header := []string{"n", "mean", "median", "std_dev", "min", "max", "q1", "q3", "iqr", "cv"}
	row := []string{
		strconv.Itoa(stats.N),
		formatFloat(stats.Mean),
		formatFloat(stats.Median),
		formatFloat(stats.StdDev),
		strconv.Itoa(stats.Min),
		strconv.Itoa(stats.Max),
		formatFloat(stats.Q1),
		formatFloat(stats.Q3),
		formatFloat(stats.IQR),
		formatFloat(stats.CV),
	}
	return w.write("turn_stats.csv", header, [][]string{row})
}

func (w *Writer) WriteHistogram(histogram Histogram) error {
	header := []string{"lower", "upper", "count"}
	rows := make([][]string, 0, len(histogram.Counts))
	for i, count := range histogram.Counts {
		rows = append(rows, []string{
			formatFloat(histogram.Edges[i]),
			formatFloat(histogram.Edges[i+1]),
			strconv.Itoa(count),
		})
	}
	return w.write("histogram.csv", header, rows)
}

// WriteTurnValuesMatrix writes one row per played strength with a column per won strength.
func (w *Writer) WriteTurnValuesMatrix(matrix [][]float64) error {
	header := []string{"played"}
	for j := range matrix {
		header = append(header, strconv.Itoa(j+2))
	}
	rows := make([][]string, 0, len(matrix))
	for i, values := range matrix {
		row := []string{strconv.Itoa(i + 2)}
		for _, v := range values {
			row = append(row, formatFloat(v))
		}
		rows = append(rows, row)
	}
	return w.write("turn_values_matrix.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
