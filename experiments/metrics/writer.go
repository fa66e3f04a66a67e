package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RunConfig identifies one experiment configuration.
type RunConfig struct {
	ID     int
	Sims   int // Iteration budget for the first move
	Levels int // Moves played per game
	Games  int // Games played under this config
}

// GameRecord is the outcome of one full game.
type GameRecord struct {
	Config   int // RunConfig.ID
	Game     int
	Value    int     // Final accumulated value
	Distance int     // Absolute distance from the goal
	Reward   float64 // Terminal reward
}

// LevelRecord is one search step within a game.
type LevelRecord struct {
	Config   int // RunConfig.ID
	Game     int
	Level    int
	Children int // Children of the root searched at this level
	SearchMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteRunConfigs(configs []RunConfig) error {
	path := filepath.Join(w.baseDir, "run_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "sims", "levels", "games"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Sims),
			strconv.Itoa(config.Levels),
			strconv.Itoa(config.Games),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write run config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"config", "game", "value", "distance", "reward"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Config),
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Value),
			strconv.Itoa(record.Distance),
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteLevelRecords(records []LevelRecord) error {
	path := filepath.Join(w.baseDir, "level_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create level records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"config", "game", "level", "children", "budget",
		"iterations", "expansions", "playouts", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write level records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Config),
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Level),
			strconv.Itoa(record.Children),
			strconv.Itoa(record.Budget),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.Playouts),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write level record row: %w", err)
		}
	}

	return nil
}
