// Package storage provides SQLite-based persistence for solved mazes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is how created_at is written. It is fixed width so text
// order matches time order. Reads also accept RFC 3339 and the layout
// SQLite uses for CURRENT_TIMESTAMP.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one solved maze.
type Run struct {
	ID        string // UUID assigned on save
	GameID    string
	Rows      int
	Columns   int
	Level     int
	Ticks     uint64
	TickRate  int
	Seed      int64
	Player    string // SSH user or empty for local play
	CreatedAt time.Time
}

// Duration converts the run's tick count into wall-clock play time.
func (r Run) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate) //#nosec G115 -- tick counts are small
}

// Cells returns the number of grid cells in the solved maze.
func (r Run) Cells() int {
	return r.Rows * r.Columns
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			grid_rows INTEGER NOT NULL,
			grid_columns INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(game_id, grid_rows, grid_columns, ticks);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a solved maze and returns its ID.
// A missing ID or timestamp is filled in.
func (s *Store) SaveRun(run Run) (string, error) {
	run = withDefaults(run)
	if _, err := s.db.Exec("INSERT"+insertInto, runArgs(run)...); err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// ImportRuns saves runs in one transaction. Runs whose ID is already
// stored are skipped, so importing the same export twice is harmless.
// It returns the number of runs added.
func (s *Store) ImportRuns(runs []Run) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	added := 0
	for _, run := range runs {
		if run.GameID == "" {
			return 0, fmt.Errorf("storage: import: run %q has no game", run.ID)
		}
		res, err := tx.Exec("INSERT OR IGNORE"+insertInto, runArgs(withDefaults(run))...)
		if err != nil {
			return 0, fmt.Errorf("storage: import: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return added, nil
}

// insertInto is completed with INSERT or INSERT OR IGNORE.
const insertInto = ` INTO runs
 (id, game_id, grid_rows, grid_columns, level, ticks, tick_rate, seed, player, created_at)
 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// withDefaults fills in a missing ID and creation time.
func withDefaults(run Run) Run {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return run
}

func runArgs(run Run) []any {
	return []any{
		run.ID,
		run.GameID,
		run.Rows,
		run.Columns,
		run.Level,
		int64(run.Ticks), //#nosec G115 -- tick counts are small
		run.TickRate,
		run.Seed,
		run.Player,
		run.CreatedAt.UTC().Format(timeLayout),
	}
}

const runColumns = `id, game_id, grid_rows, grid_columns, level, ticks, tick_rate, seed, player, created_at`

// BestRuns retrieves the top N runs for the given game.
// Larger mazes rank first; equal sizes rank by faster time.
func (s *Store) BestRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY grid_rows * grid_columns DESC, CAST(ticks AS REAL) / tick_rate ASC, created_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// AllRuns retrieves every run for the given game, oldest first.
func (s *Store) AllRuns(gameID string) ([]Run, error) {
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at ASC`,
		gameID,
	)
}

// BestTime returns the fastest solve of a rows x columns maze.
// The boolean is false when no such run exists.
func (s *Store) BestTime(gameID string, rows, columns int) (time.Duration, bool, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND grid_rows = ? AND grid_columns = ?
		 ORDER BY CAST(ticks AS REAL) / tick_rate ASC
		 LIMIT 1`,
		gameID, rows, columns,
	)
	if err != nil {
		return 0, false, err
	}
	if len(runs) == 0 {
		return 0, false, nil
	}
	return runs[0].Duration(), true, nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ticks int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Rows,
			&r.Columns,
			&r.Level,
			&ticks,
			&r.TickRate,
			&r.Seed,
			&r.Player,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	Runs        int
	LargestRows int
	LargestCols int
	BestTime    time.Duration // Fastest solve of the largest maze
	AvgTime     time.Duration
	LastPlayed  time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var avgSeconds float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(CAST(ticks AS REAL) / tick_rate), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &avgSeconds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.AvgTime = time.Duration(avgSeconds * float64(time.Second))

	if stats.Runs == 0 {
		return stats, nil
	}

	best, err := s.BestRuns(gameID, 1)
	if err != nil {
		return nil, err
	}
	if len(best) == 1 {
		stats.LargestRows = best[0].Rows
		stats.LargestCols = best[0].Columns
		stats.BestTime = best[0].Duration()
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GameIDs returns every game that has at least one stored run.
func (s *Store) GameIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT game_id FROM runs ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}
