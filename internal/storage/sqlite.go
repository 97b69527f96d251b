// Package storage provides a SQLite journal of ghostchase run results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal only records outcomes. Nothing in it is ever read back to
// resume a game.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ghostchase/internal/session"
)

// Store manages the SQLite database connection for the results journal.
type Store struct {
	db *sql.DB
}

// RunEntry is one recorded session.
type RunEntry struct {
	ID        int64
	Policy    string
	Input     string
	Outcome   string
	ExitCode  int
	Error     string
	Levels    int
	Won       int
	Steps     int
	CreatedAt time.Time
}

// LevelEntry is one level played within a run.
type LevelEntry struct {
	RunID     int64
	Number    int
	Path      string
	State     string
	Steps     int
	Frames    int
	Collected int
	Total     int
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			policy TEXT NOT NULL,
			input TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL DEFAULT '',
			exit_code INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			levels INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			path TEXT NOT NULL,
			state TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			collected INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_run ON level_results(run_id);
		CREATE INDEX IF NOT EXISTS idx_level_results_path ON level_results(path);
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

// InsertRun records a run summary and its level results in one transaction.
// Returns the ID of the inserted run.
func (s *Store) InsertRun(sum session.Summary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO runs (policy, input, outcome, exit_code, error, levels, won, steps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.Policy, sum.Input, sum.Outcome, sum.ExitCode, sum.Err,
		len(sum.Levels), sum.Won(), sum.Steps(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, lr := range sum.Levels {
		_, err := tx.Exec(
			`INSERT INTO level_results (run_id, number, path, state, steps, frames, collected, total)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, lr.Number, lr.Path, lr.State.String(), lr.Steps, lr.Frames, lr.Collected, lr.Total,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save level result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return runID, nil
}

// SaveRun implements session.Recorder.
func (s *Store) SaveRun(sum session.Summary) error {
	_, err := s.InsertRun(sum)
	return err
}

// Ensure Store implements Recorder
var _ session.Recorder = (*Store)(nil)

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, policy, input, outcome, exit_code, error, levels, won, steps, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Policy, &e.Input, &e.Outcome, &e.ExitCode, &e.Error,
			&e.Levels, &e.Won, &e.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RunLevels retrieves the level results of one run in play order.
func (s *Store) RunLevels(runID int64) ([]LevelEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, number, path, state, steps, frames, collected, total
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY number`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var entries []LevelEntry
	for rows.Next() {
		var e LevelEntry
		if err := rows.Scan(&e.RunID, &e.Number, &e.Path, &e.State, &e.Steps,
			&e.Frames, &e.Collected, &e.Total); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LevelStats contains aggregated results for one level path.
type LevelStats struct {
	Path      string
	Plays     int
	Wins      int
	Caught    int
	BestSteps int // fewest steps among wins, 0 when never won
}

// GetLevelStats retrieves aggregated results for a specific level path.
func (s *Store) GetLevelStats(path string) (*LevelStats, error) {
	stats := &LevelStats{Path: path}

	var best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN state = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN state = 'caught' THEN 1 ELSE 0 END), 0),
		        MIN(CASE WHEN state = 'won' THEN steps END)
		 FROM level_results WHERE path = ?`,
		path,
	).Scan(&stats.Plays, &stats.Wins, &stats.Caught, &best)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if best.Valid {
		stats.BestSteps = int(best.Int64)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT path, COUNT(*),
		        SUM(CASE WHEN state = 'won' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN state = 'caught' THEN 1 ELSE 0 END),
		        MIN(CASE WHEN state = 'won' THEN steps END)
		 FROM level_results
		 GROUP BY path`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var best sql.NullInt64
		if err := rows.Scan(&ls.Path, &ls.Plays, &ls.Wins, &ls.Caught, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if best.Valid {
			ls.BestSteps = int(best.Int64)
		}
		stats[ls.Path] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes every recorded run and level result.
func (s *Store) ClearRuns() error {
	for _, stmt := range []string{"DELETE FROM level_results", "DELETE FROM runs"} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("storage: cannot clear runs: %w", err)
		}
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
