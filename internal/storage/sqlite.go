// Package storage provides SQLite-based persistence for generation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tilesynth/internal/tilemap/formats"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("storage: run not found")

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded generation.
type Run struct {
	ID             int64
	MapID          string
	Seed           int64
	Width          int
	Height         int
	Order          string
	Fallback       int
	Contradictions int
	Output         [][]wfc.TileID // indexed [y][x]
	CreatedAt      time.Time
}

// MapStats aggregates the runs recorded for one training map.
type MapStats struct {
	MapID          string
	Runs           int
	Contradictions int
	LastRun        time.Time
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
			map_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			visit_order TEXT NOT NULL,
			fallback INTEGER NOT NULL,
			contradictions INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_id ON runs(map_id);
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

// SaveRun records a finished generation.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (map_id, seed, width, height, visit_order, fallback, contradictions, output)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.MapID,
		run.Seed,
		run.Width,
		run.Height,
		run.Order,
		run.Fallback,
		run.Contradictions,
		formats.FormatHex(run.Output),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, map_id, seed, width, height, visit_order, fallback, contradictions, output, created_at`

// RecentRuns returns the newest runs first. An empty mapID matches every map.
func (s *Store) RecentRuns(mapID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR map_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapID, mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id int64) (Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return run, err
}

// CountRuns returns how many runs exist for mapID, or in total when mapID is empty.
func (s *Store) CountRuns(mapID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM runs WHERE ? = '' OR map_id = ?",
		mapID, mapID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// DeleteRun removes a run by ID.
func (s *Store) DeleteRun(id int64) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return nil
}

// AllMapStats returns aggregated statistics for every map with recorded runs.
func (s *Store) AllMapStats() (map[string]*MapStats, error) {
	rows, err := s.db.Query(
		`SELECT map_id, COUNT(*), SUM(contradictions), MAX(created_at)
		 FROM runs
		 GROUP BY map_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MapStats)
	for rows.Next() {
		var st MapStats
		var lastRun any
		if err := rows.Scan(&st.MapID, &st.Runs, &st.Contradictions, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.MapID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var output string
	var createdAt any
	err := sc.Scan(
		&run.ID,
		&run.MapID,
		&run.Seed,
		&run.Width,
		&run.Height,
		&run.Order,
		&run.Fallback,
		&run.Contradictions,
		&output,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	run.Output, err = formats.ParseHex([]byte(output))
	if err != nil {
		return Run{}, fmt.Errorf("storage: run %d output: %w", run.ID, err)
	}
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles the driver returning either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
