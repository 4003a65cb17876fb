package collector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mgraziano/virusnet/internal/sim"
)

// SQLiteRecorder persists run metadata and the per-tick count series to a
// SQLite database, so runs can be compared or re-plotted later.
type SQLiteRecorder struct {
	mu    sync.Mutex
	db    *sql.DB
	runID int64
	err   error
}

// RunInfo describes a recorded run.
type RunInfo struct {
	ID        int64
	Seed      int64
	CreatedAt time.Time
}

// NewSQLiteRecorder opens (creating if needed) the database at path and
// initializes the schema.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS ticks (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			infected INTEGER NOT NULL,
			resistant INTEGER NOT NULL,
			susceptible INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`)
	return err
}

// BeginRun inserts a run row for the given seed and configuration and
// makes it the target of subsequent Collect calls.
func (r *SQLiteRecorder) BeginRun(ctx context.Context, seed int64, cfg sim.Config) error {
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (seed, config, created_at) VALUES (?, ?, ?)
	`, seed, string(configJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}

	r.mu.Lock()
	r.runID = id
	r.err = nil
	r.mu.Unlock()
	return nil
}

// RunID returns the id of the run started by BeginRun.
func (r *SQLiteRecorder) RunID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

// Collect inserts the snapshot as a tick row. The Collector interface has
// no error return; the first failure is retained and exposed via Err.
func (r *SQLiteRecorder) Collect(s sim.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runID == 0 {
		if r.err == nil {
			r.err = fmt.Errorf("collect before BeginRun")
		}
		return
	}

	_, err := r.db.Exec(`
		INSERT INTO ticks (run_id, tick, infected, resistant, susceptible)
		VALUES (?, ?, ?, ?, ?)
	`, r.runID, s.Tick, s.Infected, s.Resistant, s.Susceptible)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("failed to insert tick %d: %w", s.Tick, err)
	}
}

// Err returns the first error encountered while collecting, if any.
func (r *SQLiteRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Runs lists all recorded runs, most recent first.
func (r *SQLiteRecorder) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seed, created_at FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAt string
		if err := rows.Scan(&info.ID, &info.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Ticks returns the count series of a recorded run in tick order.
func (r *SQLiteRecorder) Ticks(ctx context.Context, runID int64) ([]sim.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tick, infected, resistant, susceptible
		FROM ticks WHERE run_id = ? ORDER BY tick
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var series []sim.Snapshot
	for rows.Next() {
		var s sim.Snapshot
		if err := rows.Scan(&s.Tick, &s.Infected, &s.Resistant, &s.Susceptible); err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
