// Package store handles SQLite persistence of analysis runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/passlab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			input TEXT NOT NULL,
			min_length INTEGER NOT NULL,
			max_length INTEGER NOT NULL,
			ascii_only INTEGER NOT NULL,
			pattern TEXT NOT NULL,
			enhanced INTEGER NOT NULL,
			total INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			filtered INTEGER NOT NULL,
			mean_length REAL NOT NULL,
			mean_entropy REAL NOT NULL,
			min_entropy INTEGER NOT NULL,
			max_entropy INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_lengths (
			run_id TEXT NOT NULL,
			length INTEGER NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, length)
		);`,
		`CREATE TABLE IF NOT EXISTS run_patterns (
			run_id TEXT NOT NULL,
			pattern TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, pattern)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run with its length distribution and top
// pattern signatures.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, lengths []model.LengthCount, patterns []model.PatternCount) (err error) {
	if run.ID == "" {
		return fmt.Errorf("run id is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ended_at, input, min_length, max_length, ascii_only, pattern, enhanced,
			total, valid, filtered, mean_length, mean_entropy, min_entropy, max_entropy, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Input,
		run.Options.MinLength,
		run.Options.MaxLength,
		run.Options.ASCIIOnly,
		run.Options.Pattern,
		run.Options.Enhanced,
		run.Total,
		run.Valid,
		run.Filtered,
		run.MeanLength,
		run.MeanEntropy,
		run.MinEntropy,
		run.MaxEntropy,
		run.DurationMs,
	)
	if err != nil {
		return err
	}

	if err = insertRows(ctx, tx, `INSERT INTO run_lengths (run_id, length, count) VALUES (?, ?, ?)`, len(lengths), func(i int) []any {
		return []any{run.ID, lengths[i].Length, lengths[i].Count}
	}); err != nil {
		return err
	}
	if err = insertRows(ctx, tx, `INSERT INTO run_patterns (run_id, pattern, count) VALUES (?, ?, ?)`, len(patterns), func(i int) []any {
		return []any{run.ID, patterns[i].Pattern, patterns[i].Count}
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, args func(int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, started_at, ended_at, input, min_length, max_length, ascii_only,
			pattern, enhanced, total, valid, filtered, mean_length, mean_entropy, min_entropy, max_entropy, duration_ms
		FROM runs
		ORDER BY ended_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var startedAt, endedAt string
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.Input,
			&run.Options.MinLength, &run.Options.MaxLength, &run.Options.ASCIIOnly, &run.Options.Pattern, &run.Options.Enhanced,
			&run.Total, &run.Valid, &run.Filtered, &run.MeanLength, &run.MeanEntropy, &run.MinEntropy, &run.MaxEntropy,
			&run.DurationMs); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// RunLengths returns the stored length distribution of a run in length order.
func (s *Store) RunLengths(ctx context.Context, runID string) ([]model.LengthCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT length, count FROM run_lengths WHERE run_id = ? ORDER BY length ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LengthCount
	for rows.Next() {
		var lc model.LengthCount
		if err := rows.Scan(&lc.Length, &lc.Count); err != nil {
			return nil, err
		}
		result = append(result, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RunPatterns returns the stored pattern signatures of a run, most common
// first with ties in lexical order.
func (s *Store) RunPatterns(ctx context.Context, runID string) ([]model.PatternCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pattern, count FROM run_patterns WHERE run_id = ? ORDER BY count DESC, pattern ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PatternCount
	for rows.Next() {
		var pc model.PatternCount
		if err := rows.Scan(&pc.Pattern, &pc.Count); err != nil {
			return nil, err
		}
		result = append(result, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
