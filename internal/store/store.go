// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists workflow run history in a local SQLite
// database. The store is bookkeeping only: every authoritative entity
// (document set, asset) lives on the server, and the store records the
// identifiers and outcomes each run produced.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fieldscope/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "fieldscope.db"
)

// Run is one recorded workflow run with its per-asset outcomes.
type Run struct {
	ID            string     `json:"id"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    time.Time  `json:"finished_at"`
	DocumentSetID string     `json:"document_set_id"`
	ResultsPath   string     `json:"results_path,omitempty"`
	Status        string     `json:"status"`
	Assets        []RunAsset `json:"assets,omitempty"`
}

// RunAsset is the final state of one asset within a run.
type RunAsset struct {
	Kind    types.AssetKind   `json:"kind"`
	AssetID string            `json:"asset_id"`
	Status  types.AssetStatus `json:"status"`
	Error   string            `json:"error,omitempty"`
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dataDir/index/fieldscope.db
// and creates the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			document_set_id TEXT,
			results_path TEXT,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_assets (
			run_id TEXT NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			asset_id TEXT,
			status TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_assets_run_id ON run_assets(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun inserts a completed run and its asset outcomes in one
// transaction.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, document_set_id, results_path, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.DocumentSetID, run.ResultsPath, run.Status,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_assets (run_id, kind, asset_id, status, error)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing asset insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range run.Assets {
		if _, err := stmt.ExecContext(ctx,
			run.ID, string(a.Kind), a.AssetID, string(a.Status), a.Error); err != nil {
			return fmt.Errorf("inserting asset %s: %w", a.Kind, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns recorded runs, newest first, with their assets.
// limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, document_set_id, results_path, status
		 FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.DocumentSetID, &r.ResultsPath, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		assets, err := s.runAssets(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Assets = assets
	}
	return runs, nil
}

// LastRun returns the most recent run, or sql.ErrNoRows when the store
// is empty.
func (s *Store) LastRun(ctx context.Context) (Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, sql.ErrNoRows
	}
	return runs[0], nil
}

func (s *Store) runAssets(ctx context.Context, runID string) ([]RunAsset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, asset_id, status, error FROM run_assets WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run assets: %w", err)
	}
	defer rows.Close()

	var assets []RunAsset
	for rows.Next() {
		var a RunAsset
		var kind, status string
		if err := rows.Scan(&kind, &a.AssetID, &status, &a.Error); err != nil {
			return nil, fmt.Errorf("scanning run asset: %w", err)
		}
		a.Kind = types.AssetKind(kind)
		a.Status = types.AssetStatus(status)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
