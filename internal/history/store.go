// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists repository query runs in a local SQLite
// database so past envelopes can be listed and searched with FTS5.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/bioquery/pkg/types"
)

const dbFile = "bioquery.db"

// Store manages the query history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Entry is one recorded repository run.
type Entry struct {
	ID         int64     `json:"id"`
	Repository string    `json:"repository"`
	QueryJSON  string    `json:"query"`
	Status     string    `json:"status"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Open creates or opens the history database at {dir}/bioquery.db,
// creating the schema when missing.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			repository TEXT NOT NULL,
			query_json TEXT NOT NULL,
			results_json TEXT NOT NULL,
			status TEXT NOT NULL,
			count INTEGER NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_repository ON runs(repository)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='runs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE runs_fts USING fts5(query_json, results_json, content=runs, content_rowid=id)`,
			`CREATE TRIGGER runs_ai AFTER INSERT ON runs BEGIN
				INSERT INTO runs_fts(rowid, query_json, results_json)
				VALUES (new.id, new.query_json, new.results_json);
			END`,
			`CREATE TRIGGER runs_ad AFTER DELETE ON runs BEGIN
				INSERT INTO runs_fts(runs_fts, rowid, query_json, results_json)
				VALUES('delete', old.id, old.query_json, old.results_json);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record stores one repository run.
func (s *Store) Record(ctx context.Context, repository string, env types.ResponseEnvelope) error {
	queryJSON, err := json.Marshal(env.Query)
	if err != nil {
		return fmt.Errorf("marshalling query: %w", err)
	}
	resultsJSON, err := json.Marshal(env.Results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (repository, query_json, results_json, status, count, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		repository, string(queryJSON), string(resultsJSON),
		env.Status, env.Count, env.Error, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. A non-positive
// limit falls back to the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, repository, query_json, status, count, COALESCE(error, ''), created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search runs an FTS5 match over recorded queries and results, newest
// first. The term is quoted so user input cannot inject FTS syntax.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	quoted := `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.repository, r.query_json, r.status, r.count, COALESCE(r.error, ''), r.created_at
		 FROM runs_fts f JOIN runs r ON r.id = f.rowid
		 WHERE runs_fts MATCH ?
		 ORDER BY r.id DESC LIMIT ?`, quoted, limit)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Repository, &e.QueryJSON, &e.Status, &e.Count, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
