// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps written result documents in a local SQLite database
// so earlier runs can be listed and searched. It never feeds back into a
// fetch: every run still replaces the output file.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-fetch/pkg/types"
)

const defaultMaxResults = 20

// Store manages the archive database.
type Store struct {
	db *sql.DB
}

// Run describes one archived result document.
type Run struct {
	ID                string    `json:"id" yaml:"id"`
	ProfileID         string    `json:"profile_id" yaml:"profile_id"`
	LastUpdated       string    `json:"last_updated" yaml:"last_updated"`
	TotalPublications int       `json:"total_publications" yaml:"total_publications"`
	IngestedAt        time.Time `json:"ingested_at" yaml:"ingested_at"`
}

// NewStore opens or creates the archive at cfg.DBPath and ensures the schema.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("archive database path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
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
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			profile_id TEXT NOT NULL,
			last_updated TEXT,
			total INTEGER NOT NULL,
			ingested_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile_id)`,
		`CREATE TABLE IF NOT EXISTS publications (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors TEXT,
			venue TEXT,
			year TEXT,
			citations INTEGER,
			link TEXT,
			scholar_link TEXT,
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Ingest stores doc as a new run of profileID and returns it.
func (s *Store) Ingest(ctx context.Context, profileID string, doc types.ResultDocument) (Run, error) {
	run := Run{
		ID:                uuid.NewString(),
		ProfileID:         profileID,
		LastUpdated:       doc.LastUpdated,
		TotalPublications: len(doc.Publications),
		IngestedAt:        time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, profile_id, last_updated, total, ingested_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.ProfileID, run.LastUpdated, run.TotalPublications, run.IngestedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (run_id, position, title, authors, venue, year, citations, link, scholar_link)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range doc.Publications {
		_, err := stmt.ExecContext(ctx,
			run.ID, i, p.Title, p.Authors, p.Venue, p.Year, p.Citations,
			nullString(p.Link), nullString(p.ScholarLink),
		)
		if err != nil {
			return Run{}, fmt.Errorf("inserting publication %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

// Runs lists archived runs newest first, optionally for one profile.
func (s *Store) Runs(ctx context.Context, profileID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultMaxResults
	}

	query := `SELECT id, profile_id, last_updated, total, ingested_at FROM runs`
	var args []any
	if profileID != "" {
		query += ` WHERE profile_id = ?`
		args = append(args, profileID)
	}
	query += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var lastUpdated sql.NullString
		var ingested string
		if err := rows.Scan(&r.ID, &r.ProfileID, &lastUpdated, &r.TotalPublications, &ingested); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.LastUpdated = lastUpdated.String
		if t, err := time.Parse(time.RFC3339Nano, ingested); err == nil {
			r.IngestedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Publications returns the publications of one run in their original order.
func (s *Store) Publications(ctx context.Context, runID string) ([]types.Publication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, authors, venue, year, citations, link, scholar_link
		 FROM publications WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	pubs := []types.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// SearchOptions filters Search.
type SearchOptions struct {
	// Text matches title, authors or venue, case-insensitively for ASCII.
	Text string

	ProfileID  string
	Year       string
	MaxResults int
}

// SearchResult is a matching publication with its run.
type SearchResult struct {
	types.Publication `yaml:",inline"`

	RunID     string `json:"run_id" yaml:"run_id"`
	ProfileID string `json:"profile_id" yaml:"profile_id"`
}

// Search finds publications in the latest run of each profile, most cited first.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}

	var where []string
	var args []any

	where = append(where, `r.seq = (SELECT MAX(seq) FROM runs WHERE profile_id = r.profile_id)`)
	if opts.Text != "" {
		pattern := "%" + escapeLike(opts.Text) + "%"
		where = append(where, `(p.title LIKE ? ESCAPE '\' OR p.authors LIKE ? ESCAPE '\' OR p.venue LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if opts.ProfileID != "" {
		where = append(where, `r.profile_id = ?`)
		args = append(args, opts.ProfileID)
	}
	if opts.Year != "" {
		where = append(where, `p.year = ?`)
		args = append(args, opts.Year)
	}
	args = append(args, limit)

	query := `SELECT p.title, p.authors, p.venue, p.year, p.citations, p.link, p.scholar_link, r.id, r.profile_id
		FROM publications p JOIN runs r ON r.id = p.run_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY p.citations DESC, p.position
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching publications: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var link, scholarLink sql.NullString
		var authors, venue, year sql.NullString
		if err := rows.Scan(&r.Title, &authors, &venue, &year, &r.Citations, &link, &scholarLink, &r.RunID, &r.ProfileID); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Authors, r.Venue, r.Year = authors.String, venue.String, year.String
		r.Link, r.ScholarLink = stringPtr(link), stringPtr(scholarLink)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanPublication(rows *sql.Rows) (types.Publication, error) {
	var p types.Publication
	var authors, venue, year, link, scholarLink sql.NullString
	if err := rows.Scan(&p.Title, &authors, &venue, &year, &p.Citations, &link, &scholarLink); err != nil {
		return p, fmt.Errorf("scanning publication: %w", err)
	}
	p.Authors, p.Venue, p.Year = authors.String, venue.String, year.String
	p.Link, p.ScholarLink = stringPtr(link), stringPtr(scholarLink)
	return p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return types.StringPtr(ns.String)
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
