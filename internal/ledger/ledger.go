// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records build history in a SQLite database so past runs
// can be listed with the history command.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/md2docx/pkg/types"
)

// DefaultLimit caps Recent when the caller passes a non-positive limit.
const DefaultLimit = 20

// Build is one recorded consolidation run.
type Build struct {
	ID        int64                 `json:"id" yaml:"id"`
	Output    string                `json:"output" yaml:"output"`
	StartedAt time.Time             `json:"started_at" yaml:"started_at"`
	Duration  time.Duration         `json:"duration" yaml:"duration"`
	Rendered  int                   `json:"rendered" yaml:"rendered"`
	Skipped   int                   `json:"skipped" yaml:"skipped"`
	Sections  []types.SectionReport `json:"sections" yaml:"sections"`
}

// Ledger wraps the build history database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating its directory and
// schema if needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			output TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			rendered INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS build_sections (
			build_id INTEGER NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			file TEXT NOT NULL,
			title TEXT,
			status TEXT NOT NULL,
			warning TEXT,
			elements TEXT,
			PRIMARY KEY (build_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores r and returns the new build ID.
func (l *Ledger) Record(ctx context.Context, r types.BuildReport) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO builds (output, started_at, duration_ms, rendered, skipped) VALUES (?, ?, ?, ?, ?)`,
		r.Output, r.StartedAt.UTC().Format(time.RFC3339Nano), r.Duration.Milliseconds(), r.Rendered(), r.Skipped(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting build: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading build id: %w", err)
	}

	for i, s := range r.Sections {
		elements, err := json.Marshal(s.Elements)
		if err != nil {
			return 0, fmt.Errorf("marshaling elements for %s: %w", s.File, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO build_sections (build_id, position, file, title, status, warning, elements) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, s.File, s.Title, string(s.Status), s.Warning, string(elements),
		); err != nil {
			return 0, fmt.Errorf("inserting section %s: %w", s.File, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing build: %w", err)
	}
	return id, nil
}

// Recent returns up to limit builds, newest first, with their sections.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Build, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, output, started_at, duration_ms, rendered, skipped
		 FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var (
			b          Build
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&b.ID, &b.Output, &startedAt, &durationMS, &b.Rendered, &b.Skipped); err != nil {
			return nil, fmt.Errorf("scanning build: %w", err)
		}
		b.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		b.Duration = time.Duration(durationMS) * time.Millisecond
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating builds: %w", err)
	}

	for i := range builds {
		sections, err := l.sections(ctx, builds[i].ID)
		if err != nil {
			return nil, err
		}
		builds[i].Sections = sections
	}
	return builds, nil
}

func (l *Ledger) sections(ctx context.Context, buildID int64) ([]types.SectionReport, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT file, title, status, warning, elements
		 FROM build_sections WHERE build_id = ? ORDER BY position`, buildID)
	if err != nil {
		return nil, fmt.Errorf("querying sections for build %d: %w", buildID, err)
	}
	defer rows.Close()

	var out []types.SectionReport
	for rows.Next() {
		var (
			s                        types.SectionReport
			title, warning, elements sql.NullString
			status                   string
		)
		if err := rows.Scan(&s.File, &title, &status, &warning, &elements); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		s.Title = title.String
		s.Status = types.SectionStatus(status)
		s.Warning = warning.String
		if elements.Valid && elements.String != "" {
			if err := json.Unmarshal([]byte(elements.String), &s.Elements); err != nil {
				return nil, fmt.Errorf("decoding elements for %s: %w", s.File, err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
