// Package artifacts persists extraction by-products: the raw OCR text and
// narrative tables as files, and a run journal in SQLite.
package artifacts

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	run_id      TEXT PRIMARY KEY,
	document    TEXT NOT NULL,
	strategy    TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_runs_document ON extraction_runs(document);

CREATE TABLE IF NOT EXISTS artifact_files (
	document   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	path       TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store writes artifact files under a directory and journals extraction
// runs in SQLite. It implements tariff.Recorder.
type Store struct {
	dir    string
	db     *sql.DB
	logger *slog.Logger
}

// Open creates the artifact directory, opens the journal database and
// applies schema and pragmas.
func Open(dir, dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	if parent := filepath.Dir(dbPath); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	// Pragmas go through Exec so they work with any sqlite driver.
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{dir: dir, db: db, logger: logger}, nil
}

// Close closes the journal database.
func (s *Store) Close() error { return s.db.Close() }

// RecordOCRText writes the OCR markdown for doc to <doc>_ocr.txt.
func (s *Store) RecordOCRText(doc, text string) {
	s.writeFile(doc, "ocr_text", doc+"_ocr.txt", text)
}

// RecordNarrativeTable writes the model-produced table to
// <doc>_llm_table.md.
func (s *Store) RecordNarrativeTable(doc, markdown string) {
	s.writeFile(doc, "llm_table", doc+"_llm_table.md", markdown)
}

func (s *Store) writeFile(doc, kind, name, content string) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.logger.Error("write artifact failed", "document", doc, "kind", kind, "error", err)
		return
	}
	if _, err := s.db.Exec(
		`INSERT INTO artifact_files (document, kind, path) VALUES (?, ?, ?)`,
		doc, kind, path,
	); err != nil {
		s.logger.Error("journal artifact failed", "document", doc, "kind", kind, "error", err)
	}
}

// RecordRun journals one extraction attempt.
func (s *Store) RecordRun(doc, stage string, rows int, elapsed time.Duration) {
	if _, err := s.db.Exec(
		`INSERT INTO extraction_runs (run_id, document, strategy, row_count, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), doc, stage, rows, elapsed.Milliseconds(),
	); err != nil {
		s.logger.Error("journal run failed", "document", doc, "error", err)
	}
}

// Run is one journaled extraction run.
type Run struct {
	RunID      string `json:"run_id"`
	Document   string `json:"document"`
	Strategy   string `json:"strategy"`
	RowCount   int    `json:"row_count"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT run_id, document, strategy, row_count, duration_ms, created_at
		 FROM extraction_runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Document, &r.Strategy, &r.RowCount, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
