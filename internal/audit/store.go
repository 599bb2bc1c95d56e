// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit persists verification reports in a local SQLite database
// so past runs can be listed and re-examined. The full report is stored
// as a JSON payload; a handful of columns are broken out for listing and
// lookup without deserializing every row.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docucheck/pkg/types"
)

const dbFile = "audit.db"

// ErrNotFound reports a run ID with no stored report.
var ErrNotFound = errors.New("run not found")

// Store manages the audit trail SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the audit database at dir/audit.db, creating
// the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
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
			run_id TEXT PRIMARY KEY,
			generated_at TEXT NOT NULL,
			applicant TEXT,
			visa_type TEXT,
			status TEXT NOT NULL,
			confidence INTEGER NOT NULL,
			report TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save writes one report to the audit trail. Saving the same run ID twice
// replaces the stored report.
func (s *Store) Save(ctx context.Context, rep *types.StructuredReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encoding report %s: %w", rep.RunID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, generated_at, applicant, visa_type, status, confidence, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
			generated_at=excluded.generated_at, applicant=excluded.applicant,
			visa_type=excluded.visa_type, status=excluded.status,
			confidence=excluded.confidence, report=excluded.report`,
		rep.RunID, rep.GeneratedAt.UTC().Format(time.RFC3339Nano),
		rep.Applicant.DeclaredFullName(), rep.Eligibility.VisaType,
		string(rep.OverallStatus), rep.OverallConfidence, string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", rep.RunID, err)
	}
	return nil
}

// RunSummary is one audit trail entry as shown in listings.
type RunSummary struct {
	RunID       string
	GeneratedAt time.Time
	Applicant   string
	VisaType    string
	Status      types.ReportStatus
	Confidence  int
}

// List returns all stored runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, generated_at, applicant, visa_type, status, confidence
		 FROM runs ORDER BY generated_at DESC, run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var sum RunSummary
		var generatedAt, status string
		if err := rows.Scan(&sum.RunID, &generatedAt, &sum.Applicant, &sum.VisaType, &status, &sum.Confidence); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		sum.Status = types.ReportStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, generatedAt); err == nil {
			sum.GeneratedAt = t
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get retrieves one stored report by run ID.
func (s *Store) Get(ctx context.Context, runID string) (*types.StructuredReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE run_id = ?`, runID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}

	var rep types.StructuredReport
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", runID, err)
	}
	return &rep, nil
}
