// Package history keeps a local record of report runs.
//
// Every reporting tool invocation appends one row describing what was asked
// and the headline figures of the answer, so a session can be reviewed later
// without querying the backend again. The store is SQLite-backed and
// optional: the server runs fine without it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// Run is one recorded tool invocation.
type Run struct {
	ID         string  `json:"id"`
	Tool       string  `json:"tool"`
	Member     string  `json:"member,omitempty"`
	Year       int     `json:"year,omitempty"`
	WeekLabel  string  `json:"week_label,omitempty"`
	MonthLabel string  `json:"month_label,omitempty"`
	IssueCount int     `json:"issue_count"`
	TotalHours float64 `json:"total_hours"`
	TotalPV    float64 `json:"total_pv"`
	TotalEV    float64 `json:"total_ev"`
	CPI        float64 `json:"cpi"`
	CreatedAt  string  `json:"created_at"`
}

// Config holds history store configuration.
type Config struct {
	Path string
}

// DefaultConfig returns the default configuration for the history store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{Path: filepath.Join(home, ".socramine", "history.db")}
}

// Store persists report runs in SQLite.
type Store struct {
	db *sql.DB
}

// New opens the history database, creating it and its directory if needed,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS report_runs (
			id          TEXT PRIMARY KEY,
			tool        TEXT NOT NULL,
			member      TEXT,
			year        INTEGER,
			week_label  TEXT,
			month_label TEXT,
			issue_count INTEGER NOT NULL DEFAULT 0,
			total_hours REAL    NOT NULL DEFAULT 0,
			total_pv    REAL    NOT NULL DEFAULT 0,
			total_ev    REAL    NOT NULL DEFAULT 0,
			cpi         REAL    NOT NULL DEFAULT 0,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created ON report_runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_tool    ON report_runs(tool);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one run and returns its id. The id and timestamp are filled
// here; callers only describe what happened.
func (s *Store) Record(run Run) (string, error) {
	run.ID = uuid.NewString()
	run.CreatedAt = timeNow().UTC().Format(time.RFC3339)

	_, err := s.db.Exec(
		`INSERT INTO report_runs (id, tool, member, year, week_label, month_label,
		                          issue_count, total_hours, total_pv, total_ev, cpi, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Tool, run.Member, run.Year, run.WeekLabel, run.MonthLabel,
		run.IssueCount, run.TotalHours, run.TotalPV, run.TotalEV, run.CPI, run.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("history: record run: %w", err)
	}
	return run.ID, nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, tool, ifnull(member, ''), ifnull(year, 0),
		        ifnull(week_label, ''), ifnull(month_label, ''),
		        issue_count, total_hours, total_pv, total_ev, cpi, created_at
		 FROM report_runs
		 ORDER BY created_at DESC, id
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.Tool, &r.Member, &r.Year, &r.WeekLabel, &r.MonthLabel,
			&r.IssueCount, &r.TotalHours, &r.TotalPV, &r.TotalEV, &r.CPI, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
