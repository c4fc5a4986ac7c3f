package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mixsplit/internal/splitter"
)

// Run is one recorded split run.
type Run struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	DryRun         bool
	InputDir       string
	Files          int
	Archived       int
	Skipped        int
	Failed         int
	SegmentsCut    int
	SegmentsFailed int
}

// File is the recorded outcome of one description file within a run.
type File struct {
	Description     string
	State           string
	DurationSeconds int
	Entries         int
	SegmentsCut     int
	SegmentsExists  int
	SegmentsFailed  int
	SegmentsInvalid int
	Error           string
}

// Store persists split runs in sqlite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the ledger at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps pragmas applied for every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a batch report and its per-file results in one transaction.
func (s *Store) Record(ctx context.Context, report splitter.BatchReport) error {
	if report.RunID == "" {
		return errors.New("record run: missing run id")
	}
	summary := report.Summary()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, started_at, finished_at, dry_run, input_dir,
            files, archived, skipped, failed, segments_cut, segments_failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		formatTime(report.StartedAt),
		nullableTime(report.FinishedAt),
		boolToInt(report.DryRun),
		report.InputDir,
		summary.Files,
		summary.Archived,
		summary.Skipped,
		summary.Failed,
		summary.Segments[splitter.SegmentCut],
		summary.Segments[splitter.SegmentFailed],
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range report.Files {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (
                run_id, description, state, duration_seconds, entries,
                segments_cut, segments_exists, segments_failed, segments_invalid, error_message
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID,
			file.Description,
			string(file.State),
			file.Duration,
			file.Entries,
			file.Count(splitter.SegmentCut),
			file.Count(splitter.SegmentExists),
			file.Count(splitter.SegmentFailed),
			file.Count(splitter.SegmentInvalid),
			errorMessage(file.Err),
		)
		if err != nil {
			return fmt.Errorf("insert run file %s: %w", file.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, started_at, finished_at, dry_run, input_dir,
        files, archived, skipped, failed, segments_cut, segments_failed
        FROM runs ORDER BY started_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished sql.NullString
			dryRun   int
		)
		if err := rows.Scan(&run.RunID, &started, &finished, &dryRun, &run.InputDir,
			&run.Files, &run.Archived, &run.Skipped, &run.Failed,
			&run.SegmentsCut, &run.SegmentsFailed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		run.StartedAt = parseTime(started)
		if finished.Valid {
			run.FinishedAt = parseTime(finished.String)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Files returns the per-file results recorded for runID in insertion order.
func (s *Store) Files(ctx context.Context, runID string) ([]File, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT description, state, duration_seconds, entries,
            segments_cut, segments_exists, segments_failed, segments_invalid, error_message
        FROM run_files WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var (
			file   File
			errMsg sql.NullString
		)
		if err := rows.Scan(&file.Description, &file.State, &file.DurationSeconds, &file.Entries,
			&file.SegmentsCut, &file.SegmentsExists, &file.SegmentsFailed, &file.SegmentsInvalid,
			&errMsg); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		file.Error = errMsg.String
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return files, nil
}

// timeLayout has fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func errorMessage(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}
