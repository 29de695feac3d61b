package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/strength"
)

// FileName is the history database file name inside the data directory.
const FileName = "passforge.db"

var (
	// ErrAuditNotFound is returned when no audit has the requested ID.
	ErrAuditNotFound = errors.New("audit not found")

	// ErrNotEnoughAudits is returned when a comparison needs two audits of
	// a source and fewer exist.
	ErrNotEnoughAudits = errors.New("not enough audits to compare: need at least two")

	// ErrDatabaseNotFound is returned by Open when the database does not
	// exist and creation was not requested.
	ErrDatabaseNotFound = errors.New("database not found")
)

// AuditDB stores audit summaries.
type AuditDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
func Open(ctx context.Context, dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := NewFromDB(db)
	adb.dbPath = dbPath

	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return adb, nil
}

// NewFromDB wraps an open database handle. The schema is not created;
// call Migrate for that.
func NewFromDB(db *sql.DB) *AuditDB {
	return &AuditDB{db: db}
}

// Path returns the database file path, or "" for a wrapped handle.
func (adb *AuditDB) Path() string {
	return adb.dbPath
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// Migrate creates the schema if it does not exist.
func (adb *AuditDB) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		total INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		very_weak INTEGER NOT NULL DEFAULT 0,
		weak INTEGER NOT NULL DEFAULT 0,
		fair INTEGER NOT NULL DEFAULT 0,
		strong INTEGER NOT NULL DEFAULT 0,
		excellent INTEGER NOT NULL DEFAULT 0,
		mean_bits REAL NOT NULL DEFAULT 0,
		min_bits INTEGER NOT NULL DEFAULT 0,
		max_bits INTEGER NOT NULL DEFAULT 0,
		cancelled INTEGER NOT NULL DEFAULT 0,
		rule_hits TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_audits_source ON audits(source);
	`

	if _, err := adb.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// SaveAudit stores the aggregates of report and sets report.ID.
// Per-line entries are not stored.
func (adb *AuditDB) SaveAudit(ctx context.Context, report *model.AuditReport) (int64, error) {
	ruleJSON, err := json.Marshal(report.RuleHits)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize rule hits: %w", err)
	}

	query := `
	INSERT INTO audits (source, started_at, finished_at, total, skipped,
		very_weak, weak, fair, strong, excellent,
		mean_bits, min_bits, max_bits, cancelled, rule_hits)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := adb.db.ExecContext(ctx, query,
		report.Source,
		formatTimestamp(report.StartedAt),
		formatTimestamp(report.FinishedAt),
		report.Total,
		report.Skipped,
		report.Counts.VeryWeak,
		report.Counts.Weak,
		report.Counts.Fair,
		report.Counts.Strong,
		report.Counts.Excellent,
		report.MeanBits,
		report.MinBits,
		report.MaxBits,
		report.Cancelled,
		string(ruleJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save audit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read audit id: %w", err)
	}
	report.ID = id
	return id, nil
}

const selectAudit = `
	SELECT id, source, started_at, finished_at, total, skipped,
		very_weak, weak, fair, strong, excellent,
		mean_bits, min_bits, max_bits, cancelled, rule_hits
	FROM audits
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (*model.AuditReport, error) {
	var (
		r          model.AuditReport
		startedAt  string
		finishedAt sql.NullString
		ruleJSON   sql.NullString
	)
	err := row.Scan(
		&r.ID, &r.Source, &startedAt, &finishedAt, &r.Total, &r.Skipped,
		&r.Counts.VeryWeak, &r.Counts.Weak, &r.Counts.Fair, &r.Counts.Strong, &r.Counts.Excellent,
		&r.MeanBits, &r.MinBits, &r.MaxBits, &r.Cancelled, &ruleJSON,
	)
	if err != nil {
		return nil, err
	}

	r.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		r.FinishedAt = parseTimestamp(finishedAt.String)
	}

	r.RuleHits = make(map[strength.Rule]int)
	if ruleJSON.Valid && ruleJSON.String != "" {
		if err := json.Unmarshal([]byte(ruleJSON.String), &r.RuleHits); err != nil {
			r.RuleHits = make(map[strength.Rule]int)
		}
	}
	return &r, nil
}

// GetAuditByID returns the audit with id, or ErrAuditNotFound.
func (adb *AuditDB) GetAuditByID(ctx context.Context, id int64) (*model.AuditReport, error) {
	r, err := scanAudit(adb.db.QueryRowContext(ctx, selectAudit+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrAuditNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}
	return r, nil
}

// ListAudits returns audits newest first. An empty source lists every
// source.
func (adb *AuditDB) ListAudits(ctx context.Context, source string) ([]*model.AuditReport, error) {
	query := selectAudit + " ORDER BY id DESC"
	args := []any{}
	if source != "" {
		query = selectAudit + " WHERE source = ? ORDER BY id DESC"
		args = append(args, source)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var audits []*model.AuditReport
	for rows.Next() {
		r, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		audits = append(audits, r)
	}
	return audits, rows.Err()
}

// ListSources returns the distinct audited sources in name order.
func (adb *AuditDB) ListSources(ctx context.Context) ([]string, error) {
	rows, err := adb.db.QueryContext(ctx, `SELECT DISTINCT source FROM audits ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// LatestTwo returns the previous and the latest audit of source.
func (adb *AuditDB) LatestTwo(ctx context.Context, source string) (*model.AuditReport, *model.AuditReport, error) {
	rows, err := adb.db.QueryContext(ctx, selectAudit+" WHERE source = ? ORDER BY id DESC LIMIT 2", source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest audits: %w", err)
	}
	defer rows.Close()

	var audits []*model.AuditReport
	for rows.Next() {
		r, err := scanAudit(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		audits = append(audits, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to get latest audits: %w", err)
	}
	if len(audits) < 2 {
		return nil, nil, fmt.Errorf("%w for %s", ErrNotEnoughAudits, source)
	}
	return audits[1], audits[0], nil
}

// DeleteSource removes every audit of source and returns the number of
// rows deleted.
func (adb *AuditDB) DeleteSource(ctx context.Context, source string) (int64, error) {
	res, err := adb.db.ExecContext(ctx, `DELETE FROM audits WHERE source = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted audits: %w", err)
	}
	return n, nil
}

// timestampFormats are tried in order when reading stored timestamps.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimestamp returns the zero time for empty or unknown input.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
