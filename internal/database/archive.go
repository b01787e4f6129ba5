package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/aqwel-ai/aion/internal/embed"
	"github.com/aqwel-ai/aion/internal/model"
)

// ArchiveDB provides SQLite-based storage for analysis reports, evaluation
// runs, and embeddings.
//
// Design decision: We use a single database file for all targets rather
// than one file per project. This simplifies history queries across
// projects and backup/restore operations.
type ArchiveDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ArchiveDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an ArchiveDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ArchiveDB, error) {
	dbPath := filepath.Join(dbDir, "aion.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &ArchiveDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *ArchiveDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *ArchiveDB) createTables() error {
	schema := `
	-- Reports store complete analysis results as JSON
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		risk_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_target ON reports(target);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON reports(timestamp);

	-- Document hashes enable change detection between runs
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id INTEGER NOT NULL REFERENCES reports(id),
		path TEXT NOT NULL,
		hash TEXT NOT NULL,
		kind TEXT,
		size INTEGER,
		UNIQUE(report_id, path)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path);
	CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(hash);

	-- Evaluation runs store metrics per experiment
	CREATE TABLE IF NOT EXISTS eval_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task TEXT NOT NULL,
		preds_file TEXT NOT NULL,
		truth_file TEXT NOT NULL,
		sample_count INTEGER,
		metrics_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_eval_runs_task ON eval_runs(task);
	CREATE INDEX IF NOT EXISTS idx_eval_runs_timestamp ON eval_runs(timestamp);

	-- Embeddings store feature-hashed text vectors for similarity search
	CREATE TABLE IF NOT EXISTS embeddings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		text_hash TEXT NOT NULL,
		preview TEXT,
		dimension INTEGER NOT NULL,
		vector_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source, text_hash)
	);

	CREATE INDEX IF NOT EXISTS idx_embeddings_source ON embeddings(source);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport saves a complete analysis report as JSON along with per-document
// hashes for change detection.
func (adb *ArchiveDB) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	// Create risk summary
	riskSummary := map[string]int{
		"critical": 0,
		"high":     0,
		"medium":   0,
		"low":      0,
		"info":     0,
	}
	if report.Summary != nil {
		riskSummary["critical"] = report.Summary.CriticalCount
		riskSummary["high"] = report.Summary.HighCount
		riskSummary["medium"] = report.Summary.MediumCount
		riskSummary["low"] = report.Summary.LowCount
		riskSummary["info"] = report.Summary.InfoCount
	}
	riskJSON, _ := json.Marshal(riskSummary) //nolint:errcheck,errchkjson // riskSummary is a simple map; Marshal won't fail

	result, err := adb.db.ExecContext(ctx,
		`INSERT INTO reports (target, report_json, risk_summary) VALUES (?, ?, ?)`,
		report.Target,
		string(reportJSON),
		string(riskJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	reportID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get report id: %w", err)
	}

	for _, doc := range report.Documents {
		_, err := adb.db.ExecContext(ctx,
			`INSERT INTO documents (report_id, path, hash, kind, size) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(report_id, path) DO UPDATE SET hash = excluded.hash, kind = excluded.kind, size = excluded.size`,
			reportID, doc.Path, doc.Hash, string(doc.Kind), doc.Size,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save document record: %w", err)
		}
	}

	return reportID, nil
}

// GetLatestReport retrieves the most recent report for a target.
// Returns nil without error when the target has no stored reports.
func (adb *ArchiveDB) GetLatestReport(ctx context.Context, target string) (*model.Report, error) {
	query := `
	SELECT report_json FROM reports
	WHERE target = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, target).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetReportByID retrieves a report by its database ID.
func (adb *ArchiveDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	var reportJSON string
	err := adb.db.QueryRowContext(ctx, `SELECT report_json FROM reports WHERE id = ?`, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListTargets returns all targets with stored reports.
func (adb *ArchiveDB) ListTargets(ctx context.Context) ([]string, error) {
	rows, err := adb.db.QueryContext(ctx, `SELECT DISTINCT target FROM reports ORDER BY target`)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, target)
	}

	return targets, rows.Err()
}

// ReportMetadata contains summary information about a stored report.
// This is used for displaying history without loading full reports.
type ReportMetadata struct {
	// ID is the unique identifier of the report in the database.
	ID int64

	// Target is the analyzed path.
	Target string

	// Timestamp is when the analysis was performed.
	Timestamp time.Time

	// RiskSummary contains counts of findings by severity level.
	RiskSummary map[string]int
}

// GetHistoryWithMetadata retrieves report metadata for a target, newest first.
// This is more efficient than loading each full report when only metadata
// is needed.
func (adb *ArchiveDB) GetHistoryWithMetadata(ctx context.Context, target string) ([]ReportMetadata, error) {
	query := `
	SELECT id, target, timestamp, risk_summary
	FROM reports
	WHERE target = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, target)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []ReportMetadata
	for rows.Next() {
		var meta ReportMetadata
		var timestamp string
		var riskJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Target, &timestamp, &riskJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if riskJSON.Valid && riskJSON.String != "" {
			if err := json.Unmarshal([]byte(riskJSON.String), &meta.RiskSummary); err != nil {
				meta.RiskSummary = make(map[string]int)
			}
		} else {
			meta.RiskSummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// HasUnchangedDocument reports whether the latest stored report for target
// recorded the given path with the same content hash. Used to skip
// re-analysis of unchanged files.
func (adb *ArchiveDB) HasUnchangedDocument(ctx context.Context, target, path, hash string) (bool, error) {
	query := `
	SELECT COUNT(*) FROM documents
	WHERE report_id = (SELECT id FROM reports WHERE target = ? ORDER BY timestamp DESC, id DESC LIMIT 1)
	AND path = ? AND hash = ?
	`

	var count int
	if err := adb.db.QueryRowContext(ctx, query, target, path, hash).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check document hash: %w", err)
	}

	return count > 0, nil
}

// SaveEvalRun persists an evaluation run and returns its database ID.
func (adb *ArchiveDB) SaveEvalRun(ctx context.Context, run *model.EvalRun) (int64, error) {
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize metrics: %w", err)
	}

	result, err := adb.db.ExecContext(ctx,
		`INSERT INTO eval_runs (task, preds_file, truth_file, sample_count, metrics_json, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.Task,
		run.PredsFile,
		run.TruthFile,
		run.SampleCount,
		string(metricsJSON),
		run.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save eval run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get eval run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// ListEvalRuns retrieves stored evaluation runs, newest first.
// The task filter is optional; an empty string returns all runs.
func (adb *ArchiveDB) ListEvalRuns(ctx context.Context, task string) ([]*model.EvalRun, error) {
	query := `
	SELECT id, task, preds_file, truth_file, sample_count, metrics_json, timestamp
	FROM eval_runs
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if task != "" {
		query += " AND task = ?"
		args = append(args, task)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list eval runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.EvalRun
	for rows.Next() {
		var run model.EvalRun
		var metricsJSON string
		var timestamp string

		err := rows.Scan(
			&run.ID,
			&run.Task,
			&run.PredsFile,
			&run.TruthFile,
			&run.SampleCount,
			&metricsJSON,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan eval run: %w", err)
		}

		run.CreatedAt = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(metricsJSON), &run.Metrics); err != nil {
			continue // Skip malformed rows
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// SaveEmbedding persists an embedding and returns its database ID.
// Re-embedding identical text from the same source updates the stored row.
func (adb *ArchiveDB) SaveEmbedding(ctx context.Context, emb *model.Embedding) (int64, error) {
	vectorJSON, err := json.Marshal(emb.Vector)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize vector: %w", err)
	}

	query := `
	INSERT INTO embeddings (source, text_hash, preview, dimension, vector_json)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(source, text_hash) DO UPDATE SET
		preview = excluded.preview,
		dimension = excluded.dimension,
		vector_json = excluded.vector_json,
		timestamp = CURRENT_TIMESTAMP
	`

	result, err := adb.db.ExecContext(ctx, query,
		emb.Source,
		emb.TextHash,
		emb.Preview,
		emb.Dimension,
		string(vectorJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save embedding: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get embedding id: %w", err)
	}
	emb.ID = id
	return id, nil
}

// ListEmbeddings retrieves all stored embeddings.
func (adb *ArchiveDB) ListEmbeddings(ctx context.Context) ([]*model.Embedding, error) {
	query := `
	SELECT id, source, text_hash, preview, dimension, vector_json, timestamp
	FROM embeddings
	ORDER BY id
	`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings: %w", err)
	}
	defer rows.Close()

	var embeddings []*model.Embedding
	for rows.Next() {
		var emb model.Embedding
		var vectorJSON string
		var timestamp string

		err := rows.Scan(
			&emb.ID,
			&emb.Source,
			&emb.TextHash,
			&emb.Preview,
			&emb.Dimension,
			&vectorJSON,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}

		emb.CreatedAt = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(vectorJSON), &emb.Vector); err != nil {
			continue // Skip malformed rows
		}
		embeddings = append(embeddings, &emb)
	}

	return embeddings, rows.Err()
}

// SearchEmbeddings returns the top-k stored embeddings most similar to the
// query vector.
//
// Design decision: We load all embeddings and rank in memory rather than
// pushing similarity into SQL because:
// 1. SQLite has no native vector operations
// 2. Archives hold at most thousands of embeddings, which ranks in microseconds
// 3. It reuses the same cosine ranking the embed package already tests
func (adb *ArchiveDB) SearchEmbeddings(ctx context.Context, query *model.Embedding, k int) ([]embed.Match, error) {
	candidates, err := adb.ListEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	return embed.Nearest(query, candidates, k), nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
