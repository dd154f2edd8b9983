package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veritaslab/veritas/internal/model"
)

// SQLiteStore persists the result log in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "veritas.db"
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS claim_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		claim TEXT NOT NULL,
		verdict TEXT NOT NULL,
		confidence_score REAL NOT NULL,
		explanation TEXT NOT NULL,
		processing_time_ms INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		sources TEXT,
		session_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_claim_results_verdict ON claim_results(verdict);
	CREATE INDEX IF NOT EXISTS idx_claim_results_timestamp ON claim_results(timestamp);
	CREATE INDEX IF NOT EXISTS idx_claim_results_session ON claim_results(session_id);
	`
	_, err := db.Exec(schema)
	return err
}

// Add inserts a record and assigns the autoincrement id
func (s *SQLiteStore) Add(ctx context.Context, rec *model.Record) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO claim_results (claim, verdict, confidence_score, explanation, processing_time_ms, timestamp, sources, session_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Claim, string(rec.Verdict), rec.ConfidenceScore, rec.Explanation,
		rec.ProcessingTimeMS, rec.Timestamp, rec.Sources, rec.SessionID,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted id: %w", err)
	}
	rec.ID = id
	return nil
}

// List returns records newest-first with limit/offset pagination
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]model.Record, error) {
	if limit <= 0 || offset < 0 {
		return []model.Record{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, claim, verdict, confidence_score, explanation, processing_time_ms, timestamp, sources, session_id
		 FROM claim_results ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns one record by id
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*model.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, claim, verdict, confidence_score, explanation, processing_time_ms, timestamp, sources, session_id
		 FROM claim_results WHERE id = ?`, id,
	)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Stats aggregates verdict counts and averages over the whole log
func (s *SQLiteStore) Stats(ctx context.Context) (model.Stats, error) {
	stats := model.Stats{Verdicts: make(map[model.Verdict]int)}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(confidence_score), 0), COALESCE(AVG(processing_time_ms), 0) FROM claim_results`)
	if err := row.Scan(&stats.Total, &stats.AverageConfidence, &stats.AverageProcessingTimeMS); err != nil {
		return model.Stats{}, fmt.Errorf("aggregate stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT verdict, COUNT(*) FROM claim_results GROUP BY verdict`)
	if err != nil {
		return model.Stats{}, fmt.Errorf("count verdicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return model.Stats{}, err
		}
		stats.Verdicts[model.Verdict(verdict)] = count
	}
	return stats, rows.Err()
}

// Clear removes all records. The sqlite_sequence entry is kept so
// autoincrement ids are not reused.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM claim_results`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (model.Record, error) {
	var rec model.Record
	var verdict string
	var sources, sessionID sql.NullString

	err := row.Scan(&rec.ID, &rec.Claim, &verdict, &rec.ConfidenceScore,
		&rec.Explanation, &rec.ProcessingTimeMS, &rec.Timestamp, &sources, &sessionID)
	if err != nil {
		return model.Record{}, err
	}

	rec.Verdict = model.Verdict(verdict)
	rec.Sources = sources.String
	rec.SessionID = sessionID.String
	return rec, nil
}
