// Package history keeps finished SEO reports in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seo-optimizer/swissseo/analyzer"
)

// ErrNotFound is returned when no record has the requested ID
var ErrNotFound = errors.New("history: record not found")

// DefaultLimit is used by Recent for non-positive limits
const DefaultLimit = 20

const maxLimit = 200

// Record is one stored analysis with its SEO report
type Record struct {
	ID        string                   `json:"id"`
	Source    string                   `json:"source"`
	CreatedAt time.Time                `json:"created_at"`
	Analysis  analyzer.ContentAnalysis `json:"analysis"`
	Report    analyzer.SEOScoreReport  `json:"seo"`
}

// Store persists records in SQLite
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a record, assigning an ID and creation time when missing, and
// returns the stored record
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Millisecond)

	analysis, err := json.Marshal(rec.Analysis)
	if err != nil {
		return Record{}, fmt.Errorf("encode analysis: %w", err)
	}
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return Record{}, fmt.Errorf("encode report: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses(id, source, title, word_count, score, grade, analysis, report, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		rec.ID,
		rec.Source,
		rec.Analysis.Title,
		rec.Analysis.WordCount,
		rec.Report.Score,
		rec.Report.Grade,
		string(analysis),
		string(report),
		rec.CreatedAt.UnixMilli(),
	); err != nil {
		return Record{}, fmt.Errorf("insert analysis: %w", err)
	}
	return rec, nil
}

// Get returns the record with the given ID or ErrNotFound
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, analysis, report, created_at FROM analyses WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, analysis, report, created_at FROM analyses
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		analysis  string
		report    string
		createdAt int64
	)
	if err := row.Scan(&rec.ID, &rec.Source, &analysis, &report, &createdAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(analysis), &rec.Analysis); err != nil {
		return Record{}, fmt.Errorf("decode analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(report), &rec.Report); err != nil {
		return Record{}, fmt.Errorf("decode report: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return rec, nil
}
