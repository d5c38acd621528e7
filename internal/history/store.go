// Package history keeps an opt-in journal of completed requests. Entries are
// written after a cycle finishes and are never fed back into a later prompt.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Entry struct {
	ID          string
	Mode        string
	Option      string
	SourceText  string
	Output      string
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	LatencyMs   int64
	CreatedAt   time.Time
}

type Stats struct {
	Total        int
	Translations int
	Enhancements int
}

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the journal at dbPath.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; the shell never runs two cycles at once anyway
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		option TEXT NOT NULL,
		source_text TEXT NOT NULL,
		search_key TEXT NOT NULL,
		output TEXT NOT NULL,
		provider TEXT,
		model TEXT,
		temperature REAL NOT NULL,
		max_tokens INTEGER NOT NULL,
		latency_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_requests_created ON requests(created_at);
	CREATE INDEX IF NOT EXISTS idx_requests_mode ON requests(mode);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save stores e, assigning an ID and timestamp when they are missing.
func (s *Store) Save(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (id, mode, option, source_text, search_key, output, provider, model, temperature, max_tokens, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Mode, e.Option, e.SourceText, searchKey(e.SourceText), e.Output, e.Provider, e.Model, e.Temperature, e.MaxTokens, e.LatencyMs, e.CreatedAt)
	return err
}

// List returns the newest entries first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, mode, option, source_text, output, provider, model, temperature, max_tokens, latency_ms, created_at FROM requests ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// Search returns entries whose source text contains term, compared after
// NFC normalization and case folding.
func (s *Store) Search(ctx context.Context, term string) ([]Entry, error) {
	return s.query(ctx,
		`SELECT id, mode, option, source_text, output, provider, model, temperature, max_tokens, latency_ms, created_at FROM requests WHERE instr(search_key, ?) > 0 ORDER BY created_at DESC`,
		searchKey(term))
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			e        Entry
			provider sql.NullString
			model    sql.NullString
			latency  sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Mode, &e.Option, &e.SourceText, &e.Output, &provider, &model, &e.Temperature, &e.MaxTokens, &latency, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Provider = provider.String
		e.Model = model.String
		e.LatencyMs = latency.Int64
		results = append(results, e)
	}

	return results, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s not found", id)
	}
	return nil
}

// Clear removes all entries and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM requests`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN mode = 'translation' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN mode = 'enhancement' THEN 1 ELSE 0 END), 0)
		FROM requests`).Scan(&stats.Total, &stats.Translations, &stats.Enhancements)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func searchKey(text string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(text)))
}
