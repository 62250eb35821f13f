// Package store keeps a SQLite translation memory so repeated requests skip
// the engine. Entries are keyed by the NFC form of the source text and the
// translator mode that produced them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("translation memory entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS translation_memory (
	id TEXT PRIMARY KEY,
	source_text TEXT NOT NULL,
	mode TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	usage_count INTEGER NOT NULL DEFAULT 1,
	invalidated BOOLEAN NOT NULL DEFAULT FALSE,
	last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(source_text, mode)
);
CREATE INDEX IF NOT EXISTS idx_memory_last_used ON translation_memory(last_used);
`

const (
	// a hit is counted in the same statement that reads it
	hitQuery = `UPDATE translation_memory
		SET usage_count = usage_count + 1, last_used = ?
		WHERE source_text = ? AND mode = ? AND NOT invalidated
		RETURNING translated_text`

	// storing again revalidates the entry and keeps its id
	putQuery = `INSERT INTO translation_memory
		(id, source_text, mode, translated_text, last_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_text, mode) DO UPDATE SET
			translated_text = excluded.translated_text,
			invalidated = FALSE,
			usage_count = usage_count + 1,
			last_used = excluded.last_used`

	listQuery = `SELECT id, source_text, mode, translated_text, usage_count, invalidated, last_used
		FROM translation_memory ORDER BY last_used DESC, created_at DESC`

	statsQuery = `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN invalidated THEN 0 ELSE 1 END), 0),
		COALESCE(SUM(CASE WHEN invalidated THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(usage_count), 0)
		FROM translation_memory`
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens or creates the memory at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one engine session feeds one writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Get returns the stored translation of sourceText for mode. Invalidated
// entries are misses.
func (s *Store) Get(ctx context.Context, sourceText, mode string) (string, bool, error) {
	var translated string
	err := s.db.QueryRowContext(ctx, hitQuery, s.now(), normalizeText(sourceText), mode).Scan(&translated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return translated, true, nil
}

// Put records translated as the translation of sourceText for mode.
func (s *Store) Put(ctx context.Context, sourceText, mode, translated string) error {
	now := s.now()
	_, err := s.db.ExecContext(ctx, putQuery,
		uuid.NewString(), normalizeText(sourceText), mode, translated, now, now)
	return err
}

type MemoryEntry struct {
	ID             string
	SourceText     string
	Mode           string
	TranslatedText string
	UsageCount     int
	Invalidated    bool
	LastUsed       time.Time
}

type CacheStats struct {
	TotalEntries   int
	ActiveEntries  int
	InvalidEntries int
	// TotalUsage counts stores and hits over all entries.
	TotalUsage int
}

// InvalidateMemory keeps the entry but stops Get from returning it until the
// same text is stored again.
func (s *Store) InvalidateMemory(ctx context.Context, id string) error {
	return s.execOne(ctx, `UPDATE translation_memory SET invalidated = TRUE WHERE id = ?`, id)
}

// DeleteMemory removes an entry for good.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM translation_memory WHERE id = ?`, id)
}

// ClearMemory removes every entry and reports how many there were.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.Mode, &e.TranslatedText, &e.UsageCount, &e.Invalidated, &e.LastUsed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	var st CacheStats
	err := s.db.QueryRowContext(ctx, statsQuery).
		Scan(&st.TotalEntries, &st.ActiveEntries, &st.InvalidEntries, &st.TotalUsage)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// execOne runs a statement that must touch exactly one entry.
func (s *Store) execOne(ctx context.Context, query, id string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// normalizeText gives NFC-equivalent inputs the same key. Whitespace is
// significant to the engine and is kept.
func normalizeText(text string) string {
	return norm.NFC.String(text)
}
