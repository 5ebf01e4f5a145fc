// Package lexstore persists lexicon entries in SQLite, so words
// synthesised while realising survive a restart.
package lexstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cours-de-latin/nlg"

	_ "modernc.org/sqlite"
)

// Store is a SQLite table of lexicon entries keyed by id. It is safe for
// concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the store at path. ":memory:" gives a
// private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS words (
		id TEXT PRIMARY KEY,
		language TEXT NOT NULL,
		base TEXT NOT NULL,
		category TEXT NOT NULL,
		features TEXT NOT NULL DEFAULT '{}',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_words_language ON words(language);
	CREATE INDEX IF NOT EXISTS idx_words_base ON words(language, base)
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const upsertWord = `INSERT INTO words (id, language, base, category, features, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		language = excluded.language,
		base = excluded.base,
		category = excluded.category,
		features = excluded.features,
		updated_at = excluded.updated_at`

// Put inserts or replaces one entry of a lexicon in lang.
func (s *Store) Put(ctx context.Context, lang nlg.Language, w *nlg.WordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	features, err := json.Marshal(w.Features())
	if err != nil {
		return fmt.Errorf("encode %s: %w", w.ID, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertWord,
		w.ID, string(lang), w.BaseForm, string(w.Category), string(features), time.Now().UTC()); err != nil {
		return fmt.Errorf("put %s: %w", w.ID, err)
	}
	return nil
}

// Save writes every entry of lex in one transaction and returns how many
// were written. Entries already stored under the same id are replaced.
func (s *Store) Save(ctx context.Context, lex *nlg.Lexicon) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, upsertWord)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	lang := string(lex.Language())
	entries := lex.Entries()
	for _, w := range entries {
		features, err := json.Marshal(w.Features())
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("encode %s: %w", w.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, w.ID, lang, w.BaseForm, string(w.Category), string(features), now); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("save %s: %w", w.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Load registers the stored entries of lex's language into lex, in the
// order they were first stored. Ids lex already holds are skipped, so a
// store can be layered over a bundled lexicon. It returns the number of
// entries added.
func (s *Store) Load(ctx context.Context, lex *nlg.Lexicon) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, base, category, features FROM words WHERE language = ? ORDER BY rowid",
		string(lex.Language()))
	if err != nil {
		return 0, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var id, base, category, raw string
		if err := rows.Scan(&id, &base, &category, &raw); err != nil {
			return n, err
		}
		if lex.ByID(id) != nil {
			continue
		}
		features, err := decodeFeatures(raw)
		if err != nil {
			return n, fmt.Errorf("decode %s: %w", id, err)
		}
		if err := lex.Register(nlg.NewWordEntry(id, base, nlg.Category(category), features)); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}

// Count returns the number of stored entries for lang.
func (s *Store) Count(ctx context.Context, lang nlg.Language) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words WHERE language = ?", string(lang)).Scan(&n)
	return n, err
}

// Delete removes the entry stored under id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// decodeFeatures turns the stored JSON object back into features. JSON
// arrays come back as []any and are narrowed to []string.
func decodeFeatures(raw string) (nlg.Features, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	fs := make(nlg.Features, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case string, bool:
			fs.Set(nlg.Feature(k), x)
		case []any:
			list := make([]string, 0, len(x))
			for _, item := range x {
				if s, ok := item.(string); ok {
					list = append(list, s)
				}
			}
			fs.Set(nlg.Feature(k), list)
		default:
			return nil, fmt.Errorf("feature %s: unsupported value %v", k, v)
		}
	}
	return fs, nil
}
