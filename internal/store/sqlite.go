package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createAttributesTable = `
CREATE TABLE IF NOT EXISTS attributes (
	user_id    TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteStore implements Store on a local SQLite database. Attributes are
// kept as one JSON payload per user so the schema never constrains what
// handlers persist.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the attribute database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open attribute database: %w", err)
	}

	if _, err := db.Exec(createAttributesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create attributes table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (map[string]any, error) {
	var payload string
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM attributes WHERE user_id = ?`, userID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read attributes: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal([]byte(payload), &attrs); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	return attrs, nil
}

func (s *SQLiteStore) Put(ctx context.Context, userID string, attrs map[string]any) error {
	payload, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attributes (user_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		userID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write attributes: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
