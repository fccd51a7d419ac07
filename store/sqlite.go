package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteClient stores key-value records in a single SQLite table.
type SQLiteClient struct {
	db *sql.DB
}

var _ Store = (*SQLiteClient)(nil)

// NewSQLiteClient opens (or creates) the SQLite database at dbPath.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

func (s *SQLiteClient) Get(key string) (string, bool, error) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, wrap("get", key, err)
	}

	return value, true, nil
}

func (s *SQLiteClient) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)

	return wrap("set", key, err)
}

func (s *SQLiteClient) RemoveMany(keys ...string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrap("remove", "", err)
	}

	for _, k := range keys {
		if _, err = tx.Exec(`DELETE FROM kv WHERE key = ?`, k); err != nil {
			_ = tx.Rollback()
			return wrap("remove", k, err)
		}
	}

	return wrap("remove", "", tx.Commit())
}

// Close closes the database.
func (s *SQLiteClient) Close() error {
	return s.db.Close()
}
