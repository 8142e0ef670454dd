package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const createItemsSQL = `
CREATE TABLE IF NOT EXISTS items (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

type sqliteStore struct {
	sqlDB *sql.DB
}

//NewSQLite returns a Store backed by the SQLite database at the given file path
func NewSQLite(path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &Error{Description: "SQLite path is required"}
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &Error{Err: err, Description: "Couldn't open sqlite database"}
	}

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &Error{Err: err, Description: "Couldn't ping sqlite database"}
	}

	if _, err = sqlDB.Exec(createItemsSQL); err != nil {
		_ = sqlDB.Close()
		return nil, &Error{Err: err, Description: "Couldn't create items table"}
	}

	return &sqliteStore{sqlDB: sqlDB}, nil
}

func (s *sqliteStore) GetItem(key string) (string, bool, error) {
	var value string
	err := s.sqlDB.QueryRow("SELECT value FROM items WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Err: err, Description: fmt.Sprintf("Couldn't read item(%s)", key)}
	}
	return value, true, nil
}

func (s *sqliteStore) SetItem(key, value string) error {
	_, err := s.sqlDB.Exec(
		"INSERT INTO items (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &Error{Err: err, Description: fmt.Sprintf("Couldn't write item(%s)", key)}
	}
	return nil
}

func (s *sqliteStore) RemoveItem(key string) error {
	if _, err := s.sqlDB.Exec("DELETE FROM items WHERE key = ?", key); err != nil {
		return &Error{Err: err, Description: fmt.Sprintf("Couldn't remove item(%s)", key)}
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.sqlDB.Close()
}
