package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"knowbase-core/utils"
)

// SQLiteStore is a Store backed by a single-table SQLite database. It holds
// the page-context storage scope.
type SQLiteStore struct {
	conn   *sql.DB
	logger *utils.Logger
}

// NewSQLiteStore opens (or creates) the database at dbPath
func NewSQLiteStore(dbPath string, logger *utils.Logger) (*SQLiteStore, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	s := &SQLiteStore{conn: conn, logger: logger}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate creates the settings table
func (s *SQLiteStore) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Get returns the value stored under key
func (s *SQLiteStore) Get(key string) (string, bool) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.logger.Warn("Failed to read key %q: %v", key, err)
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value
func (s *SQLiteStore) Set(key, value string) {
	_, err := s.conn.Exec(
		"INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP",
		key, value,
	)
	if err != nil {
		s.logger.Warn("Failed to write key %q: %v", key, err)
	}
}

// Remove deletes key
func (s *SQLiteStore) Remove(key string) {
	if _, err := s.conn.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		s.logger.Warn("Failed to remove key %q: %v", key, err)
	}
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
