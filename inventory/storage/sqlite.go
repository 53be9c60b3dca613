package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SQLite implements KV on a SQLite database using the pure Go driver
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
	closed atomic.Bool
}

// NewSQLite opens (creating if needed) the database at path
func NewSQLite(path string, opts ...Option) (*SQLite, error) {
	o := buildOptions(opts)

	if dir := filepath.Dir(path); dir != "." {
		if err := o.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps the pragmas below in effect for every statement
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		sqliteSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize sqlite database: %w", err)
		}
	}

	return &SQLite{
		db:     db,
		logger: o.logger.With(zap.String("backend", string(BackendSQLite)), zap.String("path", path)),
	}, nil
}

// Get implements KV.Get
func (s *SQLite) Get(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("kv get", zap.String("key", key), zap.Bool("found", false))
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	s.logger.Debug("kv get", zap.String("key", key), zap.Bool("found", true))
	return value, true, nil
}

// Set implements KV.Set
func (s *SQLite) Set(key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.logger.Debug("kv set", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Close implements KV.Close
func (s *SQLite) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
