package storage

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS user_triggers (
	user_id TEXT PRIMARY KEY,
	default_trigger TEXT CHECK (default_trigger IS NULL OR length(default_trigger) < 255)
);
CREATE TABLE IF NOT EXISTS impersonation_history (
	user_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, message_id)
);`

// SQLiteStore keeps the same tables as the first generation of the bot, so an
// existing database can be reused as is.
type SQLiteStore struct {
	sqlDB *sql.DB
	log   *slog.Logger
	now   func() time.Time
}

// OpenSQLiteStore opens the database at path and creates missing tables.
// ":memory:" is accepted for tests.
func OpenSQLiteStore(path string, log *slog.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := ":memory:"
	if path != dsn {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug("SQLite store ready", "path", path)
	return &SQLiteStore{sqlDB: sqlDB, log: log, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) GetDefaultSelector(ctx context.Context, userID string) (*string, error) {
	var selector sql.NullString
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT default_trigger FROM user_triggers WHERE user_id = ?`, userID).Scan(&selector)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading default selector: %w", err)
	}
	if !selector.Valid {
		return nil, nil
	}
	return &selector.String, nil
}

func (s *SQLiteStore) SetDefaultSelector(ctx context.Context, userID, selector string) error {
	if err := checkSelector(selector); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO user_triggers (user_id, default_trigger) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET default_trigger = excluded.default_trigger`,
		userID, selector)
	if err != nil {
		return fmt.Errorf("storing default selector: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UnsetDefaultSelector(ctx context.Context, userID string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO user_triggers (user_id, default_trigger) VALUES (?, NULL)
		 ON CONFLICT(user_id) DO UPDATE SET default_trigger = NULL`,
		userID)
	if err != nil {
		return fmt.Errorf("removing default selector: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordProvenance(ctx context.Context, userID, messageID string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO impersonation_history (user_id, message_id, created_at) VALUES (?, ?, ?)`,
		userID, messageID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("recording provenance: %w", err)
	}
	return nil
}

func (s *SQLiteStore) HasProvenance(ctx context.Context, userID, messageID string) (bool, error) {
	var one int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT 1 FROM impersonation_history WHERE user_id = ? AND message_id = ?`,
		userID, messageID).Scan(&one)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading provenance: %w", err)
	}
	return true, nil
}
