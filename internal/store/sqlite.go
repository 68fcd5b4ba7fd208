// Package store provides durable user-profile storage backends for DialogPipe.
//
// This file implements an SQLite-backed user profile store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/BTreeMap/DialogPipe/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	// Run migrations to ensure tables exist
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// GetUser retrieves the record for a user, or (nil, nil) when absent.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	query := `SELECT user_id, profile_email, first_contact, happy, reminder, updated_at
			  FROM user_records WHERE user_id = ?`

	var rec models.UserRecord
	var happy sql.NullBool

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.UserID, &rec.ProfileEmail, &rec.FirstContact, &happy, &rec.Reminder, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore.GetUser: not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore.GetUser failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query user record for %s: %w", userID, err)
	}
	if happy.Valid {
		rec.Happy = &happy.Bool
	}
	slog.Debug("SQLiteStore.GetUser: found", "userID", userID, "reminder", rec.Reminder)
	return &rec, nil
}

// CreateUser inserts the record if absent. Existing records are untouched,
// so repeated session starts can never reset accumulated fields.
func (s *SQLiteStore) CreateUser(ctx context.Context, rec models.UserRecord) error {
	query := `
		INSERT INTO user_records (user_id, profile_email, first_contact, happy, reminder, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`

	var happy interface{}
	if rec.Happy != nil {
		happy = *rec.Happy
	}
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, query, rec.UserID, rec.ProfileEmail, rec.FirstContact, happy, rec.Reminder, updatedAt)
	if err != nil {
		slog.Error("SQLiteStore.CreateUser failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert user record for %s: %w", rec.UserID, err)
	}
	slog.Debug("SQLiteStore.CreateUser succeeded", "userID", rec.UserID)
	return nil
}

// PatchUser applies a partial-field update. Nil patch fields fall through to
// the stored column via COALESCE; first_contact is never rewritten.
func (s *SQLiteStore) PatchUser(ctx context.Context, userID string, patch models.UserRecordPatch) error {
	query := `
		INSERT INTO user_records (user_id, profile_email, first_contact, happy, reminder, updated_at)
		VALUES (?1, COALESCE(?2, 'not given'), ?5, ?3, COALESCE(?4, 0), ?5)
		ON CONFLICT(user_id) DO UPDATE SET
			profile_email = COALESCE(?2, profile_email),
			happy         = COALESCE(?3, happy),
			reminder      = COALESCE(?4, reminder),
			updated_at    = ?5`

	var email, happy, reminder interface{}
	if patch.ProfileEmail != nil {
		email = *patch.ProfileEmail
	}
	if patch.Happy != nil {
		happy = *patch.Happy
	}
	if patch.Reminder != nil {
		reminder = *patch.Reminder
	}

	_, err := s.db.ExecContext(ctx, query, userID, email, happy, reminder, time.Now())
	if err != nil {
		slog.Error("SQLiteStore.PatchUser failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to patch user record for %s: %w", userID, err)
	}
	slog.Debug("SQLiteStore.PatchUser succeeded", "userID", userID,
		"email_set", patch.ProfileEmail != nil, "happy_set", patch.Happy != nil, "reminder_set", patch.Reminder != nil)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
