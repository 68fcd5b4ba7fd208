// Package store provides durable user-profile storage backends for DialogPipe.
//
// This file implements a PostgreSQL-backed user profile store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/BTreeMap/DialogPipe/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	// Run migrations to ensure the user_records table exists
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// GetUser retrieves the record for a user, or (nil, nil) when absent.
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	query := `SELECT user_id, profile_email, first_contact, happy, reminder, updated_at
			  FROM user_records WHERE user_id = $1`

	var rec models.UserRecord
	var happy sql.NullBool

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.UserID, &rec.ProfileEmail, &rec.FirstContact, &happy, &rec.Reminder, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore.GetUser: not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore.GetUser failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query user record for %s: %w", userID, err)
	}
	if happy.Valid {
		rec.Happy = &happy.Bool
	}
	slog.Debug("PostgresStore.GetUser: found", "userID", userID, "reminder", rec.Reminder)
	return &rec, nil
}

// CreateUser inserts the record if absent. Existing records are untouched.
func (s *PostgresStore) CreateUser(ctx context.Context, rec models.UserRecord) error {
	query := `
		INSERT INTO user_records (user_id, profile_email, first_contact, happy, reminder, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING`

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
		slog.Error("PostgresStore.CreateUser failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert user record for %s: %w", rec.UserID, err)
	}
	slog.Debug("PostgresStore.CreateUser succeeded", "userID", rec.UserID)
	return nil
}

// PatchUser applies a partial-field update. Nil patch fields fall through to
// the stored column via COALESCE; first_contact is never rewritten.
func (s *PostgresStore) PatchUser(ctx context.Context, userID string, patch models.UserRecordPatch) error {
	query := `
		INSERT INTO user_records (user_id, profile_email, first_contact, happy, reminder, updated_at)
		VALUES ($1, COALESCE($2, 'not given'), $5, $3, COALESCE($4, FALSE), $5)
		ON CONFLICT (user_id) DO UPDATE SET
			profile_email = COALESCE($2, user_records.profile_email),
			happy         = COALESCE($3, user_records.happy),
			reminder      = COALESCE($4, user_records.reminder),
			updated_at    = $5`

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
		slog.Error("PostgresStore.PatchUser failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to patch user record for %s: %w", userID, err)
	}
	slog.Debug("PostgresStore.PatchUser succeeded", "userID", userID,
		"email_set", patch.ProfileEmail != nil, "happy_set", patch.Happy != nil, "reminder_set", patch.Reminder != nil)
	return nil
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close Postgres database", "error", err)
	}
	return err
}
