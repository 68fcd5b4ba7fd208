// Package store provides durable user-profile storage backends for DialogPipe.
//
// It includes an in-memory store for tests and development, plus SQLite and
// PostgreSQL backends. All backends share the same merge-patch discipline:
// records are created once and only ever patched field-by-field afterwards.
package store

import (
	"context"
	"strings"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

// UserProfileStore is the durable key-value store for user records.
type UserProfileStore interface {
	// GetUser retrieves the record for a user. Returns (nil, nil) when no
	// record exists.
	GetUser(ctx context.Context, userID string) (*models.UserRecord, error)

	// CreateUser inserts a record if none exists for its user id. Calling it
	// again for the same user is a no-op, never an error and never a reset
	// of fields another turn has since written.
	CreateUser(ctx context.Context, rec models.UserRecord) error

	// PatchUser applies a partial-field update under last-write-wins
	// semantics. Nil patch fields leave the stored value untouched; the
	// record as a whole is never replaced.
	PatchUser(ctx context.Context, userID string, patch models.UserRecordPatch) error

	// Close releases any underlying resources.
	Close() error
}

// Opts holds configuration options for database-backed stores.
type Opts struct {
	DSN string
}

// Option defines a configuration option for database-backed stores.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType returns "postgres" for PostgreSQL connection strings and
// "sqlite" for anything else (file paths).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}
