package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

// InMemoryStore is a simple in-memory user profile store for tests and
// development. Safe for concurrent use.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.UserRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]models.UserRecord)}
}

// GetUser retrieves the record for a user, or (nil, nil) when absent.
func (s *InMemoryStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate stored state through the pointer.
	out := rec
	if rec.Happy != nil {
		h := *rec.Happy
		out.Happy = &h
	}
	return &out, nil
}

// CreateUser inserts the record if absent. Existing records are untouched.
func (s *InMemoryStore) CreateUser(ctx context.Context, rec models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.UserID]; ok {
		slog.Debug("InMemoryStore.CreateUser: record already exists", "userID", rec.UserID)
		return nil
	}
	s.records[rec.UserID] = rec
	slog.Debug("InMemoryStore.CreateUser: record created", "userID", rec.UserID)
	return nil
}

// PatchUser merges the patch into the stored record, creating a minimal
// record first if none exists.
func (s *InMemoryStore) PatchUser(ctx context.Context, userID string, patch models.UserRecordPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec, ok := s.records[userID]
	if !ok {
		rec = models.UserRecord{
			UserID:       userID,
			ProfileEmail: models.EmailNotGiven,
			FirstContact: now,
		}
	}
	if patch.ProfileEmail != nil {
		rec.ProfileEmail = *patch.ProfileEmail
	}
	if patch.Happy != nil {
		h := *patch.Happy
		rec.Happy = &h
	}
	if patch.Reminder != nil {
		rec.Reminder = *patch.Reminder
	}
	rec.UpdatedAt = now
	s.records[userID] = rec
	slog.Debug("InMemoryStore.PatchUser: patch applied", "userID", userID,
		"email_set", patch.ProfileEmail != nil, "happy_set", patch.Happy != nil, "reminder_set", patch.Reminder != nil)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
