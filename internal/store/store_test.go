package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// runStoreContract exercises the UserProfileStore semantics every backend
// must honor: idempotent creation, field merging, last-write-wins.
func runStoreContract(t *testing.T, s UserProfileStore) {
	ctx := context.Background()

	rec, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser on empty store: %v", err)
	}
	if rec != nil {
		t.Fatal("expected (nil, nil) for unknown user")
	}

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err = s.CreateUser(ctx, models.UserRecord{
		UserID:       "u1",
		ProfileEmail: models.EmailNotGiven,
		FirstContact: first,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Accumulate a field, then re-create: the second create must not reset it.
	if err := s.PatchUser(ctx, "u1", models.UserRecordPatch{Reminder: boolPtr(true)}); err != nil {
		t.Fatalf("PatchUser reminder: %v", err)
	}
	err = s.CreateUser(ctx, models.UserRecord{
		UserID:       "u1",
		ProfileEmail: models.EmailNotGiven,
		FirstContact: time.Now(),
	})
	if err != nil {
		t.Fatalf("second CreateUser: %v", err)
	}
	rec, err = s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if rec == nil {
		t.Fatal("record missing after create")
	}
	if !rec.Reminder {
		t.Error("second CreateUser reverted reminder to false")
	}
	if !rec.FirstContact.Equal(first) {
		t.Errorf("second CreateUser rewrote first_contact: got %v, want %v", rec.FirstContact, first)
	}
	if rec.Happy != nil {
		t.Error("happy should start unset")
	}

	// Patching one field must not clobber the others.
	if err := s.PatchUser(ctx, "u1", models.UserRecordPatch{Happy: boolPtr(false)}); err != nil {
		t.Fatalf("PatchUser happy=false: %v", err)
	}
	if err := s.PatchUser(ctx, "u1", models.UserRecordPatch{Happy: boolPtr(true)}); err != nil {
		t.Fatalf("PatchUser happy=true: %v", err)
	}
	rec, _ = s.GetUser(ctx, "u1")
	if rec.Happy == nil || !*rec.Happy {
		t.Error("happy should be true after last write")
	}
	if !rec.Reminder {
		t.Error("happy patch clobbered reminder")
	}
	if rec.ProfileEmail != models.EmailNotGiven {
		t.Errorf("happy patch clobbered profile_email: %q", rec.ProfileEmail)
	}

	// Email backfill.
	if err := s.PatchUser(ctx, "u1", models.UserRecordPatch{ProfileEmail: strPtr("pat@example.com")}); err != nil {
		t.Fatalf("PatchUser email: %v", err)
	}
	rec, _ = s.GetUser(ctx, "u1")
	if rec.ProfileEmail != "pat@example.com" {
		t.Errorf("email not backfilled: %q", rec.ProfileEmail)
	}
	if rec.Happy == nil || !*rec.Happy || !rec.Reminder {
		t.Error("email patch clobbered happy or reminder")
	}
}

func TestInMemoryStoreContract(t *testing.T) {
	runStoreContract(t, NewInMemoryStore())
}

func TestSQLiteStoreContract(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "dialogpipe_test.db")
	s, err := NewSQLiteStore(WithDSN(dsn))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	runStoreContract(t, s)
}

func TestSQLiteStorePatchCreatesRecord(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "dialogpipe_test.db")
	s, err := NewSQLiteStore(WithDSN(dsn))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.PatchUser(ctx, "ghost", models.UserRecordPatch{Happy: boolPtr(true)}); err != nil {
		t.Fatalf("PatchUser on missing record: %v", err)
	}
	rec, err := s.GetUser(ctx, "ghost")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if rec == nil {
		t.Fatal("patch should upsert a record")
	}
	if rec.ProfileEmail != models.EmailNotGiven {
		t.Errorf("upserted record should default email to sentinel, got %q", rec.ProfileEmail)
	}
	if rec.Happy == nil || !*rec.Happy {
		t.Error("patched field missing on upserted record")
	}
}

func TestPostgresStoreContract(t *testing.T) {
	// This test requires a running PostgreSQL instance.
	// Set the DATABASE_URL environment variable for the connection string.
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL not set")
	}
	s, err := NewPostgresStore(WithDSN(connStr))
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer s.Close()
	s.db.Exec("DELETE FROM user_records")
	runStoreContract(t, s)
}
