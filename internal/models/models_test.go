package models

import (
	"testing"
	"time"
)

func TestTurnValidate(t *testing.T) {
	base := Turn{
		Type:      TurnTypeActionRequest,
		Action:    ActionRequestIdea,
		UserID:    "u1",
		SessionID: "s1",
		Timestamp: time.Now(),
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("valid turn rejected: %v", err)
	}

	missingUser := base
	missingUser.UserID = ""
	if err := missingUser.Validate(); err != ErrMissingUserID {
		t.Errorf("expected ErrMissingUserID, got %v", err)
	}

	missingSession := base
	missingSession.SessionID = ""
	if err := missingSession.Validate(); err != ErrMissingSessionID {
		t.Errorf("expected ErrMissingSessionID, got %v", err)
	}

	badType := base
	badType.Type = "banana"
	if err := badType.Validate(); err != ErrInvalidTurnType {
		t.Errorf("expected ErrInvalidTurnType, got %v", err)
	}

	missingAction := base
	missingAction.Action = ""
	if err := missingAction.Validate(); err != ErrMissingAction {
		t.Errorf("expected ErrMissingAction, got %v", err)
	}

	launch := base
	launch.Type = TurnTypeSessionStart
	launch.Action = ""
	if err := launch.Validate(); err != nil {
		t.Errorf("session_start without action should be valid, got %v", err)
	}
}

func TestUserRecordPatchIsZero(t *testing.T) {
	if !(UserRecordPatch{}).IsZero() {
		t.Error("empty patch should be zero")
	}
	happy := true
	if (UserRecordPatch{Happy: &happy}).IsZero() {
		t.Error("patch with happy set should not be zero")
	}
}
