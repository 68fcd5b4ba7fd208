// Package models defines the core data structures for DialogPipe.
//
// It includes the inbound turn envelope, the outbound response payload, and
// the durable user record with its merge-patch type, which are shared across
// modules.
package models

import (
	"errors"
	"time"
)

// TurnType distinguishes a session-opening turn from an action request.
type TurnType string

const (
	// TurnTypeSessionStart is the first turn of a conversation session.
	TurnTypeSessionStart TurnType = "session_start"
	// TurnTypeActionRequest carries a named action within an open session.
	TurnTypeActionRequest TurnType = "action_request"
)

// Action names a turn's declared intent. The transport classifies the
// utterance; DialogPipe only dispatches on the resulting name.
type Action string

const (
	// ActionRequestIdea asks for a fresh gratitude idea.
	ActionRequestIdea Action = "request_idea"
	// ActionRequestNextIdea asks for another idea after one was presented.
	ActionRequestNextIdea Action = "request_next_idea"
	// ActionAcknowledgeCompletion is the user committing to the idea ("I'll do it").
	ActionAcknowledgeCompletion Action = "acknowledge_completion"
	// ActionFeedbackYes answers the satisfaction survey positively.
	ActionFeedbackYes Action = "feedback_yes"
	// ActionFeedbackNo answers the satisfaction survey negatively.
	ActionFeedbackNo Action = "feedback_no"
	// ActionSetReminder asks for a weekly reminder subscription.
	ActionSetReminder Action = "set_reminder"
	// ActionHelp asks for a capability summary.
	ActionHelp Action = "help"
	// ActionCancel and ActionStop end the session.
	ActionCancel Action = "cancel"
	ActionStop   Action = "stop"
)

// EmailNotGiven is the sentinel stored when no verified profile email is
// available for a user. Matching on it drives the email consent branch.
const EmailNotGiven = "not given"

// PermissionScope names a capability requested through out-of-band consent.
type PermissionScope string

const (
	// ScopeEmailRead allows reading the user's verified profile email.
	ScopeEmailRead PermissionScope = "profile:email:read"
	// ScopeReminderReadWrite allows managing reminder subscriptions.
	ScopeReminderReadWrite PermissionScope = "alerts:reminders:readwrite"
)

// Error variables for better error handling and testability
var (
	ErrMissingUserID    = errors.New("user id cannot be empty")
	ErrMissingSessionID = errors.New("session id cannot be empty")
	ErrInvalidTurnType  = errors.New("invalid turn type")
	ErrMissingAction    = errors.New("action is required for action_request turns")
)

// IsValidTurnType checks if the given turn type is supported.
func IsValidTurnType(tt TurnType) bool {
	switch tt {
	case TurnTypeSessionStart, TurnTypeActionRequest:
		return true
	default:
		return false
	}
}

// Turn is one inbound request: exactly one conversational turn. The
// Attributes bag is the transport's carrier for session state and is
// round-tripped back on the response.
type Turn struct {
	Type         TurnType          `json:"type"`
	Action       Action            `json:"action,omitempty"`
	UserID       string            `json:"user_id"`
	SessionID    string            `json:"session_id"`
	ProfileEmail string            `json:"profile_email,omitempty"` // verified email if the platform granted the scope
	Attributes   map[string]string `json:"attributes,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Validate performs validation on an inbound Turn envelope.
func (t *Turn) Validate() error {
	if t.UserID == "" {
		return ErrMissingUserID
	}
	if t.SessionID == "" {
		return ErrMissingSessionID
	}
	if !IsValidTurnType(t.Type) {
		return ErrInvalidTurnType
	}
	if t.Type == TurnTypeActionRequest && t.Action == "" {
		return ErrMissingAction
	}
	return nil
}

// Card is an optional visual companion to a spoken response.
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ConsentRequest asks the user to grant one or more permission scopes
// through the platform's out-of-band consent mechanism.
type ConsentRequest struct {
	Scopes []PermissionScope `json:"scopes"`
}

// Response is the single outbound payload produced for a turn. Speech may
// embed timing markup (e.g. `<break time="0.05s"/>`) which is opaque to the
// core. Attributes carries the updated session state back to the transport.
type Response struct {
	Speech     string            `json:"speech"`
	Reprompt   string            `json:"reprompt,omitempty"`
	Card       *Card             `json:"card,omitempty"`
	EndSession bool              `json:"end_session"`
	Consent    *ConsentRequest   `json:"consent,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// UserRecord is the durable per-user document. Happy is tri-state: nil means
// no feedback has been given yet. Records are created once and only ever
// patched afterwards; no code path deletes or wholesale-replaces one.
type UserRecord struct {
	UserID       string    `json:"user_id"`
	ProfileEmail string    `json:"profile_email"`
	FirstContact time.Time `json:"first_contact"`
	Happy        *bool     `json:"happy,omitempty"`
	Reminder     bool      `json:"reminder"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRecordPatch is a partial-field update for a UserRecord. Nil fields are
// left untouched by the store; set fields are last-write-wins.
type UserRecordPatch struct {
	ProfileEmail *string `json:"profile_email,omitempty"`
	Happy        *bool   `json:"happy,omitempty"`
	Reminder     *bool   `json:"reminder,omitempty"`
}

// IsZero reports whether the patch would change nothing.
func (p UserRecordPatch) IsZero() bool {
	return p.ProfileEmail == nil && p.Happy == nil && p.Reminder == nil
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse is the standard envelope for non-dialog API endpoints.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
