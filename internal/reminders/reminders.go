// Package reminders abstracts the external reminder subscription service.
//
// DialogPipe never schedules anything itself: it queries for an existing
// weekly subscription and asks the service to create one. Authorization
// failures are surfaced distinctly because they trigger an out-of-band
// consent request rather than an apology.
package reminders

import (
	"context"
	"errors"
)

// Error variables for better error handling and testability
var (
	// ErrUnauthorized indicates the user has not granted the reminder
	// scheduling permission scope.
	ErrUnauthorized = errors.New("reminder service: not authorized")
)

// Schedule describes a weekly reminder subscription request.
type Schedule struct {
	// DayCode is the two-letter recurrence code for the weekday, e.g. "MO".
	DayCode string `json:"day_code"`
	// TimeOfDay is the local wall-clock trigger time in HH:MM format.
	TimeOfDay string `json:"time_of_day"`
	// Message is the reminder text spoken when the subscription fires.
	Message string `json:"message"`
}

// Gateway is the boundary to the external reminder subscription service.
type Gateway interface {
	// Query returns the recurrence day code of the user's existing
	// subscription, or found=false when none exists.
	Query(ctx context.Context, userID string) (dayCode string, found bool, err error)

	// Create registers a new weekly subscription. Returns ErrUnauthorized
	// when the user has not granted the scheduling scope; any other error
	// is a transient service failure.
	Create(ctx context.Context, userID string, sched Schedule) error
}

// NoopGateway stands in when no reminder service is configured. Queries find
// nothing and creation fails, so reminder requests get the failure apology
// instead of a consent prompt.
type NoopGateway struct{}

// Query always reports that no subscription exists.
func (NoopGateway) Query(ctx context.Context, userID string) (string, bool, error) {
	return "", false, nil
}

// Create always fails because there is no service to create against.
func (NoopGateway) Create(ctx context.Context, userID string, sched Schedule) error {
	return errors.New("reminder service: not configured")
}
