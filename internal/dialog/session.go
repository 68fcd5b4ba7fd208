// Package dialog implements the turn dispatch and state consistency core of
// DialogPipe: the session phase machine, the intent handlers, and the
// response composer.
package dialog

import "log/slog"

// Phase is the session's position in the idea/feedback flow. It is carried
// in the transport's round-tripped attribute bag, so it survives between
// turns of one session and dies with the session.
type Phase string

const (
	// PhaseIdle is the implicit phase of a fresh session.
	PhaseIdle Phase = ""
	// PhaseIdeaPresented means the most recent content was a gratitude idea.
	PhaseIdeaPresented Phase = "idea_presented"
	// PhaseAwaitingFeedback means the satisfaction survey was just asked.
	PhaseAwaitingFeedback Phase = "awaiting_feedback"
)

// phaseAttributeKey is the bag key the phase round-trips under.
const phaseAttributeKey = "dialog_phase"

// Session wraps one turn's attribute bag. Phases are sticky: nothing clears
// them automatically between turns, handlers overwrite them only where the
// flow calls for it.
type Session struct {
	attrs map[string]string
}

// NewSession builds a session view over an inbound attribute bag. The bag is
// copied so the caller's map is never mutated.
func NewSession(attrs map[string]string) *Session {
	s := &Session{attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		s.attrs[k] = v
	}
	return s
}

// Phase returns the current session phase. Unknown values are treated as
// idle so a corrupted bag degrades to the strictest preconditions.
func (s *Session) Phase() Phase {
	switch p := Phase(s.attrs[phaseAttributeKey]); p {
	case PhaseIdle, PhaseIdeaPresented, PhaseAwaitingFeedback:
		return p
	default:
		slog.Warn("Session.Phase: unknown phase in attribute bag, treating as idle", "phase", s.attrs[phaseAttributeKey])
		return PhaseIdle
	}
}

// SetPhase overwrites the session phase for subsequent turns.
func (s *Session) SetPhase(p Phase) {
	if p == PhaseIdle {
		delete(s.attrs, phaseAttributeKey)
		return
	}
	s.attrs[phaseAttributeKey] = p.String()
}

// Attributes returns the bag to round-trip back on the response.
func (s *Session) Attributes() map[string]string {
	if len(s.attrs) == 0 {
		return nil
	}
	return s.attrs
}

func (p Phase) String() string { return string(p) }
