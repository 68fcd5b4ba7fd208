package dialog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BTreeMap/DialogPipe/internal/models"
	"github.com/BTreeMap/DialogPipe/internal/reminders"
	"github.com/BTreeMap/DialogPipe/internal/store"
)

// Request carries one inbound turn plus its session view through a handler.
type Request struct {
	Turn    models.Turn
	Session *Session
}

// Handler pairs a pure routing predicate with the action it executes. The
// predicate must not have side effects; all state changes happen in Handle.
type Handler struct {
	Name      string
	CanHandle func(turn models.Turn) bool
	Handle    func(ctx context.Context, req *Request) (models.Response, error)
}

// Engine routes turns to handlers and guarantees every turn produces a
// valid response: precondition violations are answered by the handlers
// themselves, and anything unrecovered is converted to the generic apology
// at this boundary.
type Engine struct {
	users    store.UserProfileStore
	gateway  reminders.Gateway
	handlers []Handler
}

// NewEngine creates the dialog engine with its handlers in priority order.
// The first handler whose predicate matches the turn wins.
func NewEngine(users store.UserProfileStore, gateway reminders.Gateway) *Engine {
	e := &Engine{users: users, gateway: gateway}
	e.handlers = []Handler{
		e.launchHandler(),
		e.ideaHandler(),
		e.nextIdeaHandler(),
		e.completionHandler(),
		e.feedbackHandler("feedback_yes", models.ActionFeedbackYes, true),
		e.feedbackHandler("feedback_no", models.ActionFeedbackNo, false),
		e.reminderHandler(),
		e.helpHandler(),
		e.stopHandler(),
	}
	return e
}

// HandleTurn processes one turn end to end. It never returns an error:
// failures resolve to the generic apology response so the transport always
// has something intelligible to say.
func (e *Engine) HandleTurn(ctx context.Context, turn models.Turn) models.Response {
	sess := NewSession(turn.Attributes)

	if err := turn.Validate(); err != nil {
		slog.Warn("Engine.HandleTurn: invalid turn", "error", err, "userID", turn.UserID, "sessionID", turn.SessionID)
		return e.errorResponse(sess)
	}

	req := &Request{Turn: turn, Session: sess}
	resp, err := e.dispatch(ctx, req)
	if err != nil {
		slog.Error("Engine.HandleTurn: handler failed", "error", err, "type", turn.Type, "action", turn.Action, "userID", turn.UserID)
		return e.errorResponse(sess)
	}
	slog.Info("Engine.HandleTurn: turn handled", "type", turn.Type, "action", turn.Action,
		"userID", turn.UserID, "sessionID", turn.SessionID, "end_session", resp.EndSession)
	return resp
}

// dispatch selects the first matching handler and runs it, recovering any
// panic into an ordinary error for HandleTurn to resolve.
func (e *Engine) dispatch(ctx context.Context, req *Request) (resp models.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	for _, h := range e.handlers {
		if h.CanHandle(req.Turn) {
			slog.Debug("Engine.dispatch: handler selected", "handler", h.Name, "userID", req.Turn.UserID)
			return h.Handle(ctx, req)
		}
	}

	slog.Warn("Engine.dispatch: no handler matched", "type", req.Turn.Type, "action", req.Turn.Action)
	return e.errorResponse(req.Session), nil
}

// errorResponse is the terminal fallback. It must not itself fail, so it
// bypasses Build validation if the composer ever rejects it.
func (e *Engine) errorResponse(sess *Session) models.Response {
	resp, err := NewComposer().
		Speak(msgError).
		Reprompt(msgErrorReprompt).
		EndSession(false).
		WithAttributes(sess.Attributes()).
		Build()
	if err != nil {
		slog.Error("Engine.errorResponse: composer rejected fallback response", "error", err)
		return models.Response{Speech: msgError, Attributes: sess.Attributes()}
	}
	return resp
}

// actionPredicate builds a pure predicate matching one action name.
func actionPredicate(action models.Action) func(models.Turn) bool {
	return func(t models.Turn) bool {
		return t.Type == models.TurnTypeActionRequest && t.Action == action
	}
}
