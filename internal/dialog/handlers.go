package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BTreeMap/DialogPipe/internal/content"
	"github.com/BTreeMap/DialogPipe/internal/models"
	"github.com/BTreeMap/DialogPipe/internal/reminders"
	"github.com/BTreeMap/DialogPipe/internal/util"
)

// launchHandler greets the user and reconciles the durable record with
// whatever the platform knows at session start. It never touches the
// session phase: launching mid-flow leaves the flow where it was.
func (e *Engine) launchHandler() Handler {
	return Handler{
		Name: "launch",
		CanHandle: func(t models.Turn) bool {
			return t.Type == models.TurnTypeSessionStart
		},
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			profileEmail := req.Turn.ProfileEmail
			if profileEmail == "" {
				slog.Debug("launch: no verified email supplied with turn", "userID", req.Turn.UserID)
				profileEmail = models.EmailNotGiven
			}

			rec, err := e.users.GetUser(ctx, req.Turn.UserID)
			if err != nil {
				return models.Response{}, fmt.Errorf("launch lookup failed: %w", err)
			}

			if rec == nil {
				err := e.users.CreateUser(ctx, models.UserRecord{
					UserID:       req.Turn.UserID,
					ProfileEmail: profileEmail,
					FirstContact: req.Turn.Timestamp,
				})
				if err != nil {
					return models.Response{}, fmt.Errorf("launch create failed: %w", err)
				}
				slog.Info("launch: first contact", "userID", req.Turn.UserID)
				return NewComposer().
					Speak(msgFirstWelcome).
					Reprompt(msgLaunchReprompt).
					WithCard("Welcome to "+AppName+"!", `To get started, say: "Give me an idea."`).
					EndSession(false).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			speech := msgRepeatWelcome
			reprompt := msgLaunchReprompt
			cardContent := `Friendly reminder: To bring a little gratitude into your day, say, "Give me an idea."`
			if !rec.Reminder {
				speech = msgRepeatWelcomeReminder
				reprompt = msgLaunchRepromptReminder
				cardContent = `You can also set a weekly gratitude reminder by saying, "Set a reminder."`
			}

			// Backfill the email once a returning user with accumulated
			// feedback or a reminder has granted the scope.
			engaged := rec.Happy != nil || rec.Reminder
			if rec.ProfileEmail == models.EmailNotGiven && engaged && profileEmail != models.EmailNotGiven {
				if err := e.users.PatchUser(ctx, req.Turn.UserID, models.UserRecordPatch{ProfileEmail: &profileEmail}); err != nil {
					return models.Response{}, fmt.Errorf("launch email backfill failed: %w", err)
				}
				slog.Info("launch: email backfilled", "userID", req.Turn.UserID)
			}

			return NewComposer().
				Speak(speech).
				Reprompt(reprompt).
				WithCard("Welcome back to "+AppName+"!", cardContent).
				EndSession(false).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}

// ideaHandler presents a random gratitude idea. Always legal.
func (e *Engine) ideaHandler() Handler {
	return Handler{
		Name:      "request_idea",
		CanHandle: actionPredicate(models.ActionRequestIdea),
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			idea := util.PickRandom(content.Ideas)
			speech := "Here's your idea for today: <break time=\"0.3s\"/>" + idea +
				" <break time=\"0.5s\"/> What do you think? You can say, <break time=\"0.05s\"/>I'll do it! or <break time=\"0.05s\"/>give me another idea."

			req.Session.SetPhase(PhaseIdeaPresented)

			return NewComposer().
				Speak(speech).
				Reprompt(msgIdeaReprompt).
				WithCard("Your Idea for Today", content.StripMarkup(idea)).
				EndSession(false).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}

// nextIdeaHandler re-samples an idea, but only when one was already
// presented this session; otherwise it gently redirects without changing
// any state.
func (e *Engine) nextIdeaHandler() Handler {
	return Handler{
		Name:      "request_next_idea",
		CanHandle: actionPredicate(models.ActionRequestNextIdea),
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			if req.Session.Phase() != PhaseIdeaPresented {
				slog.Debug("next_idea: no idea presented yet", "userID", req.Turn.UserID, "phase", req.Session.Phase())
				return NewComposer().
					Speak(msgNextIdeaClarification).
					EndSession(false).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			idea := util.PickRandom(content.Ideas)
			speech := "How about this? <break time=\"0.3s\"/>" + idea +
				" <break time=\"0.5s\"/> You can say, <break time=\"0.05s\"/>I'll do it! or <break time=\"0.05s\"/>give me another idea."

			return NewComposer().
				Speak(speech).
				Reprompt(msgIdeaReprompt).
				WithCard("Your Idea for Today", content.StripMarkup(idea)).
				EndSession(false).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}

// completionHandler handles the user committing to an idea. First-time
// committers get the satisfaction survey; anyone who has already answered
// it gets a science fact instead and the session closes.
func (e *Engine) completionHandler() Handler {
	return Handler{
		Name:      "acknowledge_completion",
		CanHandle: actionPredicate(models.ActionAcknowledgeCompletion),
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			if req.Session.Phase() != PhaseIdeaPresented {
				slog.Debug("completion: out of sequence", "userID", req.Turn.UserID, "phase", req.Session.Phase())
				return NewComposer().
					Speak(msgWrongInvocation).
					EndSession(true).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			praise := util.PickRandom(content.Praises)

			rec, err := e.users.GetUser(ctx, req.Turn.UserID)
			if err != nil {
				return models.Response{}, fmt.Errorf("completion lookup failed: %w", err)
			}

			if rec != nil && rec.Happy == nil {
				req.Session.SetPhase(PhaseAwaitingFeedback)
				return NewComposer().
					Speak(praise + msgSurvey).
					WithCard("Were you happy with this skill today?", `You can say "yes" or "no." Your feedback makes a huge difference!`).
					EndSession(false).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			fact := util.PickRandom(content.Facts)
			speech := praise + "Interestingly, science suggests that " + fact.Speech + " <break time=\"0.3s\"/>"
			return NewComposer().
				Speak(speech).
				WithCard(fact.Title, fact.Long).
				EndSession(true).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}

// feedbackHandler records a survey answer. The write is last-write-wins, so
// answering twice within one survey window just keeps the latest value.
// Users who never granted the email scope get the consent request appended.
func (e *Engine) feedbackHandler(name string, action models.Action, happy bool) Handler {
	return Handler{
		Name:      name,
		CanHandle: actionPredicate(action),
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			if req.Session.Phase() != PhaseAwaitingFeedback {
				slog.Debug("feedback: no survey pending", "userID", req.Turn.UserID, "phase", req.Session.Phase())
				return NewComposer().
					Speak(msgWrongInvocation).
					EndSession(true).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			speech := msgFeedbackNoOpening
			if happy {
				speech = msgFeedbackYesOpening
			}

			rec, err := e.users.GetUser(ctx, req.Turn.UserID)
			if err != nil {
				return models.Response{}, fmt.Errorf("feedback lookup failed: %w", err)
			}

			value := happy
			if err := e.users.PatchUser(ctx, req.Turn.UserID, models.UserRecordPatch{Happy: &value}); err != nil {
				return models.Response{}, fmt.Errorf("feedback persist failed: %w", err)
			}
			slog.Info("feedback: recorded", "userID", req.Turn.UserID, "happy", happy)

			if rec == nil || rec.ProfileEmail == models.EmailNotGiven {
				return NewComposer().
					Speak(speech + msgNotifyMissingEmail).
					WithConsent(models.ScopeEmailRead).
					EndSession(true).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			cardTitle := "Thanks for your feedback."
			cardBody := "The developer may send you an email to learn how this skill can get better."
			if happy {
				cardTitle = "Thanks for your feedback!"
				cardBody = "The developer will send you an email soon to thank you personally."
			}
			return NewComposer().
				Speak(speech + msgFeedbackThanks).
				WithCard(cardTitle, cardBody).
				EndSession(true).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}

// reminderHandler manages the weekly reminder subscription. Legal from any
// phase; it never touches the idea/feedback flow.
func (e *Engine) reminderHandler() Handler {
	return Handler{
		Name:      "set_reminder",
		CanHandle: actionPredicate(models.ActionSetReminder),
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			day, found, err := e.gateway.Query(ctx, req.Turn.UserID)
			if err != nil {
				if errors.Is(err, reminders.ErrUnauthorized) {
					return e.reminderConsentResponse(req)
				}
				slog.Error("reminder: query failed", "error", err, "userID", req.Turn.UserID)
				return e.reminderFailureResponse(req)
			}

			if found {
				speech := fmt.Sprintf("You already have a weekly gratitude reminder set for every %s. Go you!", util.FullDayName(day))
				return NewComposer().
					Speak(speech).
					WithCard(AppName, speech).
					EndSession(true).
					WithAttributes(req.Session.Attributes()).
					Build()
			}

			dayCode, dayName := util.UpcomingWeekday(req.Turn.Timestamp)
			err = e.gateway.Create(ctx, req.Turn.UserID, reminders.Schedule{
				DayCode:   dayCode,
				TimeOfDay: reminderTimeOfDay,
				Message:   msgReminderBody,
			})
			switch {
			case err == nil:
				enabled := true
				if err := e.users.PatchUser(ctx, req.Turn.UserID, models.UserRecordPatch{Reminder: &enabled}); err != nil {
					return models.Response{}, fmt.Errorf("reminder persist failed: %w", err)
				}
				slog.Info("reminder: subscription created", "userID", req.Turn.UserID, "day", dayCode)
				speech := fmt.Sprintf("Okay. I've set a weekly gratitude reminder for %ss at 7 AM. You can change the time or delete this reminder in your companion app.", dayName)
				return NewComposer().
					Speak(speech).
					EndSession(true).
					WithAttributes(req.Session.Attributes()).
					Build()
			case errors.Is(err, reminders.ErrUnauthorized):
				return e.reminderConsentResponse(req)
			default:
				slog.Error("reminder: create failed", "error", err, "userID", req.Turn.UserID)
				return e.reminderFailureResponse(req)
			}
		},
	}
}

// reminderConsentResponse asks for the scheduling scope out of band. The
// user record is left untouched for the denied capability.
func (e *Engine) reminderConsentResponse(req *Request) (models.Response, error) {
	return NewComposer().
		Speak(msgReminderConsent).
		WithConsent(models.ScopeReminderReadWrite).
		EndSession(true).
		WithAttributes(req.Session.Attributes()).
		Build()
}

// reminderFailureResponse reports a transient gateway failure. No retry
// here: the user is asked to try again later.
func (e *Engine) reminderFailureResponse(req *Request) (models.Response, error) {
	return NewComposer().
		Speak(msgReminderFailure).
		EndSession(true).
		WithAttributes(req.Session.Attributes()).
		Build()
}

// helpHandler summarizes capabilities and keeps the session open. Stateless.
func (e *Engine) helpHandler() Handler {
	return Handler{
		Name:      "help",
		CanHandle: actionPredicate(models.ActionHelp),
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			return NewComposer().
				Speak(msgHelp).
				Reprompt(msgHelpReprompt).
				EndSession(false).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}

// stopHandler ends the session with a farewell. Stateless.
func (e *Engine) stopHandler() Handler {
	return Handler{
		Name: "cancel_or_stop",
		CanHandle: func(t models.Turn) bool {
			return t.Type == models.TurnTypeActionRequest &&
				(t.Action == models.ActionCancel || t.Action == models.ActionStop)
		},
		Handle: func(ctx context.Context, req *Request) (models.Response, error) {
			return NewComposer().
				Speak(msgGoodbye).
				EndSession(true).
				WithAttributes(req.Session.Attributes()).
				Build()
		},
	}
}
