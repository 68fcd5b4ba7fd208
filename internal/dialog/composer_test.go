package dialog

import (
	"testing"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

func TestComposerBuildsFullResponse(t *testing.T) {
	resp, err := NewComposer().
		Speak("hello").
		Reprompt("still there?").
		WithCard("Title", "Body").
		EndSession(false).
		WithAttributes(map[string]string{"k": "v"}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if resp.Speech != "hello" || resp.Reprompt != "still there?" {
		t.Errorf("speech/reprompt wrong: %+v", resp)
	}
	if resp.Card == nil || resp.Card.Title != "Title" {
		t.Errorf("card wrong: %+v", resp.Card)
	}
	if resp.EndSession {
		t.Error("end_session should be false")
	}
	if resp.Attributes["k"] != "v" {
		t.Error("attributes not carried")
	}
}

func TestComposerRejectsRepromptWithEndSession(t *testing.T) {
	_, err := NewComposer().
		Speak("bye").
		Reprompt("anyone?").
		EndSession(true).
		Build()
	if err != ErrRepromptOnClosedSession {
		t.Errorf("expected ErrRepromptOnClosedSession, got %v", err)
	}
}

func TestComposerConsent(t *testing.T) {
	resp, err := NewComposer().
		Speak("please grant").
		WithConsent(models.ScopeEmailRead).
		EndSession(true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if resp.Consent == nil || len(resp.Consent.Scopes) != 1 || resp.Consent.Scopes[0] != models.ScopeEmailRead {
		t.Errorf("consent wrong: %+v", resp.Consent)
	}
}
