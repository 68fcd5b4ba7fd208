package dialog

import (
	"errors"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

// ErrRepromptOnClosedSession is returned by Composer.Build when a response
// carries a re-prompt while also ending the session. A re-prompt implies the
// agent is waiting for the user; ending the session says it is not.
var ErrRepromptOnClosedSession = errors.New("response cannot both re-prompt and end the session")

// Composer assembles the outbound response payload. It is a pure builder:
// it performs no I/O and mutates no dialog state.
type Composer struct {
	response models.Response
}

// NewComposer creates an empty Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Speak sets the spoken utterance.
func (c *Composer) Speak(text string) *Composer {
	c.response.Speech = text
	return c
}

// Reprompt sets the re-prompt spoken if the user stays silent.
func (c *Composer) Reprompt(text string) *Composer {
	c.response.Reprompt = text
	return c
}

// WithCard attaches a visual card.
func (c *Composer) WithCard(title, body string) *Composer {
	c.response.Card = &models.Card{Title: title, Body: body}
	return c
}

// WithConsent attaches an out-of-band consent request for the given scopes.
func (c *Composer) WithConsent(scopes ...models.PermissionScope) *Composer {
	c.response.Consent = &models.ConsentRequest{Scopes: scopes}
	return c
}

// EndSession marks whether this response closes the session.
func (c *Composer) EndSession(end bool) *Composer {
	c.response.EndSession = end
	return c
}

// WithAttributes sets the session attribute bag to round-trip back.
func (c *Composer) WithAttributes(attrs map[string]string) *Composer {
	c.response.Attributes = attrs
	return c
}

// Build validates and returns the final response.
func (c *Composer) Build() (models.Response, error) {
	if c.response.EndSession && c.response.Reprompt != "" {
		return models.Response{}, ErrRepromptOnClosedSession
	}
	return c.response, nil
}
