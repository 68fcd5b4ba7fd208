package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultRequestTimeout bounds a single call to the reminder service.
const DefaultRequestTimeout = 10 * time.Second

// Opts holds configuration options for the HTTP reminder client.
type Opts struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// Option defines a configuration option for the HTTP reminder client.
type Option func(*Opts)

// WithBaseURL sets the reminder service base URL.
func WithBaseURL(u string) Option {
	return func(o *Opts) { o.BaseURL = u }
}

// WithToken sets the bearer token for the reminder service.
func WithToken(t string) Option {
	return func(o *Opts) { o.Token = t }
}

// WithHTTPClient overrides the HTTP client (used in tests).
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) { o.Client = c }
}

// HTTPGateway talks to the reminder subscription REST service.
type HTTPGateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPGateway creates a reminder gateway from options, falling back to
// REMINDER_SERVICE_URL and REMINDER_SERVICE_TOKEN environment variables.
func NewHTTPGateway(opts ...Option) (*HTTPGateway, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("REMINDER_SERVICE_URL")
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("REMINDER_SERVICE_TOKEN")
	}
	slog.Debug("Reminder gateway config loaded", "BaseURL_set", cfg.BaseURL != "", "Token_set", cfg.Token != "")

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("reminder service base URL must be provided")
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return &HTTPGateway{baseURL: cfg.BaseURL, token: cfg.Token, client: cfg.Client}, nil
}

type subscriptionPayload struct {
	UserID    string `json:"user_id"`
	DayCode   string `json:"day_code"`
	TimeOfDay string `json:"time_of_day"`
	Message   string `json:"message"`
}

// Query returns the day code of the user's existing weekly subscription.
func (g *HTTPGateway) Query(ctx context.Context, userID string) (string, bool, error) {
	endpoint := g.baseURL + "/v1/subscriptions/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build subscription query: %w", err)
	}
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Error("HTTPGateway.Query request failed", "error", err, "userID", userID)
		return "", false, fmt.Errorf("subscription query failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload subscriptionPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			slog.Error("HTTPGateway.Query decode failed", "error", err, "userID", userID)
			return "", false, fmt.Errorf("failed to decode subscription: %w", err)
		}
		slog.Debug("HTTPGateway.Query found subscription", "userID", userID, "day", payload.DayCode)
		return payload.DayCode, true, nil
	case http.StatusNotFound:
		slog.Debug("HTTPGateway.Query no subscription", "userID", userID)
		return "", false, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", false, ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("HTTPGateway.Query unexpected status", "status", resp.StatusCode, "userID", userID)
		return "", false, fmt.Errorf("subscription query returned status %d: %s", resp.StatusCode, body)
	}
}

// Create registers a new weekly subscription for the user.
func (g *HTTPGateway) Create(ctx context.Context, userID string, sched Schedule) error {
	payload := subscriptionPayload{
		UserID:    userID,
		DayCode:   sched.DayCode,
		TimeOfDay: sched.TimeOfDay,
		Message:   sched.Message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	endpoint := g.baseURL + "/v1/subscriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build subscription create: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Error("HTTPGateway.Create request failed", "error", err, "userID", userID)
		return fmt.Errorf("subscription create failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		slog.Info("HTTPGateway.Create subscription created", "userID", userID, "day", sched.DayCode)
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		slog.Debug("HTTPGateway.Create unauthorized", "userID", userID)
		return ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("HTTPGateway.Create unexpected status", "status", resp.StatusCode, "userID", userID)
		return fmt.Errorf("subscription create returned status %d: %s", resp.StatusCode, respBody)
	}
}

func (g *HTTPGateway) authorize(req *http.Request) {
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
}
