package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGateway(t *testing.T, handler http.Handler) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewHTTPGateway(WithBaseURL(srv.URL), WithToken("test-token"), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewHTTPGateway: %v", err)
	}
	return g
}

func TestQueryExistingSubscription(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"user_id": "u1", "day_code": "TH"})
	}))

	day, found, err := g.Query(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !found || day != "TH" {
		t.Errorf("got (%q, %v), want (TH, true)", day, found)
	}
}

func TestQueryNoSubscription(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, found, err := g.Query(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if found {
		t.Error("expected found=false for 404")
	}
}

func TestCreateOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"created", http.StatusCreated, nil},
		{"unauthorized", http.StatusForbidden, ErrUnauthorized},
		{"server error", http.StatusInternalServerError, errors.New("any")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method %s", r.Method)
				}
				var payload subscriptionPayload
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
					t.Errorf("bad payload: %v", err)
				}
				if payload.DayCode == "" || payload.TimeOfDay == "" {
					t.Errorf("incomplete schedule: %+v", payload)
				}
				w.WriteHeader(tc.status)
			}))

			err := g.Create(context.Background(), "u1", Schedule{DayCode: "MO", TimeOfDay: "07:00", Message: "time for gratitude"})
			switch {
			case tc.wantErr == nil && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tc.wantErr == ErrUnauthorized && !errors.Is(err, ErrUnauthorized):
				t.Errorf("expected ErrUnauthorized, got %v", err)
			case tc.wantErr != nil && tc.wantErr != ErrUnauthorized && err == nil:
				t.Error("expected an error for server failure")
			}
		})
	}
}

func TestNewHTTPGatewayRequiresBaseURL(t *testing.T) {
	t.Setenv("REMINDER_SERVICE_URL", "")
	if _, err := NewHTTPGateway(); err == nil {
		t.Error("expected error when base URL is missing")
	}
}
