package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BTreeMap/DialogPipe/internal/dialog"
	"github.com/BTreeMap/DialogPipe/internal/models"
	"github.com/BTreeMap/DialogPipe/internal/reminders"
	"github.com/BTreeMap/DialogPipe/internal/store"
)

type stubGateway struct{}

func (stubGateway) Query(ctx context.Context, userID string) (string, bool, error) {
	return "", false, nil
}

func (stubGateway) Create(ctx context.Context, userID string, sched reminders.Schedule) error {
	return reminders.ErrUnauthorized
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := dialog.NewEngine(store.NewInMemoryStore(), stubGateway{})
	return NewServer(engine)
}

func postTurn(t *testing.T, handler http.Handler, turn models.Turn) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(turn)
	if err != nil {
		t.Fatalf("marshal turn: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/turn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTurnEndpointLaunch(t *testing.T) {
	srv := newTestServer(t)
	rec := postTurn(t, srv.Handler(), models.Turn{
		Type:      models.TurnTypeSessionStart,
		UserID:    "user-1",
		SessionID: "sess-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp models.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Speech == "" {
		t.Error("expected non-empty speech on launch")
	}
	if resp.EndSession {
		t.Error("launch should keep the session open")
	}
}

func TestTurnEndpointRejectsInvalidTurn(t *testing.T) {
	srv := newTestServer(t)
	rec := postTurn(t, srv.Handler(), models.Turn{
		Type:      models.TurnTypeSessionStart,
		SessionID: "sess-1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var apiResp models.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&apiResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if apiResp.Status != "error" {
		t.Errorf("status field = %q, want error", apiResp.Status)
	}
}

func TestTurnEndpointRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/turn", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTurnEndpointRejectsGet(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/turn", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var apiResp models.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&apiResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if apiResp.Status != "ok" {
		t.Errorf("status field = %q, want ok", apiResp.Status)
	}
}
