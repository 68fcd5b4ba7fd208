// Package api provides HTTP handlers for DialogPipe endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/BTreeMap/DialogPipe/internal/models"
	"github.com/google/uuid"
)

func (s *Server) turnHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	requestID := uuid.NewString()
	slog.Debug("Server.turnHandler: processing turn request", "method", r.Method, "requestID", requestID)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.turnHandler: method not allowed", "method", r.Method, "requestID", requestID)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var turn models.Turn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		slog.Warn("Server.turnHandler: failed to decode JSON", "error", err, "requestID", requestID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}

	if err := turn.Validate(); err != nil {
		slog.Warn("Server.turnHandler: validation failed", "error", err, "requestID", requestID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	// The engine never fails a turn: dialog-level errors come back as the
	// generic apology response, so this is always a 200 with a payload.
	resp := s.engine.HandleTurn(r.Context(), turn)
	slog.Debug("Server.turnHandler: turn completed", "requestID", requestID,
		"userID", turn.UserID, "sessionID", turn.SessionID, "end_session", resp.EndSession)
	writeJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"service": "dialogpipe"}))
}
