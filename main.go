package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/BTreeMap/DialogPipe/internal/dialog"
	"github.com/BTreeMap/DialogPipe/internal/models"
	"github.com/BTreeMap/DialogPipe/internal/reminders"
	"github.com/BTreeMap/DialogPipe/internal/store"
)

func main() {
	// Minimal demonstration: run a single launch turn through the dialog
	// engine with an in-memory store and print the response.
	engine := dialog.NewEngine(store.NewInMemoryStore(), reminders.NoopGateway{})

	resp := engine.HandleTurn(context.Background(), models.Turn{
		Type:      models.TurnTypeSessionStart,
		UserID:    "demo-user",
		SessionID: "demo-session",
		Timestamp: time.Now(),
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Fatalf("Failed to encode response: %v", err)
	}

	// In production use cmd/DialogPipe, which wires durable storage, the
	// reminder gateway, and the HTTP API.
}
