package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"dentalcenter.org/internal/auth"
	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/obs"
)

func TestLogEvent(t *testing.T) {
	logger := obs.Logger()
	original := logger.Writer()
	logger.SetFlags(0)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	ctx := auth.ContextWithUser(context.Background(), "1", clinic.RoleAdmin)

	if err := LogEvent(ctx, "store.dispatch", map[string]any{"action": "delete_patient", "outcome": "applied"}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	line := buf.String()
	if line == "" {
		t.Fatal("expected log output")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if entry["type"] != "audit" {
		t.Fatalf("unexpected type: %v", entry["type"])
	}
	if entry["event"] != "store.dispatch" {
		t.Fatalf("unexpected event: %v", entry["event"])
	}
	if entry["user_id"] != "1" {
		t.Fatalf("unexpected user id: %v", entry["user_id"])
	}
	if entry["role"] != "Admin" {
		t.Fatalf("unexpected role: %v", entry["role"])
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok || fields["action"] != "delete_patient" {
		t.Fatalf("fields missing or incorrect: %v", entry["fields"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "   ", nil); err == nil {
		t.Fatal("expected error for empty event name")
	}
}
