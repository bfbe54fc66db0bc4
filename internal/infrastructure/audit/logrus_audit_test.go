package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
)

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	logger := log.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&log.JSONFormatter{})
	return logger
}

func TestLogEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     *domain.AuditEvent
		wantLevel string
		wantError string
	}{
		{
			name:      "successful login",
			event:     domain.NewAuditEvent(domain.UserLoginEvent, 3).WithUsername("a@example.com"),
			wantLevel: "info",
		},
		{
			name: "failed login",
			event: domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
				WithUsername("a@example.com").
				WithError(domain.ErrInvalidCredentials),
			wantLevel: "warning",
			wantError: domain.ErrInvalidCredentials.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusAuditLogger(newTestLogger(&buf))
			ctx := domain.WithClientContext(context.Background(), &domain.ClientContext{IPAddress: "10.1.1.1", UserAgent: "go-test"})

			if err := logger.LogEvent(ctx, tt.event); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("expected JSON log line: %v (%q)", err, buf.String())
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("expected level %s, got %v", tt.wantLevel, entry["level"])
			}
			if entry["event_type"] != string(tt.event.EventType) {
				t.Errorf("expected event_type %s, got %v", tt.event.EventType, entry["event_type"])
			}
			if entry["ip_address"] != "10.1.1.1" {
				t.Errorf("client context should be taken from ctx, got %v", entry["ip_address"])
			}
			if tt.wantError != "" && entry["error"] != tt.wantError {
				t.Errorf("expected error %q, got %v", tt.wantError, entry["error"])
			}
		})
	}
}

func TestLogEvent_Nil(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAuditLogger(newTestLogger(&buf))
	if err := logger.LogEvent(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nil event should not be logged, got %q", buf.String())
	}
}
