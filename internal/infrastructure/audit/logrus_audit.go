package audit

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
)

// LogrusAuditLogger writes audit events as structured log entries
type LogrusAuditLogger struct {
	logger *log.Logger
}

// NewLogrusAuditLogger creates an audit logger on top of logger
func NewLogrusAuditLogger(logger *log.Logger) domain.AuditLogger {
	return &LogrusAuditLogger{logger: logger}
}

// LogEvent implements domain.AuditLogger
func (a *LogrusAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	if event == nil {
		return nil
	}
	if event.IPAddress == "" {
		event.WithClientContext(domain.ClientContextFrom(ctx))
	}

	fields := log.Fields{
		"audit":      true,
		"event_type": event.EventType,
		"user_id":    event.UserID,
		"success":    event.Success,
		"timestamp":  event.Timestamp,
	}
	if event.Username != "" {
		fields["username"] = event.Username
	}
	if event.IPAddress != "" {
		fields["ip_address"] = event.IPAddress
	}
	if event.UserAgent != "" {
		fields["user_agent"] = event.UserAgent
	}
	if event.ErrorMsg != "" {
		fields["error"] = event.ErrorMsg
	}
	for k, v := range event.Metadata {
		fields["meta_"+k] = v
	}

	entry := a.logger.WithContext(ctx).WithFields(fields)
	if event.Success {
		entry.Info("audit event")
	} else {
		entry.Warn("audit event")
	}
	return nil
}
