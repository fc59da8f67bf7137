package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	AuditKeyResolved  = "device_key_resolved"
	AuditFileSealed   = "file_sealed"
	AuditFileUnsealed = "file_unsealed"
)

// AuditEvent is a record of an operation performed with the device-bound key.
type AuditEvent struct {
	EventID   string                 `json:"event_id"`
	Timestamp time.Time              `json:"timestamp"`
	EventType string                 `json:"event_type"`
	Actor     string                 `json:"actor,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

var (
	auditLogger     *zerolog.Logger
	auditLoggerOnce sync.Once
)

// InitAuditLogger configures the global audit logger.
// If writer is nil, audit logging is disabled.
func InitAuditLogger(writer io.Writer) {
	if writer == nil {
		return
	}

	auditLoggerOnce.Do(func() {
		l := zerolog.New(writer).With().Timestamp().Logger()
		auditLogger = &l
	})
}

// LogAuditEvent writes a structured audit event if the audit logger is configured.
// Key material must never be passed in details.
func LogAuditEvent(eventType string, details map[string]interface{}) {
	if auditLogger == nil {
		return
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Actor:     currentUser(),
		Details:   details,
	}

	e := auditLogger.Info().
		Str("event_id", event.EventID).
		Time("timestamp", event.Timestamp).
		Str("event_type", event.EventType)

	if event.Actor != "" {
		e = e.Str("actor", event.Actor)
	}
	if len(event.Details) > 0 {
		e = e.Fields(event.Details)
	}

	e.Msg("")
}

// NewFileAuditWriter returns an append-only file writer for audit logs.
// The caller closes it once the command has finished.
func NewFileAuditWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
