package authflow

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// SentrySink forwards failed flow steps to Sentry. Successful events are
// ignored; Sentry is for anomalies, the full stream belongs to a
// [ChannelSink] or [JSONWriterSink].
type SentrySink struct {
	hub *sentry.Hub
}

// NewSentrySink describes the newsentrysink operation and its observable behavior.
//
// A nil hub falls back to [sentry.CurrentHub], matching the usual
// sentry.Init bootstrap.
func NewSentrySink(hub *sentry.Hub) *SentrySink {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentrySink{hub: hub}
}

// Emit describes the emit operation and its observable behavior.
func (s *SentrySink) Emit(_ context.Context, event AuditEvent) {
	if s == nil || s.hub == nil || event.Success {
		return
	}

	sentryEvent := sentry.NewEvent()
	sentryEvent.Level = sentry.LevelWarning
	sentryEvent.Message = event.EventType
	sentryEvent.Timestamp = event.Timestamp
	sentryEvent.Tags = map[string]string{
		"event_type": event.EventType,
	}
	if event.RequestID != "" {
		sentryEvent.Tags["request_id"] = event.RequestID
	}
	if event.UserID != "" {
		sentryEvent.User = sentry.User{ID: event.UserID}
	}
	if event.Error != "" {
		sentryEvent.Extra = map[string]any{"error": event.Error}
	}
	for k, v := range event.Metadata {
		sentryEvent.Tags["meta_"+k] = v
	}

	s.hub.CaptureEvent(sentryEvent)
}
