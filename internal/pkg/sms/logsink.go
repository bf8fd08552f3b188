package sms

import (
	"context"
	"log/slog"
)

// Logsink is a Messenger that only logs messages.
//
// Used outside production, where the one-time code is echoed in the API
// response instead of being delivered to a real number.
type Logsink struct{}

// NewLogsink returns a logging-only sender.
func NewLogsink() *Logsink {
	return &Logsink{}
}

// Send logs the message destination. The body is not logged because it
// contains the one-time code.
func (l *Logsink) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "sms suppressed outside production", "to", msg.To, "body_len", len(msg.Body))
	return nil
}

// Close implements io.Closer for interface compatibility.
func (l *Logsink) Close() error {
	return nil
}
