// Package mail sends plain-text transactional email.
//
// The only mail the application sends today is a best-effort copy of the
// one-time verification code, so the contract stays deliberately small:
// recipients, a subject and a text body.
package mail

import (
	"context"
	"io"
)

// Message is a plain-text email payload.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To lists the recipients.
	To []string
	// Subject is the subject line.
	Subject string
	// TextBody is the message text.
	TextBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
