package sms

import (
	"context"
	"io"
)

// Message represents a text message payload.
type Message struct {
	// To is the destination number in E.164 form.
	To string
	// Body is the message text.
	Body string
}

// Messenger abstracts an SMS provider.
type Messenger interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
