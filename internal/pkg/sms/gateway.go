package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrGatewayURLRequired is returned when the gateway URL is missing.
	ErrGatewayURLRequired = errors.New("sms gateway url is required")
	// ErrGatewayRejected is returned when the provider answers with a non-2xx status.
	ErrGatewayRejected = errors.New("sms gateway rejected the message")
)

// Gateway is a Messenger backed by an HTTP SMS provider.
//
// Transient failures (5xx, transport errors) are retried with fibonacci
// backoff; 4xx responses fail immediately since resending the same payload
// cannot succeed.
type Gateway struct {
	url      string
	apiKey   string
	sender   string
	client   *http.Client
	attempts uint64
	backoff  time.Duration
}

// GatewayConfig configures the HTTP gateway.
type GatewayConfig struct {
	// URL is the provider's send endpoint.
	URL string
	// APIKey authenticates against the provider.
	APIKey string
	// Sender is the sender id attached to outgoing messages.
	Sender string
	// Timeout bounds a single send attempt.
	Timeout time.Duration
	// MaxAttempts caps delivery attempts, retries included.
	MaxAttempts uint64
	// Backoff is the initial backoff between attempts.
	Backoff time.Duration
}

// NewGateway constructs an HTTP-backed SMS sender.
func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.URL == "" {
		return nil, ErrGatewayURLRequired
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}

	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}

	return &Gateway{
		url:      cfg.URL,
		apiKey:   cfg.APIKey,
		sender:   cfg.Sender,
		client:   &http.Client{Timeout: cfg.Timeout},
		attempts: cfg.MaxAttempts,
		backoff:  cfg.Backoff,
	}, nil
}

type gatewayPayload struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
	Body string `json:"body"`
}

// Send delivers a message through the provider, retrying transient failures.
func (g *Gateway) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(gatewayPayload{
		To:   msg.To,
		From: g.sender,
		Body: msg.Body,
	})
	if err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(g.attempts-1, retry.NewFibonacci(g.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")
		if g.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+g.apiKey)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		switch {
		case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
			return nil
		case resp.StatusCode >= http.StatusInternalServerError:
			return retry.RetryableError(fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode))
		default:
			return fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
		}
	})
}

// Close implements io.Closer for interface compatibility.
func (g *Gateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
