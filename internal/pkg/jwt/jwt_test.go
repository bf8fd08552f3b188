package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/clock"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

type staticGenerator struct{ id string }

func (g staticGenerator) Generate() string { return g.id }

func newTestJWT(t *testing.T, clk clocker) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:    []byte(testSecret),
		Issuer:    "ticket-booking-test",
		Audiences: []string{"ticket-booking-web"},
		TTL:       24 * time.Hour,
		Clock:     clk,
		UUID:      staticGenerator{id: "jti-1"},
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	return j
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	// Act
	_, err := NewHS512(Config{Secret: []byte("too-short")})

	// Assert
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSymmetricRoundTrip(t *testing.T) {
	// Arrange
	j := newTestJWT(t, clock.New())

	// Act
	token, err := j.Generate(42, "session-cid")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := j.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", claims.Subject)
	}
	if claims.CorrelationID != "session-cid" {
		t.Fatalf("expected correlation id session-cid, got %q", claims.CorrelationID)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("expected token id jti-1, got %q", claims.ID)
	}
}

func TestSymmetricVerifyExpired(t *testing.T) {
	// Arrange: issue a token whose 24h lifetime ended an hour ago.
	j := newTestJWT(t, clock.Static{At: time.Now().Add(-25 * time.Hour)})

	token, err := j.Generate(42, "session-cid")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// Act
	_, err = j.Verify(token)

	// Assert
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSymmetricVerifyTampered(t *testing.T) {
	// Arrange
	j := newTestJWT(t, clock.New())

	token, err := j.Generate(42, "session-cid")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	// Act
	_, err = j.Verify(tampered)

	// Assert
	if err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}
}
