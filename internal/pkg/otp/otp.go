package otp

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// alphabet is the 36-symbol output alphabet. Codes are compared
// case-insensitively, so lowercase candidates are accepted.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Length is the number of characters in a derived code.
const Length = 6

// DefaultWindow is the derivation time bucket size.
const DefaultWindow = 5 * time.Minute

// OTP defines the contract for windowed one-time code operations.
type OTP interface {
	// Derive computes the code for an identity and correlation id at the given time.
	Derive(identity, correlationID string, at time.Time) string
	// Check reports whether candidate is valid for the identity and correlation
	// id at the given time, tolerating the immediately preceding window.
	Check(identity, correlationID, candidate string, now time.Time) bool
}

// Windowed implements OTP with an HMAC-SHA256 keyed derivation.
//
// Derivation is a pure function of its inputs: no I/O, no shared state, safe
// under arbitrary concurrency.
type Windowed struct {
	secret []byte
	window time.Duration
	skew   uint
}

// NewWindowed constructs a Windowed engine.
//
// If window is not positive it falls back to DefaultWindow. If skew is 0 it
// uses 1, accepting codes from the previous window as well.
func NewWindowed(secret string, window time.Duration, skew uint) *Windowed {
	if window <= 0 {
		window = DefaultWindow
	}

	if skew == 0 {
		skew = 1
	}

	return &Windowed{
		secret: []byte(secret),
		window: window,
		skew:   skew,
	}
}

// Derive computes the code for the window containing at.
//
// The keyed hash covers identity || correlationID || windowStart; each of the
// six output characters is selected from a distinct 5-hex-digit slice of the
// digest, reduced modulo 36 into 0-9A-Z.
func (o *Windowed) Derive(identity, correlationID string, at time.Time) string {
	return o.deriveAt(identity, correlationID, o.windowStart(at))
}

// Check verifies candidate against the current window and the skew preceding
// ones. Comparison is case-insensitive and constant-time per window.
func (o *Windowed) Check(identity, correlationID, candidate string, now time.Time) bool {
	if len(candidate) != Length {
		return false
	}

	candidate = strings.ToUpper(candidate)
	start := o.windowStart(now)

	matched := false
	for i := uint(0); i <= o.skew; i++ {
		code := o.deriveAt(identity, correlationID, start-int64(i)*int64(o.window/time.Second))
		if subtle.ConstantTimeCompare([]byte(code), []byte(candidate)) == 1 {
			matched = true
		}
	}

	return matched
}

// Window returns the configured window size.
func (o *Windowed) Window() time.Duration {
	return o.window
}

func (o *Windowed) windowStart(at time.Time) int64 {
	secs := int64(o.window / time.Second)
	return (at.Unix() / secs) * secs
}

func (o *Windowed) deriveAt(identity, correlationID string, windowStart int64) string {
	mac := hmac.New(sha256.New, o.secret)
	mac.Write([]byte(identity))
	mac.Write([]byte(correlationID))
	mac.Write([]byte(strconv.FormatInt(windowStart, 10)))
	digest := hex.EncodeToString(mac.Sum(nil))

	var code [Length]byte
	for i := 0; i < Length; i++ {
		slice := digest[i*5 : i*5+5]
		n, err := strconv.ParseUint(slice, 16, 64)
		if err != nil {
			// Unreachable: the digest is always valid hex.
			n = 0
		}
		code[i] = alphabet[n%uint64(len(alphabet))]
	}

	return string(code[:])
}
