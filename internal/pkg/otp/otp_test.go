package otp

import (
	"strings"
	"testing"
	"time"
)

func TestWindowedDerive(t *testing.T) {
	engine := NewWindowed("test-secret", DefaultWindow, 1)
	at := time.Date(2026, time.March, 14, 10, 2, 30, 0, time.UTC)

	t.Run("DeterministicWithinWindow", func(t *testing.T) {
		// Arrange
		later := at.Add(2 * time.Minute) // still inside the 10:00-10:05 bucket

		// Act
		first := engine.Derive("9876543210", "cid-1", at)
		second := engine.Derive("9876543210", "cid-1", later)

		// Assert
		if first != second {
			t.Fatalf("expected same code within one window, got %q and %q", first, second)
		}
	})

	t.Run("DiffersAcrossWindows", func(t *testing.T) {
		// Act
		current := engine.Derive("9876543210", "cid-1", at)
		next := engine.Derive("9876543210", "cid-1", at.Add(5*time.Minute))

		// Assert
		if current == next {
			t.Fatalf("expected different codes across windows, got %q twice", current)
		}
	})

	t.Run("BoundToCorrelationID", func(t *testing.T) {
		// Act
		code := engine.Derive("9876543210", "cid-1", at)

		// Assert: sample a handful of other attempt ids.
		for _, cid := range []string{"cid-2", "cid-3", "other", "cid-1 ", ""} {
			if engine.Derive("9876543210", cid, at) == code {
				t.Fatalf("expected correlation id %q to produce a different code", cid)
			}
		}
	})

	t.Run("BoundToIdentity", func(t *testing.T) {
		// Act
		code := engine.Derive("9876543210", "cid-1", at)
		other := engine.Derive("9123456780", "cid-1", at)

		// Assert
		if code == other {
			t.Fatalf("expected different identities to produce different codes")
		}
	})

	t.Run("ShapeIsSixCharsFromAlphabet", func(t *testing.T) {
		// Act
		code := engine.Derive("9876543210", "cid-1", at)

		// Assert
		if len(code) != Length {
			t.Fatalf("expected %d characters, got %d", Length, len(code))
		}
		for _, c := range code {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("unexpected character %q in code %q", c, code)
			}
		}
	})
}

func TestWindowedCheck(t *testing.T) {
	engine := NewWindowed("test-secret", DefaultWindow, 1)
	derivedAt := time.Date(2026, time.March, 14, 10, 2, 30, 0, time.UTC)
	windowStart := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

	code := engine.Derive("9876543210", "cid-1", derivedAt)

	t.Run("ValidInsideToleranceSpan", func(t *testing.T) {
		// The code stays valid from the start of its window until the
		// verifier's skew stops reaching back to it.
		for _, now := range []time.Time{
			windowStart,
			derivedAt,
			windowStart.Add(5 * time.Minute),
			windowStart.Add(10*time.Minute - time.Second),
		} {
			if !engine.Check("9876543210", "cid-1", code, now) {
				t.Fatalf("expected code valid at %s", now)
			}
		}
	})

	t.Run("InvalidOutsideToleranceSpan", func(t *testing.T) {
		for _, now := range []time.Time{
			windowStart.Add(-time.Second),
			windowStart.Add(10 * time.Minute),
			windowStart.Add(time.Hour),
		} {
			if engine.Check("9876543210", "cid-1", code, now) {
				t.Fatalf("expected code invalid at %s", now)
			}
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		// Act
		ok := engine.Check("9876543210", "cid-1", strings.ToLower(code), derivedAt)

		// Assert
		if !ok {
			t.Fatalf("expected lowercase candidate %q to verify", strings.ToLower(code))
		}
	})

	t.Run("RejectsWrongCorrelationID", func(t *testing.T) {
		if engine.Check("9876543210", "cid-2", code, derivedAt) {
			t.Fatalf("expected code bound to cid-1 to fail for cid-2")
		}
	})

	t.Run("RejectsWrongLength", func(t *testing.T) {
		if engine.Check("9876543210", "cid-1", code+"A", derivedAt) {
			t.Fatalf("expected seven character candidate to fail")
		}
		if engine.Check("9876543210", "cid-1", "", derivedAt) {
			t.Fatalf("expected empty candidate to fail")
		}
	})
}
