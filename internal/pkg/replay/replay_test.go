package replay

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestGuard(t *testing.T) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGuard(client), srv
}

func TestRedisGuardConsume(t *testing.T) {
	t.Run("FirstConsumeWins", func(t *testing.T) {
		// Arrange
		guard, _ := newTestGuard(t)

		// Act
		fresh, err := guard.Consume(context.Background(), "9876543210|cid-1", 10*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("failed to consume: %v", err)
		}
		if !fresh {
			t.Fatalf("expected first consume to be fresh")
		}
	})

	t.Run("SecondConsumeRejected", func(t *testing.T) {
		// Arrange
		guard, _ := newTestGuard(t)
		if _, err := guard.Consume(context.Background(), "9876543210|cid-1", 10*time.Minute); err != nil {
			t.Fatalf("failed to consume: %v", err)
		}

		// Act
		fresh, err := guard.Consume(context.Background(), "9876543210|cid-1", 10*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("failed to consume: %v", err)
		}
		if fresh {
			t.Fatalf("expected replay to be rejected")
		}
	})

	t.Run("DistinctAttemptsDoNotCollide", func(t *testing.T) {
		// Arrange
		guard, _ := newTestGuard(t)
		if _, err := guard.Consume(context.Background(), "9876543210|cid-1", 10*time.Minute); err != nil {
			t.Fatalf("failed to consume: %v", err)
		}

		// Act
		fresh, err := guard.Consume(context.Background(), "9876543210|cid-2", 10*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("failed to consume: %v", err)
		}
		if !fresh {
			t.Fatalf("expected a different attempt to be fresh")
		}
	})

	t.Run("EntryExpiresWithTTL", func(t *testing.T) {
		// Arrange
		guard, srv := newTestGuard(t)
		if _, err := guard.Consume(context.Background(), "9876543210|cid-1", 10*time.Minute); err != nil {
			t.Fatalf("failed to consume: %v", err)
		}

		// Act
		srv.FastForward(11 * time.Minute)
		fresh, err := guard.Consume(context.Background(), "9876543210|cid-1", 10*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("failed to consume: %v", err)
		}
		if !fresh {
			t.Fatalf("expected expired entry to be consumable again")
		}
	})
}

func TestDisabledConsume(t *testing.T) {
	// Arrange
	guard := Disabled{}

	// Act
	first, err1 := guard.Consume(context.Background(), "9876543210|cid-1", time.Minute)
	second, err2 := guard.Consume(context.Background(), "9876543210|cid-1", time.Minute)

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("expected no errors, got %v and %v", err1, err2)
	}
	if !first || !second {
		t.Fatalf("expected disabled guard to always report fresh")
	}
}
