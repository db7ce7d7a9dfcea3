package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL bounds how long a crashed checkout can hold its slot.
const guardTTL = 30 * time.Second

// CheckoutGuard provides a per-user in-flight checkout lock backed by Redis.
// Key format: checkout:<user_id>
type CheckoutGuard struct {
	client *redis.Client
}

// NewCheckoutGuard creates a CheckoutGuard wrapping the given Redis client.
func NewCheckoutGuard(client *redis.Client) *CheckoutGuard {
	return &CheckoutGuard{client: client}
}

// Acquire reports whether the user's checkout slot was free and is now held.
func (g *CheckoutGuard) Acquire(ctx context.Context, userID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("checkout guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the user's checkout slot.
func (g *CheckoutGuard) Release(ctx context.Context, userID string) error {
	return g.client.Del(ctx, g.key(userID)).Err()
}

func (g *CheckoutGuard) key(userID string) string {
	return "checkout:" + userID
}
