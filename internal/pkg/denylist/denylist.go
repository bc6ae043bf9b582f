/*
Package denylist provides optional server-side revocation of session tokens.

Sessions are stateless signed tokens; clearing the cookie on logout only removes the
client's copy. When a deny-list is configured, logout records the token id until the
token would have expired anyway, and session validation rejects listed ids.
*/
package denylist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenyList records revoked token ids.
type DenyList interface {
	// Revoke lists tokenID for ttl. A non-positive ttl is a no-op.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether tokenID is listed.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Noop is used when no deny-list backend is configured: nothing is ever revoked.
type Noop struct{}

func (Noop) Revoke(context.Context, string, time.Duration) error { return nil }

func (Noop) IsRevoked(context.Context, string) (bool, error) { return false, nil }

const keyPrefix = "session:revoked:"

// Redis stores revoked token ids as expiring keys.
type Redis struct {
	client redis.Cmdable
}

// NewRedis returns a deny-list backed by client.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func revokedKey(tokenID string) string {
	return keyPrefix + tokenID
}

// Revoke implements DenyList.
func (d *Redis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked implements DenyList.
func (d *Redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	_, err := d.client.Get(ctx, revokedKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenID, err)
	}
	return true, nil
}
