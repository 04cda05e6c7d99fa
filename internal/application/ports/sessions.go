package ports

import (
	"context"
	"time"
)

// Sessions is the TTL key-value contract of the session store:
// set-with-ttl, get, delete. Get returns "" for an absent or expired
// token without error.
type Sessions interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Del(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}
