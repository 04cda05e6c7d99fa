package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
)

// Session tokens live under an auth_ prefix so the store can be shared
// with other keyspaces.
const keyPrefix = "auth_"

type Sessions struct {
	logger *zap.Logger
	client *redis.Client
}

func New(ctx context.Context, logger *zap.Logger, addr string) (ports.Sessions, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("redis connected successfully")

	return &Sessions{logger: logger, client: client}, nil
}

func (s *Sessions) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+token, userID, ttl).Err()
}

func (s *Sessions) Get(ctx context.Context, token string) (string, error) {
	v, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}

	return v, nil
}

func (s *Sessions) Del(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

func (s *Sessions) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
