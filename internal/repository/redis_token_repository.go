package repository

import (
	"context"
	"errors"
	"fmt"

	"mentor-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check that redisTokenRepository implements TokenRepository.
var _ TokenRepository = (*redisTokenRepository)(nil)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a Redis-backed TokenRepository. The auth
// service stores access_uuid:{JTI} -> userID with the token's TTL; a missing
// key means the token was revoked or has expired server-side.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

// GetUserIDByAccessUUID returns the user the access token belongs to, or
// models.ErrTokenNotFound when the token is no longer active.
func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	key := fmt.Sprintf("access_uuid:%s", accessUUID)

	userIDStr, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Access token not found in Redis", zap.String("accessUUID", accessUUID))
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to get token from redis", zap.Error(err), zap.String("key", key))
		return uuid.Nil, fmt.Errorf("failed to get token from redis: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		r.logger.Error("Failed to parse userID from redis data for access token",
			zap.Error(err),
			zap.String("accessUUID", accessUUID),
			zap.String("value", userIDStr),
		)
		return uuid.Nil, fmt.Errorf("corrupted userID data in redis for access token %s: %w", accessUUID, err)
	}
	return userID, nil
}
