package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/identity/usecase"
)

// userRedis stores the user collection as one JSON value in Redis.
type userRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure userRedis implements UserStore.
var _ usecase.UserStore = (*userRedis)(nil)

// NewUserRedis creates a Redis-backed UserStore. An empty prefix defaults to "booking".
func NewUserRedis(client *redis.Client, prefix string) *userRedis {
	if prefix == "" {
		prefix = "booking"
	}
	return &userRedis{client: client, prefix: prefix}
}

// usersKey returns the Redis key holding the collection.
func (r *userRedis) usersKey() string {
	return fmt.Sprintf("%s:users", r.prefix)
}

// LoadAll reads the collection. A missing or corrupt value is an empty collection.
func (r *userRedis) LoadAll(ctx context.Context) ([]entity.User, error) {
	data, err := r.client.Get(ctx, r.usersKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []entity.User{}, nil
		}
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("redis user collection corrupt, using empty collection", "key", r.usersKey(), "error", err)
		return []entity.User{}, nil
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// SaveAll overwrites the collection without expiry.
func (r *userRedis) SaveAll(ctx context.Context, users []entity.User) error {
	if users == nil {
		users = []entity.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := r.client.Set(ctx, r.usersKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *userRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
