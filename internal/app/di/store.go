// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"booking_backend/internal/feature/identity/adapters"
	"booking_backend/internal/feature/identity/usecase"
	"booking_backend/internal/platform/config"
	infradb "booking_backend/internal/platform/db"
	infraredis "booking_backend/internal/platform/redis"
)

// UserStore is a store that can also be probed by /healthz.
type UserStore interface {
	usecase.UserStore
	Ping(ctx context.Context) error
}

// NewUserStore creates the UserStore selected by cfg.UserStore.
// The returned close func releases the backend connection.
func NewUserStore(ctx context.Context, cfg *config.Config) (UserStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.UserStore {
	case config.StoreFile, "":
		slog.Info("using file user store", "path", cfg.DataFile)
		return adapters.NewUserFile(cfg.DataFile), noop, nil

	case config.StoreSQLite, config.StorePostgres:
		db, err := infradb.Open(cfg, &adapters.UserModel{})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		slog.Info("using SQL user store", "driver", cfg.UserStore)
		return adapters.NewUserGorm(db), sqlDB.Close, nil

	case config.StoreRedis:
		rdb, err := infraredis.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using redis user store", "prefix", cfg.RedisPrefix)
		return adapters.NewUserRedis(rdb, cfg.RedisPrefix), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown USER_STORE %q", cfg.UserStore)
	}
}
