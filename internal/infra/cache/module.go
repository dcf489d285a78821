// Package cache provides the optional read-through cache placed in front of the user repository.
package cache

import (
	"context"
	"log/slog"
	"strings"

	"userhub/config"
	"userhub/internal/domain/constants"
	"userhub/internal/domain/lifecycle"
	"userhub/internal/domain/repository"
	"userhub/internal/errors"

	"go.uber.org/fx"
)

// Params defines the dependencies for building the user cache
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewUserCache builds the configured cache. It returns a nil cache when caching is disabled.
func NewUserCache(params Params) (repository.UserCache, error) {
	cfg := params.Config.Cache
	if cfg == nil {
		return nil, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "", constants.CacheProviderNone:
		params.Logger.Info("User cache disabled")

		return nil, nil
	case constants.CacheProviderMemory:
		params.Logger.Info("Using in-memory user cache", slog.Duration("ttl", cfg.TTL))

		return NewMemoryUserCache(cfg.TTL, cfg.CleanupInterval), nil
	case constants.CacheProviderRedis:
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		client, err := ConnectRedis(ctx, params.Config.Redis)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect user cache")
		}
		params.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		params.Logger.Info("Using Redis user cache",
			slog.String("addr", params.Config.Redis.Addr),
			slog.Duration("ttl", cfg.TTL),
		)

		return NewRedisUserCache(client, cfg.TTL, cfg.KeyPrefix), nil
	default:
		return nil, errors.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

// DecorateParams feeds the repository decorator
type DecorateParams struct {
	fx.In

	Repo   repository.UserRepository
	Cache  repository.UserCache `optional:"true"`
	Logger *slog.Logger
}

// DecorateUserRepository places the cache in front of the repository when one is configured.
func DecorateUserRepository(params DecorateParams) repository.UserRepository {
	return WrapUserRepository(params.Repo, params.Cache, params.Logger)
}

// Module wires the user cache and decorates the repository with it
var Module = fx.Options(
	fx.Provide(NewUserCache),
	fx.Decorate(DecorateUserRepository),
)
