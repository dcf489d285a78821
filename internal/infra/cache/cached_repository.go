package cache

import (
	"context"
	"log/slog"

	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"
	"userhub/internal/infra/metrics"

	"github.com/google/uuid"
)

// cachedUserRepository serves FindByID from the cache and drops entries on every write.
// Cache failures never fail the call; the repository stays the source of truth.
type cachedUserRepository struct {
	repository.UserRepository

	cache  repository.UserCache
	logger *slog.Logger
}

// WrapUserRepository returns repo unchanged when cache is nil.
func WrapUserRepository(repo repository.UserRepository, cache repository.UserCache, logger *slog.Logger) repository.UserRepository {
	if cache == nil {
		return repo
	}

	return &cachedUserRepository{
		UserRepository: repo,
		cache:          cache,
		logger:         logger,
	}
}

func (r *cachedUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, hit, err := r.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		r.logger.WarnContext(ctx, "User cache read failed", slog.String("userID", id.String()), slog.Any("error", err))
	case hit:
		metrics.CacheLookupsTotal.WithLabelValues(metrics.OutcomeHit).Inc()

		return user, nil
	default:
		metrics.CacheLookupsTotal.WithLabelValues(metrics.OutcomeMiss).Inc()
	}

	user, err = r.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, user); err != nil {
		r.logger.WarnContext(ctx, "User cache write failed", slog.String("userID", id.String()), slog.Any("error", err))
	}

	return user, nil
}

// FindByIDForUpdate never consults the cache; writes must start from the stored row.
func (r *cachedUserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.UserRepository.FindByIDForUpdate(ctx, id)
}

func (r *cachedUserRepository) Save(ctx context.Context, user *entity.User) error {
	persisted := user != nil && user.IsPersisted()
	if err := r.UserRepository.Save(ctx, user); err != nil {
		return err
	}
	if persisted {
		r.evict(ctx, user.ID)
	}

	return nil
}

func (r *cachedUserRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.UserRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)

	return nil
}

func (r *cachedUserRepository) evict(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.WarnContext(ctx, "User cache eviction failed", slog.String("userID", id.String()), slog.Any("error", err))
	}
}
