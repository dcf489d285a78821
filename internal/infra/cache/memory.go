package cache

import (
	"context"
	"time"

	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type memoryUserCache struct {
	store *gocache.Cache
}

// NewMemoryUserCache keeps users in process memory for ttl.
func NewMemoryUserCache(ttl, cleanupInterval time.Duration) repository.UserCache {
	return &memoryUserCache{store: gocache.New(ttl, cleanupInterval)}
}

func (c *memoryUserCache) Get(_ context.Context, id uuid.UUID) (*entity.User, bool, error) {
	val, ok := c.store.Get(id.String())
	if !ok {
		return nil, false, nil
	}
	user, ok := val.(entity.User)
	if !ok {
		c.store.Delete(id.String())

		return nil, false, nil
	}

	return &user, true, nil
}

// Set stores a copy so later mutations by the caller do not leak into the cache.
func (c *memoryUserCache) Set(_ context.Context, user *entity.User) error {
	if user == nil || !user.IsPersisted() {
		return nil
	}
	c.store.Set(user.ID.String(), *user, gocache.DefaultExpiration)

	return nil
}

func (c *memoryUserCache) Delete(_ context.Context, id uuid.UUID) error {
	c.store.Delete(id.String())

	return nil
}
