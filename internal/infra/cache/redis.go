package cache

import (
	"context"
	"encoding/json"
	"time"

	"userhub/config"
	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"
	"userhub/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 5 * time.Second

// cachedUser is the JSON document stored under each key.
type cachedUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Bio          string    `json:"bio"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type redisUserCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// ConnectRedis creates a client and validates connectivity with a ping.
func ConnectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis address is not configured")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "redis ping")
	}

	return client, nil
}

// NewRedisUserCache stores users as JSON under prefix+id.
func NewRedisUserCache(client redis.Cmdable, ttl time.Duration, prefix string) repository.UserCache {
	return &redisUserCache{client: client, ttl: ttl, prefix: prefix}
}

func (c *redisUserCache) Get(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "redis get user")
	}

	var doc cachedUser
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, errors.Wrap(err, "decode cached user")
	}

	return &entity.User{
		ID:           doc.ID,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Bio:          doc.Bio,
		IsActive:     doc.IsActive,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, true, nil
}

func (c *redisUserCache) Set(ctx context.Context, user *entity.User) error {
	if user == nil || !user.IsPersisted() {
		return nil
	}

	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Bio:          user.Bio,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "encode cached user")
	}

	return errors.Wrap(c.client.Set(ctx, c.key(user.ID), raw, c.ttl).Err(), "redis set user")
}

func (c *redisUserCache) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(c.client.Del(ctx, c.key(id)).Err(), "redis delete user")
}

func (c *redisUserCache) key(id uuid.UUID) string {
	return c.prefix + id.String()
}
