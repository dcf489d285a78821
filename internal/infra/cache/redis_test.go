package cache

import (
	"context"
	"testing"
	"time"

	"userhub/config"
	"userhub/internal/domain/entity"
	"userhub/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis_MissingAddr(t *testing.T) {
	_, err := ConnectRedis(context.Background(), &config.RedisConfig{})
	assert.Error(t, err)

	_, err = ConnectRedis(context.Background(), nil)
	assert.Error(t, err)
}

func TestConnectRedis_Unreachable(t *testing.T) {
	_, err := ConnectRedis(context.Background(), &config.RedisConfig{
		Addr:    "127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})
	assert.ErrorContains(t, err, "redis ping")
}

func TestRedisUserCache_Key(t *testing.T) {
	id := uuid.MustParse("3f1c8e0a-5b1e-4d4b-9a59-2c8f3f7d9e10")
	c := &redisUserCache{prefix: "userhub:user:"}

	assert.Equal(t, "userhub:user:3f1c8e0a-5b1e-4d4b-9a59-2c8f3f7d9e10", c.key(id))
}

// fakeRedis keeps values in a map and fails every call once err is set.
type fakeRedis struct {
	redis.Cmdable

	values  map[string]string
	ttls    map[string]time.Duration
	err     error
	deleted []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	val, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration

	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.deleted = append(f.deleted, keys...)
	for _, key := range keys {
		delete(f.values, key)
	}

	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisUserCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c := NewRedisUserCache(client, time.Minute, "userhub:user:")
	user := newCachedUser()

	require.NoError(t, c.Set(ctx, user))
	assert.Equal(t, time.Minute, client.ttls["userhub:user:"+user.ID.String()])

	got, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Equal(t, user.Bio, got.Bio)
	assert.Equal(t, user.IsActive, got.IsActive)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, user.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, c.Delete(ctx, user.ID))
	assert.Equal(t, []string{"userhub:user:" + user.ID.String()}, client.deleted)

	_, hit, err = c.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisUserCache_MissIsNotAnError(t *testing.T) {
	c := NewRedisUserCache(newFakeRedis(), time.Minute, "p:")

	got, hit, err := c.Get(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestRedisUserCache_SkipsUnpersisted(t *testing.T) {
	client := newFakeRedis()
	c := NewRedisUserCache(client, time.Minute, "p:")

	require.NoError(t, c.Set(context.Background(), nil))
	require.NoError(t, c.Set(context.Background(), &entity.User{Username: "new"}))
	assert.Empty(t, client.values)
}

func TestRedisUserCache_CorruptEntry(t *testing.T) {
	client := newFakeRedis()
	c := NewRedisUserCache(client, time.Minute, "p:")
	id := uuid.New()
	client.values["p:"+id.String()] = "{not json"

	_, hit, err := c.Get(context.Background(), id)

	assert.False(t, hit)
	assert.ErrorContains(t, err, "decode cached user")
}

func TestRedisUserCache_WrapsClientErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.err = errors.New("connection refused")
	c := NewRedisUserCache(client, time.Minute, "p:")
	user := newCachedUser()

	_, hit, err := c.Get(ctx, user.ID)
	assert.False(t, hit)
	assert.ErrorContains(t, err, "redis get user")
	assert.ErrorContains(t, c.Set(ctx, user), "redis set user")
	assert.ErrorContains(t, c.Delete(ctx, user.ID), "redis delete user")
}
