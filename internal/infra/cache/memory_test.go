package cache

import (
	"context"
	"testing"
	"time"

	"userhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedUser() *entity.User {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	return &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Bio:          "hello",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMemoryUserCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryUserCache(time.Minute, time.Minute)
	user := newCachedUser()

	_, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, user))

	got, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, user, got)

	require.NoError(t, c.Delete(ctx, user.ID))
	_, hit, _ = c.Get(ctx, user.ID)
	assert.False(t, hit)
}

func TestMemoryUserCache_StoresCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryUserCache(time.Minute, time.Minute)
	user := newCachedUser()
	require.NoError(t, c.Set(ctx, user))

	user.Username = "mutated"

	got, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "alice", got.Username)
}

func TestMemoryUserCache_IgnoresUnpersisted(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryUserCache(time.Minute, time.Minute)

	assert.NoError(t, c.Set(ctx, nil))
	assert.NoError(t, c.Set(ctx, &entity.User{Username: "new"}))

	_, hit, err := c.Get(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryUserCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryUserCache(10*time.Millisecond, time.Minute)
	user := newCachedUser()
	require.NoError(t, c.Set(ctx, user))

	time.Sleep(20 * time.Millisecond)

	_, hit, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, hit)
}
