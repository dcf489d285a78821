package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "$2a$10$hash", "bio", created)

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, user.ID)
	assert.False(t, user.IsPersisted())
	assert.True(t, user.IsActive)
	assert.Equal(t, "bio", user.Bio)
	assert.Equal(t, created, user.CreatedAt)
	assert.Equal(t, created, user.UpdatedAt)
}

func TestNewUser_BlankFields(t *testing.T) {
	tests := []struct {
		name                      string
		username, email, password string
		wantField                 string
	}{
		{name: "username", username: "  ", email: "a@example.com", password: "h", wantField: "username"},
		{name: "email", username: "alice", email: "", password: "h", wantField: "email"},
		{name: "hash", username: "alice", email: "a@example.com", password: "\t", wantField: "passwordHash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.username, tt.email, tt.password, "", created)

			assert.Nil(t, user)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBlankField))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestUser_ApplyPatch(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "hash", "old", created)
	require.NoError(t, err)
	later := created.Add(time.Hour)

	patch := UserPatch{Username: "alice2", Email: "alice@example.com", Bio: ""}
	assert.True(t, user.UsernameChanged(patch))
	assert.False(t, user.EmailChanged(patch))

	require.NoError(t, user.ApplyPatch(patch, later))
	assert.Equal(t, "alice2", user.Username)
	assert.Empty(t, user.Bio)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, later, user.UpdatedAt)
	assert.Equal(t, created, user.CreatedAt)
}

func TestUser_ApplyPatch_RejectsBlankAndKeepsState(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "hash", "", created)
	require.NoError(t, err)

	err = user.ApplyPatch(UserPatch{Username: "alice", Email: " "}, created.Add(time.Hour))

	require.Error(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, created, user.UpdatedAt)
}

func TestUser_UpdatedAtNeverPrecedesCreatedAt(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "hash", "", created)
	require.NoError(t, err)

	require.NoError(t, user.ChangePasswordHash("newhash", created.Add(-time.Minute)))

	assert.Equal(t, "newhash", user.PasswordHash)
	assert.Equal(t, created, user.UpdatedAt)
}

func TestUser_ChangePasswordHash_Blank(t *testing.T) {
	user := &User{PasswordHash: "hash", CreatedAt: created, UpdatedAt: created}

	require.Error(t, user.ChangePasswordHash("", created.Add(time.Hour)))
	assert.Equal(t, "hash", user.PasswordHash)
}
