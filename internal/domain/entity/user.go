// Package entity contains the core business objects of userhub.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrBlankField is returned when a required user field is empty or whitespace only.
var ErrBlankField = errors.New("field must not be blank")

// User is the single account entity managed by the service.
type User struct {
	ID           uuid.UUID // Assigned by storage; uuid.Nil until persisted.
	Username     string    // Unique, exact-match.
	Email        string    // Unique, exact-match.
	PasswordHash string    // Bcrypt output, never the raw password.
	Bio          string
	IsActive     bool
	CreatedAt    time.Time // Immutable after creation.
	UpdatedAt    time.Time // Refreshed on every mutation.
}

// UserPatch carries the caller-supplied values for an update.
// An empty Password leaves the stored hash untouched.
type UserPatch struct {
	Username string
	Email    string
	Bio      string
	Password string
}

// NewUser builds an active, not yet persisted user stamped with now.
func NewUser(username, email, passwordHash, bio string, now time.Time) (*User, error) {
	if err := requireNotBlank("username", username); err != nil {
		return nil, err
	}
	if err := requireNotBlank("email", email); err != nil {
		return nil, err
	}
	if err := requireNotBlank("passwordHash", passwordHash); err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Bio:          bio,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsPersisted reports whether storage has assigned an identity.
func (u *User) IsPersisted() bool {
	return u.ID != uuid.Nil
}

// UsernameChanged reports whether the patch renames the user.
func (u *User) UsernameChanged(p UserPatch) bool {
	return u.Username != p.Username
}

// EmailChanged reports whether the patch changes the email.
func (u *User) EmailChanged(p UserPatch) bool {
	return u.Email != p.Email
}

// ApplyPatch overwrites username, email and bio. Password handling is left to the caller
// because it needs hashing first.
func (u *User) ApplyPatch(p UserPatch, now time.Time) error {
	if err := requireNotBlank("username", p.Username); err != nil {
		return err
	}
	if err := requireNotBlank("email", p.Email); err != nil {
		return err
	}

	u.Username = p.Username
	u.Email = p.Email
	u.Bio = p.Bio
	u.touch(now)

	return nil
}

// ChangePasswordHash replaces the stored hash.
func (u *User) ChangePasswordHash(hash string, now time.Time) error {
	if err := requireNotBlank("passwordHash", hash); err != nil {
		return err
	}

	u.PasswordHash = hash
	u.touch(now)

	return nil
}

// touch keeps updatedAt monotonic with respect to createdAt.
func (u *User) touch(now time.Time) {
	if now.Before(u.CreatedAt) {
		now = u.CreatedAt
	}
	u.UpdatedAt = now
}

func requireNotBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Wrap(ErrBlankField, field)
	}

	return nil
}
