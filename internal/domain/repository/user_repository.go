// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"userhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned by single-user lookups when no row matches.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the storage operations the user service relies on.
// Multi-row results for search and paging are ordered by creation time, newest first.
type UserRepository interface {
	// FindByID retrieves a single user by ID or returns ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIDForUpdate reads the user from the primary, bypassing any cache, so the row a write
	// starts from is current. Returns ErrUserNotFound when absent.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by exact username or returns ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a single user by exact email or returns ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByUsernameContaining performs a case-insensitive substring match. An empty keyword matches every user.
	FindByUsernameContaining(ctx context.Context, keyword string) ([]*entity.User, error)

	// FindByEmailContaining performs a case-insensitive substring match. An empty keyword matches every user.
	FindByEmailContaining(ctx context.Context, keyword string) ([]*entity.User, error)

	FindAllPaged(ctx context.Context, limit, offset int) ([]*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)

	// Save inserts the user when it has no ID yet and updates it otherwise.
	// On insert the generated ID is written back into user.
	// Unique violations surface as conflict errors from the domain errors package.
	Save(ctx context.Context, user *entity.User) error

	// DeleteByID removes the user. Deleting a missing ID is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
