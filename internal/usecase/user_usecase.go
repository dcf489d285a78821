// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"userhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Bio      string
}

// UpdateUserInput defines the replacement values for an existing user.
// An empty Password keeps the current one.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Bio      string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)

	// GetUserByID returns (nil, nil) when no user has the given id.
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	GetAllUsers(ctx context.Context) ([]*entity.User, error)

	// GetUsersWithPagination returns page (zero-based) of size users, newest first.
	GetUsersWithPagination(ctx context.Context, page, size int) ([]*entity.User, error)

	SearchUsersByUsername(ctx context.Context, keyword string) ([]*entity.User, error)
	SearchUsersByEmail(ctx context.Context, keyword string) ([]*entity.User, error)
	CountAllUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser succeeds even when the id does not exist.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
