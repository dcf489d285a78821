package repository

import (
	"context"

	"userhub/internal/domain/entity"

	"github.com/google/uuid"
)

// UserCache stores single users by ID in front of a UserRepository.
type UserCache interface {
	// Get returns the cached user and true on a hit.
	Get(ctx context.Context, id uuid.UUID) (*entity.User, bool, error)
	Set(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
