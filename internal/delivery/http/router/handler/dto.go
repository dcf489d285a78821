package handler

import (
	"time"

	"userhub/internal/domain/entity"
	"userhub/internal/usecase"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	Bio      string `json:"bio" validate:"max=500"`
}

func (r *CreateUserRequest) toInput() *usecase.CreateUserInput {
	return &usecase.CreateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Bio:      r.Bio,
	}
}

// UpdateUserRequest is the body of PUT /api/users/:id. An empty password keeps the current one.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password"`
	Bio      string `json:"bio" validate:"max=500"`
}

func (r *UpdateUserRequest) toInput() *usecase.UpdateUserInput {
	return &usecase.UpdateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Bio:      r.Bio,
	}
}

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CountResponse wraps the total number of users.
type CountResponse struct {
	Count int64 `json:"count"`
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}
