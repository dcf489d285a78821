package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"userhub/config"
	"userhub/internal/domain/entity"
	mockRepo "userhub/internal/mocks/repository"
	mockSvc "userhub/internal/mocks/service"
	"userhub/internal/usecase"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

const strongPassword = "Str0ng!Pass"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxPageSize int) *config.Config {
	return &config.Config{
		Pagination: &config.PaginationConfig{
			DefaultSize: 10,
			MaxSize:     maxPageSize,
		},
	}
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockSvc.MockPasswordHasher
	publisher *mockSvc.MockEventPublisher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	svc := NewUserService(UserServiceParams{
		UserRepo:  userRepo,
		Hasher:    hasher,
		Publisher: publisher,
		Config:    newTestConfig(100),
		Logger:    newDiscardLogger(),
	})
	svc.(*userService).now = func() time.Time { return fixedNow }

	return userServiceFixtures{
		service:   svc,
		userRepo:  userRepo,
		hasher:    hasher,
		publisher: publisher,
	}
}

func newStoredUser(username, email string) *entity.User {
	created := fixedNow.Add(-24 * time.Hour)

	return &entity.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$stored",
		Bio:          "old bio",
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}
