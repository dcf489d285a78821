package impl

import (
	"context"
	"testing"

	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	mockRepo "userhub/internal/mocks/repository"
	"userhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockRepoForDelete(t *testing.T) *mockRepo.MockUserRepository {
	userRepo := mockRepo.NewMockUserRepository(t)
	userRepo.EXPECT().DeleteByID(mock.Anything, mock.Anything).Return(nil).Once()

	return userRepo
}

func TestUserService_UpdateUser_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")
	created := stored.CreatedAt
	input := &usecase.UpdateUserInput{Username: "alice2", Email: "alice2@example.com", Bio: "new bio"}

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.userRepo.EXPECT().ExistsByUsername(ctx, "alice2").Return(false, nil).Once()
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "alice2@example.com").Return(false, nil).Once()
	fx.userRepo.EXPECT().Save(ctx, stored).Return(nil).Once()
	fx.publisher.EXPECT().
		PublishUserEvent(ctx, mock.MatchedBy(func(e *service.UserEvent) bool {
			return e.Type == service.UserEventUpdated && e.UserID == stored.ID.String()
		})).
		Return(nil).
		Once()

	user, err := fx.service.UpdateUser(ctx, stored.ID, input)

	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "alice2@example.com", user.Email)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "$2a$10$stored", user.PasswordHash)
	assert.Equal(t, created, user.CreatedAt)
	assert.Equal(t, fixedNow, user.UpdatedAt)
	assert.True(t, user.IsActive)
}

func TestUserService_UpdateUser_UnchangedSkipsUniquenessChecks(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")
	input := &usecase.UpdateUserInput{Username: "alice", Email: "alice@example.com", Bio: ""}

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.userRepo.EXPECT().Save(ctx, stored).Return(nil).Once()
	fx.publisher.EXPECT().PublishUserEvent(ctx, mock.Anything).Return(nil).Once()

	user, err := fx.service.UpdateUser(ctx, stored.ID, input)

	require.NoError(t, err)
	assert.Empty(t, user.Bio)
	fx.userRepo.AssertNotCalled(t, "ExistsByUsername", mock.Anything, mock.Anything)
	fx.userRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, id).Return(nil, repository.ErrUserNotFound).Once()

	user, err := fx.service.UpdateUser(ctx, id, &usecase.UpdateUserInput{Username: "x", Email: "x@x.io"})

	assert.Nil(t, user)
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
	assert.Equal(t, "user does not exist", err.Error())
}

func TestUserService_UpdateUser_UsernameTaken(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.userRepo.EXPECT().ExistsByUsername(ctx, "bob").Return(true, nil).Once()

	_, err := fx.service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{Username: "bob", Email: "bob@example.com"})

	require.ErrorIs(t, err, domainerrors.ErrUsernameAlreadyExists)
	assert.Equal(t, "username already exists", err.Error())
	fx.userRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	fx.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_EmailTaken(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "bob@example.com").Return(true, nil).Once()

	_, err := fx.service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{Username: "alice", Email: "bob@example.com"})

	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
	assert.Equal(t, "email already exists", err.Error())
}

func TestUserService_UpdateUser_WithPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")
	input := &usecase.UpdateUserInput{Username: "alice", Email: "alice@example.com", Password: strongPassword}

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.hasher.EXPECT().IsPasswordStrong(strongPassword).Return(true).Once()
	fx.hasher.EXPECT().Hash(ctx, strongPassword).Return("$2a$10$rehashed", nil).Once()
	fx.userRepo.EXPECT().Save(ctx, stored).Return(nil).Once()
	fx.publisher.EXPECT().PublishUserEvent(ctx, mock.Anything).Return(nil).Once()

	user, err := fx.service.UpdateUser(ctx, stored.ID, input)

	require.NoError(t, err)
	assert.Equal(t, "$2a$10$rehashed", user.PasswordHash)
}

func TestUserService_UpdateUser_WeakPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")
	input := &usecase.UpdateUserInput{Username: "alice", Email: "alice@example.com", Password: "short"}

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.hasher.EXPECT().IsPasswordStrong("short").Return(false).Once()
	fx.hasher.EXPECT().ValidatePasswordStrength("short").Return(nil).Once()

	_, err := fx.service.UpdateUser(ctx, stored.ID, input)

	require.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
	fx.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_RowVanished(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.userRepo.EXPECT().Save(ctx, stored).Return(repository.ErrUserNotFound).Once()

	_, err := fx.service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{Username: "alice", Email: "alice@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateUser_BlankEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	stored := newStoredUser("alice", "alice@example.com")

	fx.userRepo.EXPECT().FindByIDForUpdate(ctx, stored.ID).Return(stored, nil).Once()
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "").Return(false, nil).Once()

	_, err := fx.service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{Username: "alice", Email: ""})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_DeleteUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.userRepo.EXPECT().DeleteByID(ctx, id).Return(nil).Once()
	fx.publisher.EXPECT().
		PublishUserEvent(ctx, mock.MatchedBy(func(e *service.UserEvent) bool {
			return e.Type == service.UserEventDeleted && e.UserID == id.String()
		})).
		Return(nil).
		Once()

	assert.NoError(t, fx.service.DeleteUser(ctx, id))
}

func TestUserService_DeleteUser_StorageFailure(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.userRepo.EXPECT().DeleteByID(ctx, id).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("disk full"), "failed to delete user")).
		Once()

	err := fx.service.DeleteUser(ctx, id)

	require.Error(t, err)
	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
	fx.publisher.AssertNotCalled(t, "PublishUserEvent", mock.Anything, mock.Anything)
}

func TestUserService_NilInput(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	_, err := fx.service.CreateUser(ctx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.UpdateUser(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
