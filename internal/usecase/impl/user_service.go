// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"userhub/config"
	deliverycontext "userhub/internal/delivery/context"
	"userhub/internal/domain/constants"
	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	"userhub/internal/infra/metrics"
	"userhub/internal/usecase"
	"userhub/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Operation names used for metrics labels.
const (
	opCreate      = "create"
	opGet         = "get"
	opList        = "list"
	opPage        = "page"
	opSearchName  = "search_username"
	opSearchEmail = "search_email"
	opCount       = "count"
	opUpdate      = "update"
	opDelete      = "delete"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo    repository.UserRepository
	hasher      service.PasswordHasher
	publisher   service.EventPublisher
	maxPageSize int
	now         func() time.Time
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Publisher service.EventPublisher `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	maxPageSize := constants.MaxPageSize
	if params.Config != nil && params.Config.Pagination != nil && params.Config.Pagination.MaxSize > 0 {
		maxPageSize = params.Config.Pagination.MaxSize
	}

	return &userService{
		userRepo:    params.UserRepo,
		hasher:      params.Hasher,
		publisher:   params.Publisher,
		maxPageSize: maxPageSize,
		now:         time.Now,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// observe records the outcome of one operation, labelled by error kind on failure.
func observe(operation string, started time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = string(domainerrors.KindOf(err))
	}
	metrics.ObserveOperation(operation, outcome, started)
}

// CreateUser runs the uniqueness checks, the password policy and hashing, then persists.
// Nothing is written when any step fails.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (user *entity.User, err error) {
	defer func(started time.Time) { observe(opCreate, started, err) }(time.Now())

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}

	srv.log(ctx).Info("Creating user", slog.String("username", input.Username), slog.String("email", input.Email))

	taken, err := srv.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check username")
	}
	if taken {
		return nil, domainerrors.ErrUserAlreadyExists
	}

	taken, err = srv.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if taken {
		return nil, domainerrors.ErrUserAlreadyExists
	}

	hash, err := srv.hashPassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	user, err = entity.NewUser(input.Username, input.Email, hash, input.Bio, srv.now())
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := srv.userRepo.Save(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to save user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save user")
	}

	srv.log(ctx).Info("User created", slog.String("userID", user.ID.String()))
	srv.publish(ctx, service.UserEventCreated, user)

	return user, nil
}

// GetUserByID returns (nil, nil) when the user does not exist.
func (srv *userService) GetUserByID(ctx context.Context, id uuid.UUID) (user *entity.User, err error) {
	defer func(started time.Time) { observe(opGet, started, err) }(time.Now())

	user, err = srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Debug("User not found", slog.String("userID", id.String()))

		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *userService) GetAllUsers(ctx context.Context) (users []*entity.User, err error) {
	defer func(started time.Time) { observe(opList, started, err) }(time.Now())

	users, err = srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUsersWithPagination returns one zero-based page, newest first.
func (srv *userService) GetUsersWithPagination(ctx context.Context, page, size int) (users []*entity.User, err error) {
	defer func(started time.Time) { observe(opPage, started, err) }(time.Now())

	if page < 0 || size <= 0 {
		return nil, domainerrors.ErrInvalidPagination
	}
	if size > srv.maxPageSize {
		return nil, domainerrors.ErrInvalidPagination.WithDetails("size exceeds the maximum page size")
	}
	if page > math.MaxInt/size {
		return nil, domainerrors.ErrInvalidPagination.WithDetails("page is out of range")
	}

	users, err = srv.userRepo.FindAllPaged(ctx, size, util.Offset(page, size))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users page")
	}

	return users, nil
}

func (srv *userService) SearchUsersByUsername(ctx context.Context, keyword string) (users []*entity.User, err error) {
	defer func(started time.Time) { observe(opSearchName, started, err) }(time.Now())

	users, err = srv.userRepo.FindByUsernameContaining(ctx, keyword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users by username")
	}

	return users, nil
}

func (srv *userService) SearchUsersByEmail(ctx context.Context, keyword string) (users []*entity.User, err error) {
	defer func(started time.Time) { observe(opSearchEmail, started, err) }(time.Now())

	users, err = srv.userRepo.FindByEmailContaining(ctx, keyword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users by email")
	}

	return users, nil
}

func (srv *userService) CountAllUsers(ctx context.Context) (count int64, err error) {
	defer func(started time.Time) { observe(opCount, started, err) }(time.Now())

	count, err = srv.userRepo.CountAll(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// UpdateUser overwrites username, email and bio, and replaces the password when one is given.
// Uniqueness is only checked for values that actually change.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (user *entity.User, err error) {
	defer func(started time.Time) { observe(opUpdate, started, err) }(time.Now())

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}

	// Cached copies may carry a stale password hash; Save writes every column.
	user, err = srv.userRepo.FindByIDForUpdate(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	patch := entity.UserPatch{
		Username: input.Username,
		Email:    input.Email,
		Bio:      input.Bio,
		Password: input.Password,
	}

	if user.UsernameChanged(patch) {
		taken, err := srv.userRepo.ExistsByUsername(ctx, patch.Username)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check username")
		}
		if taken {
			return nil, domainerrors.ErrUsernameAlreadyExists
		}
	}

	if user.EmailChanged(patch) {
		taken, err := srv.userRepo.ExistsByEmail(ctx, patch.Email)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check email")
		}
		if taken {
			return nil, domainerrors.ErrEmailAlreadyExists
		}
	}

	now := srv.now()
	if err := user.ApplyPatch(patch, now); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if patch.Password != "" {
		hash, err := srv.hashPassword(ctx, patch.Password)
		if err != nil {
			return nil, err
		}
		if err := user.ChangePasswordHash(hash, now); err != nil {
			return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}
	}

	if err := srv.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		srv.log(ctx).Error("Failed to update user", slog.String("userID", id.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.String("userID", id.String()))
	srv.publish(ctx, service.UserEventUpdated, user)

	return user, nil
}

// DeleteUser is idempotent: deleting an unknown id succeeds.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) (err error) {
	defer func(started time.Time) { observe(opDelete, started, err) }(time.Now())

	if err := srv.userRepo.DeleteByID(ctx, id); err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.String("userID", id.String()), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id.String()))
	srv.publish(ctx, service.UserEventDeleted, &entity.User{ID: id})

	return nil
}

// hashPassword enforces the strength policy and hashes the password.
func (srv *userService) hashPassword(ctx context.Context, password string) (string, error) {
	if !srv.hasher.IsPasswordStrong(password) {
		if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
			return "", err
		}

		return "", domainerrors.ErrPasswordStrength
	}

	hash, err := srv.hasher.Hash(ctx, password)
	if err != nil {
		if domainerrors.KindOf(err) == domainerrors.KindInvalidArgument {
			return "", err
		}
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return hash, nil
}

// publish emits a lifecycle event. Failures are logged and never reach the caller.
func (srv *userService) publish(ctx context.Context, eventType service.UserEventType, user *entity.User) {
	if srv.publisher == nil {
		return
	}

	event := &service.UserEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     user.ID.String(),
		Username:   user.Username,
		Email:      user.Email,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishUserEvent(ctx, event); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(string(eventType), metrics.OutcomeError).Inc()
		srv.log(ctx).Warn("Failed to publish user event",
			slog.String("type", string(eventType)),
			slog.String("userID", event.UserID),
			slog.Any("error", err),
		)

		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(string(eventType), metrics.OutcomeSuccess).Inc()
}
