// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/errors"
	"userhub/internal/infra/persistence/model"
	"userhub/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const newestFirst = "created_at DESC, id DESC"

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.first(ctx, "find user by id", "id = ?", id)
}

// FindByIDForUpdate reads from the primary so replica lag cannot hand a write stale columns.
func (repo *userRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.firstFrom(repo.db.WithContext(ctx).Clauses(dbresolver.Write), "find user by id", "id = ?", id)
}

// FindByUsername retrieves a single user by exact username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.first(ctx, "find user by username", "username = ?", username)
}

// FindByEmail retrieves a single user by exact email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.first(ctx, "find user by email", "email = ?", email)
}

// ExistsByUsername reads from the primary so a user created moments ago is visible.
func (repo *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "username = ?", username)
}

// ExistsByEmail reads from the primary so a user created moments ago is visible.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "email = ?", email)
}

func (repo *userRepository) FindByUsernameContaining(ctx context.Context, keyword string) ([]*entity.User, error) {
	return repo.search(ctx, "username", keyword)
}

func (repo *userRepository) FindByEmailContaining(ctx context.Context, keyword string) ([]*entity.User, error) {
	return repo.search(ctx, "email", keyword)
}

// FindAllPaged returns up to limit users, newest first, skipping offset rows.
func (repo *userRepository) FindAllPaged(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var rows []*model.UserModel
	err := repo.db.WithContext(ctx).
		Order(newestFirst).
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users page")
	}

	return toUserDomains(rows), nil
}

// FindAll returns every user in storage order.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var rows []*model.UserModel
	if err := repo.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	return toUserDomains(rows), nil
}

// CountAll returns the number of rows in users.
func (repo *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count users")
	}

	return count, nil
}

// Save inserts a new user or updates an existing one.
func (repo *userRepository) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user must not be nil")
	}
	if user.IsPersisted() {
		return repo.update(ctx, user)
	}

	return repo.create(ctx, user)
}

// DeleteByID removes the row. A missing row is not an error.
func (repo *userRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	return nil
}

func (repo *userRepository) create(ctx context.Context, user *entity.User) error {
	id, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "generate user id")
	}

	userM := fromUserDomain(user)
	userM.ID = id

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateWriteError(err, "failed to create user")
	}

	user.ID = userM.ID

	return nil
}

func (repo *userRepository) update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	// Select("*") writes zero values too; Omit keeps the immutable columns out of the SET list.
	result := repo.db.WithContext(ctx).
		Model(userM).
		Select("*").
		Omit("id", "created_at").
		Updates(userM)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) first(ctx context.Context, op string, query string, arg any) (*entity.User, error) {
	return repo.firstFrom(repo.db.WithContext(ctx), op, query, arg)
}

func (repo *userRepository) firstFrom(tx *gorm.DB, op string, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	err := tx.Where(query, arg).Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to "+op)
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.UserModel{}).
		Where(query, arg).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check user existence")
	}

	return count > 0, nil
}

func (repo *userRepository) search(ctx context.Context, column, keyword string) ([]*entity.User, error) {
	var rows []*model.UserModel
	err := repo.db.WithContext(ctx).
		Where(column+" ILIKE ?", util.ContainsPattern(keyword)).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to search users by "+column)
	}

	return toUserDomains(rows), nil
}

// translateWriteError maps constraint violations onto domain errors.
func translateWriteError(err error, details string) error {
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case model.UsersUsernameKey:
			return domainerrors.ErrUsernameAlreadyExists.WrapMessage(details)
		case model.UsersEmailKey:
			return domainerrors.ErrEmailAlreadyExists.WrapMessage(details)
		default:
			return domainerrors.ErrUserAlreadyExists.WrapMessage(details)
		}
	}
	if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Bio:          data.Bio,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toUserDomains(rows []*model.UserModel) []*entity.User {
	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUserDomain(row))
	}

	return users
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Bio:          data.Bio,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
