package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"userhub/config"
	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"
	"userhub/internal/infra/auth"
	"userhub/internal/infra/cache"
	"userhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// sharedUserStore is an in-memory UserRepository standing in for the one database all replicas use.
type sharedUserStore struct {
	repository.UserRepository

	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newSharedUserStore() *sharedUserStore {
	return &sharedUserStore{users: make(map[uuid.UUID]entity.User)}
}

func (s *sharedUserStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (s *sharedUserStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.FindByID(ctx, id)
}

func (s *sharedUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return s.exists(func(u entity.User) bool { return u.Username == username }), nil
}

func (s *sharedUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return s.exists(func(u entity.User) bool { return u.Email == email }), nil
}

func (s *sharedUserStore) Save(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !user.IsPersisted() {
		user.ID = uuid.New()
	} else if _, ok := s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	s.users[user.ID] = *user

	return nil
}

func (s *sharedUserStore) exists(match func(entity.User) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if match(u) {
			return true
		}
	}

	return false
}

// newReplica builds a service with its own process-local cache over the shared store.
func newReplica(store repository.UserRepository) usecase.UserUsecase {
	logger := newDiscardLogger()

	return NewUserService(UserServiceParams{
		UserRepo: cache.WrapUserRepository(store, cache.NewMemoryUserCache(time.Hour, time.Hour), logger),
		Hasher:   auth.NewBcryptHasherWithCost(bcrypt.MinCost, *config.DefaultPasswordStrength(), 2),
		Config:   newTestConfig(100),
		Logger:   logger,
	})
}

func TestUserService_UpdateUser_IgnoresStaleCacheAcrossReplicas(t *testing.T) {
	ctx := context.Background()
	store := newSharedUserStore()
	first := newReplica(store)
	second := newReplica(store)

	created, err := first.CreateUser(ctx, &usecase.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "OldPass1!",
	})
	require.NoError(t, err)

	// Warm the first replica's cache with the original hash.
	cached, err := first.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)

	_, err = second.UpdateUser(ctx, created.ID, &usecase.UpdateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "NewPass1!",
	})
	require.NoError(t, err)

	_, err = first.UpdateUser(ctx, created.ID, &usecase.UpdateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Bio:      "only the bio changes",
	})
	require.NoError(t, err)

	stored, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "only the bio changes", stored.Bio)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("NewPass1!")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("OldPass1!")))
}
