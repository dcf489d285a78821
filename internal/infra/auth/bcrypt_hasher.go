// Package auth provides the password hashing implementation.
package auth

import (
	"context"
	"runtime"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"userhub/config"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/service"
	"userhub/internal/errors"
	"userhub/internal/infra/metrics"

	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// bcryptMaxPasswordBytes is the input size bcrypt can represent.
const bcryptMaxPasswordBytes = 72

// bcryptHasher implements service.PasswordHasher with bcrypt and a configurable strength policy.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
	sem    *semaphore.Weighted
}

// HasherParams holds dependencies for the hasher, injected by Fx.
type HasherParams struct {
	fx.In

	Config *config.Config
}

// NewBcryptHasher builds the hasher from configuration.
func NewBcryptHasher(params HasherParams) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	concurrency := 0
	if params.Config.Auth != nil {
		cost = params.Config.Auth.BcryptCost
		concurrency = params.Config.Auth.HashConcurrency
	}

	policy := config.DefaultPasswordStrength()
	if params.Config.PasswordStrength != nil {
		policy = params.Config.PasswordStrength
	}

	return NewBcryptHasherWithCost(cost, *policy, concurrency)
}

// NewBcryptHasherWithCost builds a hasher with explicit settings.
// Out of range costs fall back to bcrypt.DefaultCost; concurrency <= 0 means GOMAXPROCS.
func NewBcryptHasherWithCost(cost int, policy config.PasswordStrengthConfig, concurrency int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if policy.MaxLength <= 0 || policy.MaxLength > bcryptMaxPasswordBytes {
		policy.MaxLength = bcryptMaxPasswordBytes
	}

	return &bcryptHasher{
		cost:   cost,
		policy: policy,
		sem:    semaphore.NewWeighted(int64(concurrency)),
	}
}

// IsPasswordStrong reports whether password passes every enabled rule.
func (h *bcryptHasher) IsPasswordStrong(password string) bool {
	return h.ValidatePasswordStrength(password) == nil
}

// ValidatePasswordStrength returns ErrPasswordStrength with the first failing rule as details.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if password == "" {
		return domainerrors.ErrPasswordStrength.WithDetails("password is empty")
	}
	if utf8.RuneCountInString(password) < h.policy.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too short")
	}
	if len(password) > h.policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}
	if h.policy.RequireUppercase && !hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs an uppercase letter")
	}
	if h.policy.RequireLowercase && !hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a lowercase letter")
	}
	if h.policy.RequireNumbers && !hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a digit")
	}
	if h.policy.RequireSpecial && !hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a special character")
	}

	return nil
}

// Hash generates a salted bcrypt hash. It waits for a free hashing slot and gives up
// when ctx is cancelled first.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > bcryptMaxPasswordBytes {
		return "", domainerrors.ErrPasswordTooLong.WithDetails("bcrypt accepts at most 72 bytes")
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "waiting for hashing slot")
	}
	defer h.sem.Release(1)

	metrics.PasswordHashesInFlight.Inc()
	defer metrics.PasswordHashesInFlight.Dec()

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	if hash == "" || !strings.HasPrefix(hash, "$2") {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// hasSpecialChars accepts any visible rune that is neither a letter nor a digit.
func hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && unicode.IsPrint(r)
	}) >= 0
}
