// Package service defines interfaces for domain services implemented in the infra layer.
package service

import "context"

// PasswordHasher hashes and verifies passwords and owns the strength policy.
type PasswordHasher interface {
	// IsPasswordStrong reports whether password satisfies every strength rule. It never fails.
	IsPasswordStrong(password string) bool

	// ValidatePasswordStrength returns an error naming the first rule the password breaks.
	ValidatePasswordStrength(password string) error

	// Hash generates a salted hash. Two calls with the same input return different hashes.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a hash. Empty or malformed input yields false.
	Check(password, hash string) bool
}
