package postgres

import (
	"testing"

	"userhub/internal/errors"
	"userhub/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantConstraint string
		wantOK         bool
	}{
		{
			name:           "pg username violation",
			err:            &pgconn.PgError{Code: "23505", ConstraintName: model.UsersUsernameKey},
			wantConstraint: model.UsersUsernameKey,
			wantOK:         true,
		},
		{
			name:           "wrapped pg email violation",
			err:            errors.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: model.UsersEmailKey}, "insert"),
			wantConstraint: model.UsersEmailKey,
			wantOK:         true,
		},
		{
			name:   "pg not null violation",
			err:    &pgconn.PgError{Code: "23502"},
			wantOK: false,
		},
		{
			name:   "gorm duplicated key without name",
			err:    gorm.ErrDuplicatedKey,
			wantOK: true,
		},
		{
			name:   "unrelated",
			err:    errors.New("connection refused"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constraint, ok := uniqueViolation(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantConstraint, constraint)
		})
	}
}

func TestNotNullAndCheckViolations(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: "23502"}))
	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "email"`)))
	assert.False(t, isNotNullConstraintViolation(&pgconn.PgError{Code: "23505"}))

	assert.True(t, isCheckConstraintViolation(&pgconn.PgError{Code: "23514"}))
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
	assert.False(t, isCheckConstraintViolation(errors.New("boom")))
}

func TestConstraintFromMessage(t *testing.T) {
	assert.Equal(t, model.UsersEmailKey, constraintFromMessage(`duplicate key value violates unique constraint "uk_users_email"`))
	assert.Equal(t, "", constraintFromMessage("duplicated key not allowed"))
}
