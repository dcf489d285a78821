// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Unique constraint names, shared with the migrations so violations can be attributed to a column.
const (
	UsersUsernameKey = "uk_users_username"
	UsersEmailKey    = "uk_users_email"
)

// UserModel mirrors the 'users' table. Timestamps are owned by the service, so GORM's
// automatic time tracking is switched off.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex:uk_users_username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uk_users_email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Bio          string    `gorm:"type:text"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false;index:idx_users_created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
