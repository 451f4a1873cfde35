package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklistModel menampung JWT yang sudah di-logout sebelum expiry-nya.
type TokenBlacklistModel struct {
	TokenBlacklistID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:token_blacklist_id" json:"token_blacklist_id"`

	TokenBlacklistToken     string    `gorm:"type:text;not null;uniqueIndex:uq_token_blacklist_token;column:token_blacklist_token" json:"token_blacklist_token"`
	TokenBlacklistExpiresAt time.Time `gorm:"not null;column:token_blacklist_expires_at" json:"token_blacklist_expires_at"`

	TokenBlacklistCreatedAt time.Time      `gorm:"column:token_blacklist_created_at;autoCreateTime" json:"token_blacklist_created_at"`
	TokenBlacklistDeletedAt gorm.DeletedAt `gorm:"column:token_blacklist_deleted_at;index" json:"token_blacklist_deleted_at,omitempty"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }
