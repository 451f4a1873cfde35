package model

import (
	"time"

	"github.com/google/uuid"
)

type RefreshTokenModel struct {
	RefreshTokenID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:refresh_token_id" json:"refresh_token_id"`
	RefreshTokenUserID uuid.UUID `gorm:"type:uuid;not null;index;column:refresh_token_user_id" json:"refresh_token_user_id"`

	// simpan HASH token (bukan plaintext)
	RefreshTokenHash []byte `gorm:"type:bytea;not null;column:refresh_token_hash" json:"-"`

	RefreshTokenExpiresAt time.Time  `gorm:"type:timestamptz;not null;column:refresh_token_expires_at" json:"refresh_token_expires_at"`
	RefreshTokenRevokedAt *time.Time `gorm:"type:timestamptz;column:refresh_token_revoked_at" json:"refresh_token_revoked_at,omitempty"`

	RefreshTokenUserAgent *string `gorm:"column:refresh_token_user_agent" json:"refresh_token_user_agent,omitempty"`
	RefreshTokenIP        *string `gorm:"type:inet;column:refresh_token_ip" json:"refresh_token_ip,omitempty"`

	RefreshTokenCreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:refresh_token_created_at" json:"refresh_token_created_at"`
	RefreshTokenUpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:refresh_token_updated_at" json:"refresh_token_updated_at"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }
