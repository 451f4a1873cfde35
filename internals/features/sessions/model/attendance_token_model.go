package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceTokenModel = token opaque satu-ke-satu dengan class session.
// Payload dipakai sebagai isi QR yang ditampilkan guru di kelas.
type AttendanceTokenModel struct {
	AttendanceTokenID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_token_id" json:"attendance_token_id"`

	AttendanceTokenSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_tokens_session;column:attendance_token_session_id" json:"attendance_token_session_id"`

	AttendanceTokenPayload   string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_attendance_tokens_payload;column:attendance_token_payload" json:"attendance_token_payload"`
	AttendanceTokenExpiresAt time.Time `gorm:"type:timestamptz;not null;column:attendance_token_expires_at" json:"attendance_token_expires_at"`

	AttendanceTokenCreatedAt time.Time      `gorm:"column:attendance_token_created_at;autoCreateTime" json:"attendance_token_created_at"`
	AttendanceTokenUpdatedAt time.Time      `gorm:"column:attendance_token_updated_at;autoUpdateTime" json:"attendance_token_updated_at"`
	AttendanceTokenDeletedAt gorm.DeletedAt `gorm:"column:attendance_token_deleted_at;index" json:"attendance_token_deleted_at,omitempty"`
}

func (AttendanceTokenModel) TableName() string { return "attendance_tokens" }
