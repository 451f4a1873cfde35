package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSessionModel = satu pertemuan terjadwal milik satu grup bulanan.
type ClassSessionModel struct {
	ClassSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_session_id" json:"class_session_id"`

	ClassSessionGroupID uuid.UUID `gorm:"type:uuid;not null;index:idx_class_sessions_group_date;column:class_session_group_id" json:"class_session_group_id"`
	ClassSessionDate    time.Time `gorm:"type:date;not null;index:idx_class_sessions_group_date;column:class_session_date" json:"class_session_date"`

	ClassSessionTopic *string `gorm:"type:varchar(120);column:class_session_topic" json:"class_session_topic,omitempty"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time      `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at;index" json:"class_session_deleted_at,omitempty"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }
