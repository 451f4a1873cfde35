package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VisitorLogModel = satu kunjungan tamu; check-out mengisi checked_out_at.
type VisitorLogModel struct {
	VisitorLogID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:visitor_log_id" json:"visitor_log_id"`

	VisitorLogName    string  `gorm:"type:varchar(120);not null;column:visitor_log_name" json:"visitor_log_name"`
	VisitorLogPhone   *string `gorm:"type:varchar(30);column:visitor_log_phone" json:"visitor_log_phone,omitempty"`
	VisitorLogPurpose string  `gorm:"type:varchar(255);not null;column:visitor_log_purpose" json:"visitor_log_purpose"`

	// nomor badge yang dipinjamkan di gerbang
	VisitorLogBadge *string `gorm:"type:varchar(30);column:visitor_log_badge" json:"visitor_log_badge,omitempty"`

	// bebas: nomor plat, instansi, siapa yang dikunjungi, dst
	VisitorLogMeta datatypes.JSON `gorm:"type:jsonb;column:visitor_log_meta" json:"visitor_log_meta,omitempty"`

	VisitorLogCheckedInAt  time.Time  `gorm:"type:timestamptz;not null;index:idx_visitor_logs_checked_in;column:visitor_log_checked_in_at" json:"visitor_log_checked_in_at"`
	VisitorLogCheckedOutAt *time.Time `gorm:"type:timestamptz;column:visitor_log_checked_out_at" json:"visitor_log_checked_out_at,omitempty"`

	// petugas gerbang yang mencatat
	VisitorLogRecordedBy uuid.UUID `gorm:"type:uuid;not null;column:visitor_log_recorded_by" json:"visitor_log_recorded_by"`

	VisitorLogCreatedAt time.Time      `gorm:"column:visitor_log_created_at;autoCreateTime" json:"visitor_log_created_at"`
	VisitorLogUpdatedAt time.Time      `gorm:"column:visitor_log_updated_at;autoUpdateTime" json:"visitor_log_updated_at"`
	VisitorLogDeletedAt gorm.DeletedAt `gorm:"column:visitor_log_deleted_at;index" json:"visitor_log_deleted_at,omitempty"`
}

func (VisitorLogModel) TableName() string { return "visitor_logs" }
