package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyRoomCheckInApprovalModel = suara satu guru atas satu check-in.
// Keputusan susulan menimpa yang lama (unique checkin+teacher).
type DailyRoomCheckInApprovalModel struct {
	DailyRoomCheckInApprovalID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:daily_room_checkin_approval_id" json:"daily_room_checkin_approval_id"`

	DailyRoomCheckInApprovalCheckInID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_daily_room_checkin_approvals,priority:1;column:daily_room_checkin_approval_checkin_id" json:"daily_room_checkin_approval_checkin_id"`
	DailyRoomCheckInApprovalTeacherID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_daily_room_checkin_approvals,priority:2;column:daily_room_checkin_approval_teacher_id" json:"daily_room_checkin_approval_teacher_id"`

	DailyRoomCheckInApprovalApproved bool    `gorm:"not null;column:daily_room_checkin_approval_approved" json:"daily_room_checkin_approval_approved"`
	DailyRoomCheckInApprovalNote     *string `gorm:"type:varchar(255);column:daily_room_checkin_approval_note" json:"daily_room_checkin_approval_note,omitempty"`

	DailyRoomCheckInApprovalDecidedAt time.Time `gorm:"not null;column:daily_room_checkin_approval_decided_at" json:"daily_room_checkin_approval_decided_at"`

	DailyRoomCheckInApprovalCreatedAt time.Time      `gorm:"column:daily_room_checkin_approval_created_at;autoCreateTime" json:"daily_room_checkin_approval_created_at"`
	DailyRoomCheckInApprovalUpdatedAt time.Time      `gorm:"column:daily_room_checkin_approval_updated_at;autoUpdateTime" json:"daily_room_checkin_approval_updated_at"`
	DailyRoomCheckInApprovalDeletedAt gorm.DeletedAt `gorm:"column:daily_room_checkin_approval_deleted_at;index" json:"daily_room_checkin_approval_deleted_at,omitempty"`
}

func (DailyRoomCheckInApprovalModel) TableName() string { return "daily_room_checkin_approvals" }
