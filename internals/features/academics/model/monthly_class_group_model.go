package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/helpers/dbtime"
)

// MonthlyClassGroupModel = rombongan belajar pada satu periode bulanan.
type MonthlyClassGroupModel struct {
	MonthlyClassGroupID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:monthly_class_group_id" json:"monthly_class_group_id"`

	MonthlyClassGroupPeriodID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_monthly_class_groups,priority:1;column:monthly_class_group_period_id" json:"monthly_class_group_period_id"`
	MonthlyClassGroupLevelID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_monthly_class_groups,priority:2;column:monthly_class_group_level_id" json:"monthly_class_group_level_id"`
	MonthlyClassGroupName     string    `gorm:"type:varchar(80);not null;uniqueIndex:uq_monthly_class_groups,priority:3;column:monthly_class_group_name" json:"monthly_class_group_name"`
	MonthlyClassGroupRoomID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_monthly_class_groups,priority:4;column:monthly_class_group_room_id" json:"monthly_class_group_room_id"`

	// jam mulai harian (TIME); nil = grup tanpa jadwal tetap, scan selalu "present"
	MonthlyClassGroupStartTime *dbtime.Tod `gorm:"type:time;column:monthly_class_group_start_time" json:"monthly_class_group_start_time,omitempty"`

	// toleransi keterlambatan (menit); nil = pakai default 45
	MonthlyClassGroupLateGraceMin *int `gorm:"column:monthly_class_group_late_grace_min" json:"monthly_class_group_late_grace_min,omitempty"`

	MonthlyClassGroupCreatedAt time.Time      `gorm:"column:monthly_class_group_created_at;autoCreateTime" json:"monthly_class_group_created_at"`
	MonthlyClassGroupUpdatedAt time.Time      `gorm:"column:monthly_class_group_updated_at;autoUpdateTime" json:"monthly_class_group_updated_at"`
	MonthlyClassGroupDeletedAt gorm.DeletedAt `gorm:"column:monthly_class_group_deleted_at;index" json:"monthly_class_group_deleted_at,omitempty"`
}

func (MonthlyClassGroupModel) TableName() string { return "monthly_class_groups" }

// StartHHMM mengembalikan "HH:MM" untuk classifier, nil jika tanpa jadwal.
func (g MonthlyClassGroupModel) StartHHMM() *string {
	if g.MonthlyClassGroupStartTime == nil {
		return nil
	}
	s := g.MonthlyClassGroupStartTime.Format("15:04")
	return &s
}
