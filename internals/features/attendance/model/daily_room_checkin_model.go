package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status absensi harian
const (
	CheckInStatusPresent = "present"
	CheckInStatusLate    = "late"
	CheckInStatusAbsent  = "absent"
	CheckInStatusExcused = "excused"
)

// Sumber scan
const (
	ScannedBySelf    = "self_scan"
	ScannedByTeacher = "teacher_scan"
)

// DailyRoomCheckInModel = satu siswa, satu ruangan, satu hari.
// Re-scan di hari yang sama menimpa row ini, tidak menambah.
type DailyRoomCheckInModel struct {
	DailyRoomCheckInID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:daily_room_checkin_id" json:"daily_room_checkin_id"`

	DailyRoomCheckInPeriodID uuid.UUID `gorm:"type:uuid;not null;index:idx_daily_room_checkins_period_date;column:daily_room_checkin_period_id" json:"daily_room_checkin_period_id"`

	DailyRoomCheckInDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_daily_room_checkins,priority:1;index:idx_daily_room_checkins_period_date;column:daily_room_checkin_date" json:"daily_room_checkin_date"`
	DailyRoomCheckInRoomID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_daily_room_checkins,priority:2;column:daily_room_checkin_room_id" json:"daily_room_checkin_room_id"`
	DailyRoomCheckInStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_daily_room_checkins,priority:3;column:daily_room_checkin_student_id" json:"daily_room_checkin_student_id"`

	// grup bulanan saat scan; dipakai cek otorisasi guru saat konfirmasi
	DailyRoomCheckInGroupID uuid.UUID `gorm:"type:uuid;not null;index;column:daily_room_checkin_group_id" json:"daily_room_checkin_group_id"`

	DailyRoomCheckInStatus      string `gorm:"type:varchar(12);not null;default:'present';column:daily_room_checkin_status" json:"daily_room_checkin_status"`
	DailyRoomCheckInLateMinutes int    `gorm:"not null;default:0;column:daily_room_checkin_late_minutes" json:"daily_room_checkin_late_minutes"`

	DailyRoomCheckInScannedAt time.Time `gorm:"not null;column:daily_room_checkin_scanned_at" json:"daily_room_checkin_scanned_at"`
	DailyRoomCheckInScannedBy string    `gorm:"type:varchar(12);not null;default:'self_scan';column:daily_room_checkin_scanned_by" json:"daily_room_checkin_scanned_by"`

	DailyRoomCheckInLat *float64 `gorm:"column:daily_room_checkin_lat" json:"daily_room_checkin_lat,omitempty"`
	DailyRoomCheckInLng *float64 `gorm:"column:daily_room_checkin_lng" json:"daily_room_checkin_lng,omitempty"`

	DailyRoomCheckInRequiredConfirmations int `gorm:"not null;default:3;column:daily_room_checkin_required_confirmations" json:"daily_room_checkin_required_confirmations"`

	DailyRoomCheckInCreatedAt time.Time      `gorm:"column:daily_room_checkin_created_at;autoCreateTime" json:"daily_room_checkin_created_at"`
	DailyRoomCheckInUpdatedAt time.Time      `gorm:"column:daily_room_checkin_updated_at;autoUpdateTime" json:"daily_room_checkin_updated_at"`
	DailyRoomCheckInDeletedAt gorm.DeletedAt `gorm:"column:daily_room_checkin_deleted_at;index" json:"daily_room_checkin_deleted_at,omitempty"`
}

func (DailyRoomCheckInModel) TableName() string { return "daily_room_checkins" }
