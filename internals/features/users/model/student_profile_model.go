package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentProfileModel struct {
	StudentProfileID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_profile_id" json:"student_profile_id"`

	StudentProfileUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_profiles_user;column:student_profile_user_id" json:"student_profile_user_id"`

	// kode di kartu siswa, dipakai QR ABC1/ABC2/ABCSTU
	StudentProfileStudentCode string `gorm:"type:varchar(30);not null;uniqueIndex:uq_student_profiles_code;column:student_profile_student_code" json:"student_profile_student_code"`

	// quick fields, disinkronkan saat QR-enroll (sumber kebenaran tetap enrollment)
	StudentProfileCurrentLevel *string `gorm:"type:varchar(80);column:student_profile_current_level" json:"student_profile_current_level,omitempty"`
	StudentProfileGroupName    *string `gorm:"type:varchar(80);column:student_profile_group_name" json:"student_profile_group_name,omitempty"`

	// lokasi terakhir, diupdate tiap scan yang membawa koordinat
	StudentProfileLastLat    *float64   `gorm:"column:student_profile_last_lat" json:"student_profile_last_lat,omitempty"`
	StudentProfileLastLng    *float64   `gorm:"column:student_profile_last_lng" json:"student_profile_last_lng,omitempty"`
	StudentProfileLastSeenAt *time.Time `gorm:"column:student_profile_last_seen_at" json:"student_profile_last_seen_at,omitempty"`

	StudentProfileCreatedAt time.Time      `gorm:"column:student_profile_created_at;autoCreateTime" json:"student_profile_created_at"`
	StudentProfileUpdatedAt time.Time      `gorm:"column:student_profile_updated_at;autoUpdateTime" json:"student_profile_updated_at"`
	StudentProfileDeletedAt gorm.DeletedAt `gorm:"column:student_profile_deleted_at;index" json:"student_profile_deleted_at,omitempty"`
}

func (StudentProfileModel) TableName() string { return "student_profiles" }
