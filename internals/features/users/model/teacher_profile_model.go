package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherProfileModel struct {
	TeacherProfileID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teacher_profile_id" json:"teacher_profile_id"`

	TeacherProfileUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_profiles_user;column:teacher_profile_user_id" json:"teacher_profile_user_id"`

	TeacherProfileTeacherCode *string `gorm:"type:varchar(30);column:teacher_profile_teacher_code" json:"teacher_profile_teacher_code,omitempty"`
	TeacherProfileIsActive    bool    `gorm:"not null;default:true;column:teacher_profile_is_active" json:"teacher_profile_is_active"`

	TeacherProfileCreatedAt time.Time      `gorm:"column:teacher_profile_created_at;autoCreateTime" json:"teacher_profile_created_at"`
	TeacherProfileUpdatedAt time.Time      `gorm:"column:teacher_profile_updated_at;autoUpdateTime" json:"teacher_profile_updated_at"`
	TeacherProfileDeletedAt gorm.DeletedAt `gorm:"column:teacher_profile_deleted_at;index" json:"teacher_profile_deleted_at,omitempty"`
}

func (TeacherProfileModel) TableName() string { return "teacher_profiles" }
