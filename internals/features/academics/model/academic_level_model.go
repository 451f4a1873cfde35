package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicLevelModel struct {
	AcademicLevelID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_level_id" json:"academic_level_id"`

	AcademicLevelName  string `gorm:"type:varchar(80);not null;uniqueIndex:uq_academic_levels_name;column:academic_level_name" json:"academic_level_name"`
	AcademicLevelOrder int    `gorm:"not null;default:0;column:academic_level_order" json:"academic_level_order"`

	AcademicLevelCreatedAt time.Time      `gorm:"column:academic_level_created_at;autoCreateTime" json:"academic_level_created_at"`
	AcademicLevelUpdatedAt time.Time      `gorm:"column:academic_level_updated_at;autoUpdateTime" json:"academic_level_updated_at"`
	AcademicLevelDeletedAt gorm.DeletedAt `gorm:"column:academic_level_deleted_at;index" json:"academic_level_deleted_at,omitempty"`
}

func (AcademicLevelModel) TableName() string { return "academic_levels" }
