package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolCampusModel menyimpan titik pusat + radius geofence kampus.
type SchoolCampusModel struct {
	SchoolCampusID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_campus_id" json:"school_campus_id"`

	SchoolCampusName string `gorm:"type:varchar(80);not null;column:school_campus_name" json:"school_campus_name"`

	SchoolCampusCenterLat float64 `gorm:"not null;column:school_campus_center_lat" json:"school_campus_center_lat"`
	SchoolCampusCenterLng float64 `gorm:"not null;column:school_campus_center_lng" json:"school_campus_center_lng"`

	// meter; scan di luar radius ini ditolak
	SchoolCampusRadiusM float64 `gorm:"not null;default:150;column:school_campus_radius_m" json:"school_campus_radius_m"`

	SchoolCampusIsActive bool `gorm:"not null;default:true;column:school_campus_is_active" json:"school_campus_is_active"`

	SchoolCampusCreatedAt time.Time      `gorm:"column:school_campus_created_at;autoCreateTime" json:"school_campus_created_at"`
	SchoolCampusUpdatedAt time.Time      `gorm:"column:school_campus_updated_at;autoUpdateTime" json:"school_campus_updated_at"`
	SchoolCampusDeletedAt gorm.DeletedAt `gorm:"column:school_campus_deleted_at;index" json:"school_campus_deleted_at,omitempty"`
}

func (SchoolCampusModel) TableName() string { return "school_campuses" }
