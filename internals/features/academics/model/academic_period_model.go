package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicPeriodModel = satu bulan kalender akademik. Semua enrollment,
// grup bulanan, dan absensi menggantung di sini.
type AcademicPeriodModel struct {
	AcademicPeriodID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_period_id" json:"academic_period_id"`

	AcademicPeriodYear  int `gorm:"not null;uniqueIndex:uq_academic_periods_year_month,priority:1;column:academic_period_year" json:"academic_period_year"`
	AcademicPeriodMonth int `gorm:"not null;uniqueIndex:uq_academic_periods_year_month,priority:2;column:academic_period_month" json:"academic_period_month"`

	// Periode yang sudah ditutup tidak boleh menerima mutasi baru.
	AcademicPeriodIsClosed bool `gorm:"not null;default:false;column:academic_period_is_closed" json:"academic_period_is_closed"`

	AcademicPeriodCreatedAt time.Time      `gorm:"column:academic_period_created_at;autoCreateTime" json:"academic_period_created_at"`
	AcademicPeriodUpdatedAt time.Time      `gorm:"column:academic_period_updated_at;autoUpdateTime" json:"academic_period_updated_at"`
	AcademicPeriodDeletedAt gorm.DeletedAt `gorm:"column:academic_period_deleted_at;index" json:"academic_period_deleted_at,omitempty"`
}

func (AcademicPeriodModel) TableName() string { return "academic_periods" }

// Code format "YYYY-MM", dipakai di response & QR grup.
func (p AcademicPeriodModel) Code() string {
	return fmt.Sprintf("%04d-%02d", p.AcademicPeriodYear, p.AcademicPeriodMonth)
}
