package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status enrollment bulanan
const (
	EnrollmentStatusPending  = "pending"
	EnrollmentStatusActive   = "active"
	EnrollmentStatusInactive = "inactive"
)

// StudentMonthlyEnrollmentModel mengikat siswa ke satu grup pada satu periode.
// Invariant: maksimal SATU row active per (periode, siswa) — dijaga di service
// saat aktivasi, bukan lewat constraint (pending boleh lebih dari satu).
type StudentMonthlyEnrollmentModel struct {
	StudentMonthlyEnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_monthly_enrollment_id" json:"student_monthly_enrollment_id"`

	StudentMonthlyEnrollmentPeriodID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_monthly_enrollments,priority:1;column:student_monthly_enrollment_period_id" json:"student_monthly_enrollment_period_id"`
	StudentMonthlyEnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_monthly_enrollments,priority:2;column:student_monthly_enrollment_student_id" json:"student_monthly_enrollment_student_id"`
	StudentMonthlyEnrollmentGroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_monthly_enrollments,priority:3;column:student_monthly_enrollment_group_id" json:"student_monthly_enrollment_group_id"`

	StudentMonthlyEnrollmentStatus string `gorm:"type:varchar(12);not null;default:'pending';column:student_monthly_enrollment_status" json:"student_monthly_enrollment_status"`

	// gerbang ujian; dibuka satu arah oleh guru pengampu
	StudentMonthlyEnrollmentExamUnlock bool `gorm:"not null;default:false;column:student_monthly_enrollment_exam_unlock" json:"student_monthly_enrollment_exam_unlock"`

	StudentMonthlyEnrollmentCreatedAt time.Time      `gorm:"column:student_monthly_enrollment_created_at;autoCreateTime" json:"student_monthly_enrollment_created_at"`
	StudentMonthlyEnrollmentUpdatedAt time.Time      `gorm:"column:student_monthly_enrollment_updated_at;autoUpdateTime" json:"student_monthly_enrollment_updated_at"`
	StudentMonthlyEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:student_monthly_enrollment_deleted_at;index" json:"student_monthly_enrollment_deleted_at,omitempty"`
}

func (StudentMonthlyEnrollmentModel) TableName() string { return "student_monthly_enrollments" }
