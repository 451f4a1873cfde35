package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentExamEntryModel mencatat siswa yang sudah masuk gerbang ujian.
// Unik per (tanggal, grup, siswa, course); course NULL = ujian umum grup.
type StudentExamEntryModel struct {
	StudentExamEntryID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_exam_entry_id" json:"student_exam_entry_id"`

	StudentExamEntryDate      time.Time  `gorm:"type:date;not null;uniqueIndex:uq_student_exam_entries,priority:1;column:student_exam_entry_date" json:"student_exam_entry_date"`
	StudentExamEntryGroupID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_student_exam_entries,priority:2;column:student_exam_entry_group_id" json:"student_exam_entry_group_id"`
	StudentExamEntryStudentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_student_exam_entries,priority:3;column:student_exam_entry_student_id" json:"student_exam_entry_student_id"`
	StudentExamEntryCourseID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_student_exam_entries,priority:4;column:student_exam_entry_course_id" json:"student_exam_entry_course_id,omitempty"`

	StudentExamEntryEnteredAt time.Time `gorm:"type:timestamptz;not null;column:student_exam_entry_entered_at" json:"student_exam_entry_entered_at"`

	StudentExamEntryLat *float64 `gorm:"type:double precision;column:student_exam_entry_lat" json:"student_exam_entry_lat,omitempty"`
	StudentExamEntryLng *float64 `gorm:"type:double precision;column:student_exam_entry_lng" json:"student_exam_entry_lng,omitempty"`

	StudentExamEntryCreatedAt time.Time      `gorm:"column:student_exam_entry_created_at;autoCreateTime" json:"student_exam_entry_created_at"`
	StudentExamEntryUpdatedAt time.Time      `gorm:"column:student_exam_entry_updated_at;autoUpdateTime" json:"student_exam_entry_updated_at"`
	StudentExamEntryDeletedAt gorm.DeletedAt `gorm:"column:student_exam_entry_deleted_at;index" json:"student_exam_entry_deleted_at,omitempty"`
}

func (StudentExamEntryModel) TableName() string { return "student_exam_entries" }
