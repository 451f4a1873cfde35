package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherCourseAssignmentModel = penugasan guru ke grup bulanan (opsional per course).
type TeacherCourseAssignmentModel struct {
	TeacherCourseAssignmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teacher_course_assignment_id" json:"teacher_course_assignment_id"`

	TeacherCourseAssignmentTeacherID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_course_assignments,priority:1;column:teacher_course_assignment_teacher_id" json:"teacher_course_assignment_teacher_id"`
	TeacherCourseAssignmentGroupID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_course_assignments,priority:2;uniqueIndex:uq_tca_titular_per_group,where:teacher_course_assignment_is_titular AND teacher_course_assignment_deleted_at IS NULL;column:teacher_course_assignment_group_id" json:"teacher_course_assignment_group_id"`
	TeacherCourseAssignmentCourseID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_teacher_course_assignments,priority:3;column:teacher_course_assignment_course_id" json:"teacher_course_assignment_course_id,omitempty"`

	// wali kelas; maks satu per grup (partial unique index di kolom group)
	TeacherCourseAssignmentIsTitular bool `gorm:"not null;default:false;column:teacher_course_assignment_is_titular" json:"teacher_course_assignment_is_titular"`

	TeacherCourseAssignmentCreatedAt time.Time      `gorm:"column:teacher_course_assignment_created_at;autoCreateTime" json:"teacher_course_assignment_created_at"`
	TeacherCourseAssignmentUpdatedAt time.Time      `gorm:"column:teacher_course_assignment_updated_at;autoUpdateTime" json:"teacher_course_assignment_updated_at"`
	TeacherCourseAssignmentDeletedAt gorm.DeletedAt `gorm:"column:teacher_course_assignment_deleted_at;index" json:"teacher_course_assignment_deleted_at,omitempty"`
}

func (TeacherCourseAssignmentModel) TableName() string { return "teacher_course_assignments" }
