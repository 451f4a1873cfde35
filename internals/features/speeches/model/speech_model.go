package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alur status pidato: draft → submitted → approved/rejected → published
const (
	SpeechStatusDraft     = "draft"
	SpeechStatusSubmitted = "submitted"
	SpeechStatusApproved  = "approved"
	SpeechStatusRejected  = "rejected"
	SpeechStatusPublished = "published"
)

type SpeechModel struct {
	SpeechID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:speech_id" json:"speech_id"`

	SpeechStudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_speeches_student;column:speech_student_id" json:"speech_student_id"`

	SpeechTitle string `gorm:"type:varchar(200);not null;column:speech_title" json:"speech_title"`
	SpeechBody  string `gorm:"type:text;not null;column:speech_body" json:"speech_body"`

	SpeechStatus string `gorm:"type:varchar(12);not null;default:'draft';column:speech_status" json:"speech_status"`

	SpeechSubmittedAt *time.Time `gorm:"column:speech_submitted_at" json:"speech_submitted_at,omitempty"`
	SpeechPublishedAt *time.Time `gorm:"column:speech_published_at" json:"speech_published_at,omitempty"`

	SpeechCreatedAt time.Time      `gorm:"column:speech_created_at;autoCreateTime" json:"speech_created_at"`
	SpeechUpdatedAt time.Time      `gorm:"column:speech_updated_at;autoUpdateTime" json:"speech_updated_at"`
	SpeechDeletedAt gorm.DeletedAt `gorm:"column:speech_deleted_at;index" json:"speech_deleted_at,omitempty"`
}

func (SpeechModel) TableName() string { return "speeches" }
