package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpeechReviewModel = satu suara reviewer atas satu pidato; unik per pasangan.
type SpeechReviewModel struct {
	SpeechReviewID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:speech_review_id" json:"speech_review_id"`

	SpeechReviewSpeechID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_speech_reviews,priority:1;column:speech_review_speech_id" json:"speech_review_speech_id"`
	SpeechReviewReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_speech_reviews,priority:2;column:speech_review_reviewer_id" json:"speech_review_reviewer_id"`

	SpeechReviewApproved bool    `gorm:"not null;column:speech_review_approved" json:"speech_review_approved"`
	SpeechReviewNote     *string `gorm:"type:varchar(255);column:speech_review_note" json:"speech_review_note,omitempty"`

	SpeechReviewDecidedAt time.Time `gorm:"type:timestamptz;not null;column:speech_review_decided_at" json:"speech_review_decided_at"`

	SpeechReviewCreatedAt time.Time      `gorm:"column:speech_review_created_at;autoCreateTime" json:"speech_review_created_at"`
	SpeechReviewUpdatedAt time.Time      `gorm:"column:speech_review_updated_at;autoUpdateTime" json:"speech_review_updated_at"`
	SpeechReviewDeletedAt gorm.DeletedAt `gorm:"column:speech_review_deleted_at;index" json:"speech_review_deleted_at,omitempty"`
}

func (SpeechReviewModel) TableName() string { return "speech_reviews" }
