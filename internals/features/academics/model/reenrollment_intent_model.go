package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status niat daftar ulang
const (
	ReenrollmentStatusPending  = "pending"
	ReenrollmentStatusApproved = "approved"
	ReenrollmentStatusRejected = "rejected"
)

// ReenrollmentIntentModel = niat siswa lanjut (atau tidak) ke periode berikutnya.
type ReenrollmentIntentModel struct {
	ReenrollmentIntentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:reenrollment_intent_id" json:"reenrollment_intent_id"`

	ReenrollmentIntentStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_reenrollment_intents,priority:1;column:reenrollment_intent_student_id" json:"reenrollment_intent_student_id"`
	ReenrollmentIntentFromPeriodID uuid.UUID `gorm:"type:uuid;not null;column:reenrollment_intent_from_period_id" json:"reenrollment_intent_from_period_id"`
	ReenrollmentIntentToPeriodID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_reenrollment_intents,priority:2;column:reenrollment_intent_to_period_id" json:"reenrollment_intent_to_period_id"`

	ReenrollmentIntentWillReturn bool    `gorm:"not null;column:reenrollment_intent_will_return" json:"reenrollment_intent_will_return"`
	ReenrollmentIntentReason     *string `gorm:"type:text;column:reenrollment_intent_reason" json:"reenrollment_intent_reason,omitempty"`

	ReenrollmentIntentStatus string `gorm:"type:varchar(12);not null;default:'pending';column:reenrollment_intent_status" json:"reenrollment_intent_status"`

	// enrollment pending yang dibuat saat submit (nullable kalau will_return=false)
	ReenrollmentIntentPendingEnrollmentID *uuid.UUID `gorm:"type:uuid;column:reenrollment_intent_pending_enrollment_id" json:"reenrollment_intent_pending_enrollment_id,omitempty"`

	ReenrollmentIntentDecidedBy *uuid.UUID `gorm:"type:uuid;column:reenrollment_intent_decided_by" json:"reenrollment_intent_decided_by,omitempty"`
	ReenrollmentIntentDecidedAt *time.Time `gorm:"column:reenrollment_intent_decided_at" json:"reenrollment_intent_decided_at,omitempty"`

	ReenrollmentIntentCreatedAt time.Time      `gorm:"column:reenrollment_intent_created_at;autoCreateTime" json:"reenrollment_intent_created_at"`
	ReenrollmentIntentUpdatedAt time.Time      `gorm:"column:reenrollment_intent_updated_at;autoUpdateTime" json:"reenrollment_intent_updated_at"`
	ReenrollmentIntentDeletedAt gorm.DeletedAt `gorm:"column:reenrollment_intent_deleted_at;index" json:"reenrollment_intent_deleted_at,omitempty"`
}

func (ReenrollmentIntentModel) TableName() string { return "reenrollment_intents" }
