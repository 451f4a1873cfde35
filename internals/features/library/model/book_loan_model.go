package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookLoanModel struct {
	BookLoanID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:book_loan_id" json:"book_loan_id"`

	BookLoanBookID    uuid.UUID `gorm:"type:uuid;not null;index:idx_book_loans_book;column:book_loan_book_id" json:"book_loan_book_id"`
	BookLoanStudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_book_loans_student;column:book_loan_student_id" json:"book_loan_student_id"`

	BookLoanBorrowedAt time.Time  `gorm:"type:timestamptz;not null;column:book_loan_borrowed_at" json:"book_loan_borrowed_at"`
	BookLoanDueAt      time.Time  `gorm:"type:timestamptz;not null;column:book_loan_due_at" json:"book_loan_due_at"`
	BookLoanReturnedAt *time.Time `gorm:"type:timestamptz;column:book_loan_returned_at" json:"book_loan_returned_at,omitempty"`

	BookLoanCreatedAt time.Time      `gorm:"column:book_loan_created_at;autoCreateTime" json:"book_loan_created_at"`
	BookLoanUpdatedAt time.Time      `gorm:"column:book_loan_updated_at;autoUpdateTime" json:"book_loan_updated_at"`
	BookLoanDeletedAt gorm.DeletedAt `gorm:"column:book_loan_deleted_at;index" json:"book_loan_deleted_at,omitempty"`
}

func (BookLoanModel) TableName() string { return "book_loans" }
