package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookModel struct {
	BookID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:book_id" json:"book_id"`

	BookTitle  string  `gorm:"type:varchar(200);not null;column:book_title" json:"book_title"`
	BookAuthor *string `gorm:"type:varchar(120);column:book_author" json:"book_author,omitempty"`
	BookISBN   *string `gorm:"type:varchar(20);uniqueIndex:uq_books_isbn;column:book_isbn" json:"book_isbn,omitempty"`

	// jumlah eksemplar fisik; ketersediaan = copies - pinjaman aktif
	BookCopies int `gorm:"not null;default:1;column:book_copies" json:"book_copies"`

	BookCreatedAt time.Time      `gorm:"column:book_created_at;autoCreateTime" json:"book_created_at"`
	BookUpdatedAt time.Time      `gorm:"column:book_updated_at;autoUpdateTime" json:"book_updated_at"`
	BookDeletedAt gorm.DeletedAt `gorm:"column:book_deleted_at;index" json:"book_deleted_at,omitempty"`
}

func (BookModel) TableName() string { return "books" }
