package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/library/model"
)

var (
	ErrNoCopiesAvailable = errors.New("semua eksemplar sedang dipinjam")
	ErrAlreadyReturned   = errors.New("pinjaman sudah dikembalikan")
	ErrDoubleBorrow      = errors.New("siswa masih meminjam buku yang sama")
)

// lama pinjam default (hari)
const DefaultLoanDays = 14

type BookStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.BookModel, error)
}

type LoanStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.BookLoanModel, error)
	CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
	HasActiveLoan(ctx context.Context, bookID, studentID uuid.UUID) (bool, error)
	Create(ctx context.Context, row *model.BookLoanModel) error
	Save(ctx context.Context, row *model.BookLoanModel) error
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.BookLoanModel, error)
}

type gormBookStore struct{ db *gorm.DB }

func NewGormBookStore(db *gorm.DB) BookStore { return &gormBookStore{db: db} }

func (s *gormBookStore) FindByID(ctx context.Context, id uuid.UUID) (*model.BookModel, error) {
	var row model.BookModel
	if err := s.db.WithContext(ctx).First(&row, "book_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

type gormLoanStore struct{ db *gorm.DB }

func NewGormLoanStore(db *gorm.DB) LoanStore { return &gormLoanStore{db: db} }

func (s *gormLoanStore) FindByID(ctx context.Context, id uuid.UUID) (*model.BookLoanModel, error) {
	var row model.BookLoanModel
	if err := s.db.WithContext(ctx).First(&row, "book_loan_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormLoanStore) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.BookLoanModel{}).
		Where("book_loan_book_id = ? AND book_loan_returned_at IS NULL", bookID).
		Count(&n).Error
	return n, err
}

func (s *gormLoanStore) HasActiveLoan(ctx context.Context, bookID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.BookLoanModel{}).
		Where("book_loan_book_id = ? AND book_loan_student_id = ? AND book_loan_returned_at IS NULL", bookID, studentID).
		Count(&n).Error
	return n > 0, err
}

func (s *gormLoanStore) Create(ctx context.Context, row *model.BookLoanModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormLoanStore) Save(ctx context.Context, row *model.BookLoanModel) error {
	return s.db.WithContext(ctx).Save(row).Error
}

func (s *gormLoanStore) ListOverdue(ctx context.Context, asOf time.Time) ([]model.BookLoanModel, error) {
	var rows []model.BookLoanModel
	err := s.db.WithContext(ctx).
		Where("book_loan_returned_at IS NULL AND book_loan_due_at < ?", asOf).
		Order("book_loan_due_at ASC").
		Find(&rows).Error
	return rows, err
}

type LoanService struct {
	Books BookStore
	Loans LoanStore

	Now func() time.Time
}

func NewLoanService(db *gorm.DB, loc *time.Location) *LoanService {
	return &LoanService{
		Books: NewGormBookStore(db),
		Loans: NewGormLoanStore(db),
		Now:   func() time.Time { return time.Now().In(loc) },
	}
}

// Borrow meminjamkan satu eksemplar kalau masih ada yang tersedia.
// Satu siswa tidak boleh memegang dua pinjaman aktif untuk buku yang sama.
func (s *LoanService) Borrow(ctx context.Context, bookID, studentID uuid.UUID, loanDays int) (*model.BookLoanModel, error) {
	if loanDays <= 0 {
		loanDays = DefaultLoanDays
	}

	book, err := s.Books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	double, err := s.Loans.HasActiveLoan(ctx, bookID, studentID)
	if err != nil {
		return nil, err
	}
	if double {
		return nil, ErrDoubleBorrow
	}

	active, err := s.Loans.CountActiveByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if active >= int64(book.BookCopies) {
		return nil, ErrNoCopiesAvailable
	}

	now := s.Now()
	row := &model.BookLoanModel{
		BookLoanBookID:     bookID,
		BookLoanStudentID:  studentID,
		BookLoanBorrowedAt: now,
		BookLoanDueAt:      now.AddDate(0, 0, loanDays),
	}
	if err := s.Loans.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Return menutup pinjaman; pengembalian kedua kali ditolak.
func (s *LoanService) Return(ctx context.Context, loanID uuid.UUID) (*model.BookLoanModel, error) {
	loan, err := s.Loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.BookLoanReturnedAt != nil {
		return nil, ErrAlreadyReturned
	}

	now := s.Now()
	loan.BookLoanReturnedAt = &now
	if err := s.Loans.Save(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Overdue = pinjaman aktif yang sudah melewati jatuh tempo.
func (s *LoanService) Overdue(ctx context.Context) ([]model.BookLoanModel, error) {
	return s.Loans.ListOverdue(ctx, s.Now())
}
