package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/library/model"
	"abcschool_backend/internals/features/library/service"
	helpers "abcschool_backend/internals/helpers"
)

type LibraryController struct {
	DB       *gorm.DB
	Loans    *service.LoanService
	Validate *validator.Validate
}

func NewLibraryController(db *gorm.DB, loans *service.LoanService) *LibraryController {
	return &LibraryController{DB: db, Loans: loans, Validate: validator.New()}
}

type bookReq struct {
	Title  string  `json:"book_title" validate:"required,min=1,max=200"`
	Author *string `json:"book_author" validate:"omitempty,max=120"`
	ISBN   *string `json:"book_isbn" validate:"omitempty,max=20"`
	Copies int     `json:"book_copies" validate:"omitempty,min=1,max=500"`
}

// POST /api/s/library/books
func (ctl *LibraryController) CreateBook(c *fiber.Ctx) error {
	var req bookReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.BookModel{
		BookTitle:  strings.TrimSpace(req.Title),
		BookAuthor: req.Author,
		BookISBN:   req.ISBN,
		BookCopies: req.Copies,
	}
	if row.BookCopies == 0 {
		row.BookCopies = 1
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "ISBN sudah terdaftar")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat buku")
	}
	return helpers.JsonCreated(c, "Buku ditambahkan", row)
}

// GET /api/s/library/books?q=&page=&per_page=
func (ctl *LibraryController) ListBooks(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.BookModel{})
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(book_title) LIKE ? OR LOWER(book_author) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung buku")
	}

	var rows []model.BookModel
	if err := q.Order("book_title ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

type borrowReq struct {
	BookID    uuid.UUID `json:"book_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	LoanDays  int       `json:"loan_days" validate:"omitempty,min=1,max=90"`
}

// POST /api/s/library/loans
func (ctl *LibraryController) Borrow(c *fiber.Ctx) error {
	var req borrowReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	loan, err := ctl.Loans.Borrow(c.Context(), req.BookID, req.StudentID, req.LoanDays)
	switch {
	case errors.Is(err, service.ErrNoCopiesAvailable):
		return helpers.JsonError(c, fiber.StatusConflict, "Semua eksemplar sedang dipinjam")
	case errors.Is(err, service.ErrDoubleBorrow):
		return helpers.JsonError(c, fiber.StatusConflict, "Siswa masih meminjam buku ini")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Buku tidak ditemukan")
	case err != nil:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses peminjaman")
	}
	return helpers.JsonCreated(c, "Peminjaman tercatat", loan)
}

// POST /api/s/library/loans/:id/return
func (ctl *LibraryController) Return(c *fiber.Ctx) error {
	loanID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID pinjaman tidak valid")
	}

	loan, err := ctl.Loans.Return(c.Context(), loanID)
	switch {
	case errors.Is(err, service.ErrAlreadyReturned):
		return helpers.JsonError(c, fiber.StatusConflict, "Pinjaman sudah dikembalikan")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Pinjaman tidak ditemukan")
	case err != nil:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pengembalian")
	}
	return helpers.JsonUpdated(c, "Buku dikembalikan", loan)
}

// GET /api/s/library/loans/overdue
func (ctl *LibraryController) Overdue(c *fiber.Ctx) error {
	rows, err := ctl.Loans.Overdue(c.Context())
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data overdue")
	}
	return helpers.JsonOK(c, "OK", fiber.Map{"loans": rows, "count": len(rows)})
}
