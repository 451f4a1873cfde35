package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   DirectoryService — sumber kebenaran periode & enrollment.
   Dipakai attendance, exams, dan reenrollment.
========================================================= */

type DirectoryService struct {
	Periods     PeriodStore
	Enrollments EnrollmentStore
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{
		Periods:     NewGormPeriodStore(db),
		Enrollments: NewGormEnrollmentStore(db),
	}
}

// ResolvePeriod get-or-create periode (year, month) dari tanggal.
// Race dua request pertama di awal bulan diselesaikan lewat retry-fetch
// setelah duplicate key — tidak pernah check-then-create tanpa jaring.
func (s *DirectoryService) ResolvePeriod(ctx context.Context, date time.Time) (*model.AcademicPeriodModel, error) {
	year, month := date.Year(), int(date.Month())

	if p, err := s.Periods.FindByYearMonth(ctx, year, month); err == nil {
		return p, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.AcademicPeriodModel{
		AcademicPeriodYear:  year,
		AcademicPeriodMonth: month,
	}
	if err := s.Periods.Create(ctx, p); err != nil {
		if helpers.IsDuplicateKey(err) {
			// kalah race — ambil row milik pemenang
			return s.Periods.FindByYearMonth(ctx, year, month)
		}
		return nil, err
	}
	return p, nil
}

// ActiveEnrollmentFor mengembalikan SATU enrollment active milik
// (siswa, periode). Nol row → gorm.ErrRecordNotFound (caller memetakan ke
// ErrNotEnrolled). Lebih dari satu → ErrDataIntegrity, dilog keras.
func (s *DirectoryService) ActiveEnrollmentFor(ctx context.Context, studentID, periodID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	rows, err := s.Enrollments.ListActive(ctx, studentID, periodID)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &rows[0], nil
	default:
		log.Printf("[ERROR] 🔥 %d enrollment active untuk student=%s period=%s — harusnya maksimal satu", len(rows), studentID, periodID)
		return nil, ErrDataIntegrity
	}
}

// ActivateEnrollment mengaktifkan satu enrollment sambil menonaktifkan
// active lain milik (periode, siswa) yang sama.
func (s *DirectoryService) ActivateEnrollment(ctx context.Context, enrollmentID uuid.UUID) error {
	return s.Enrollments.ActivateExclusive(ctx, enrollmentID)
}
