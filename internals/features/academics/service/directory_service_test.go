package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
)

func TestResolvePeriodCreatesOnce(t *testing.T) {
	periods := newMockPeriodStore()
	svc := &DirectoryService{Periods: periods, Enrollments: newMockEnrollmentStore()}

	date := time.Date(2026, time.September, 3, 8, 0, 0, 0, time.UTC)

	p1, err := svc.ResolvePeriod(context.Background(), date)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if p1.AcademicPeriodYear != 2026 || p1.AcademicPeriodMonth != 9 {
		t.Fatalf("period = %d-%d, mau 2026-9", p1.AcademicPeriodYear, p1.AcademicPeriodMonth)
	}

	p2, err := svc.ResolvePeriod(context.Background(), date.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("ResolvePeriod kedua: %v", err)
	}
	if p2.AcademicPeriodID != p1.AcademicPeriodID {
		t.Fatalf("tanggal di bulan yang sama harus kembali ke period yang sama")
	}
	if periods.creates != 1 {
		t.Fatalf("creates = %d, mau 1", periods.creates)
	}
}

func TestResolvePeriodConcurrent(t *testing.T) {
	periods := newMockPeriodStore()
	svc := &DirectoryService{Periods: periods, Enrollments: newMockEnrollmentStore()}

	date := time.Date(2026, time.October, 1, 0, 0, 1, 0, time.UTC)

	const n = 50
	ids := make([]uuid.UUID, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.ResolvePeriod(context.Background(), date)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = p.AcademicPeriodID
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("goroutine %d dapat period berbeda", i)
		}
	}
	if periods.creates != 1 {
		t.Fatalf("creates = %d, mau tepat 1 meski %d request paralel", periods.creates, n)
	}
}

func TestResolvePeriodDecemberRollsToJanuary(t *testing.T) {
	svc := &DirectoryService{Periods: newMockPeriodStore(), Enrollments: newMockEnrollmentStore()}

	dec := time.Date(2026, time.December, 15, 12, 0, 0, 0, time.UTC)
	p, err := svc.ResolvePeriod(context.Background(), nextMonth(dec))
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if p.AcademicPeriodYear != 2027 || p.AcademicPeriodMonth != 1 {
		t.Fatalf("period = %d-%d, mau 2027-1", p.AcademicPeriodYear, p.AcademicPeriodMonth)
	}
}

func TestActiveEnrollmentFor(t *testing.T) {
	enrollments := newMockEnrollmentStore()
	svc := &DirectoryService{Periods: newMockPeriodStore(), Enrollments: enrollments}

	studentID := uuid.New()
	periodID := uuid.New()

	// nol row → record not found
	if _, err := svc.ActiveEnrollmentFor(context.Background(), studentID, periodID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("tanpa enrollment: err = %v, mau ErrRecordNotFound", err)
	}

	active := enrollments.add(model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   uuid.New(),
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusActive,
	})
	enrollments.add(model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   uuid.New(),
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusPending,
	})

	got, err := svc.ActiveEnrollmentFor(context.Background(), studentID, periodID)
	if err != nil {
		t.Fatalf("ActiveEnrollmentFor: %v", err)
	}
	if got.StudentMonthlyEnrollmentID != active.StudentMonthlyEnrollmentID {
		t.Fatalf("dapat enrollment yang salah")
	}

	// dua row active → ErrDataIntegrity
	enrollments.add(model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   uuid.New(),
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusActive,
	})
	if _, err := svc.ActiveEnrollmentFor(context.Background(), studentID, periodID); !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("dua active: err = %v, mau ErrDataIntegrity", err)
	}
}

func TestActivateEnrollmentDeactivatesOthers(t *testing.T) {
	enrollments := newMockEnrollmentStore()
	svc := &DirectoryService{Periods: newMockPeriodStore(), Enrollments: enrollments}

	studentID := uuid.New()
	periodID := uuid.New()

	old := enrollments.add(model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   uuid.New(),
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusActive,
	})
	pending := enrollments.add(model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   uuid.New(),
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusPending,
	})

	if err := svc.ActivateEnrollment(context.Background(), pending.StudentMonthlyEnrollmentID); err != nil {
		t.Fatalf("ActivateEnrollment: %v", err)
	}

	got, err := svc.ActiveEnrollmentFor(context.Background(), studentID, periodID)
	if err != nil {
		t.Fatalf("setelah aktivasi: %v", err)
	}
	if got.StudentMonthlyEnrollmentID != pending.StudentMonthlyEnrollmentID {
		t.Fatalf("yang active harus enrollment baru")
	}

	oldNow, _ := enrollments.FindByID(context.Background(), old.StudentMonthlyEnrollmentID)
	if oldNow.StudentMonthlyEnrollmentStatus != model.EnrollmentStatusInactive {
		t.Fatalf("enrollment lama = %q, mau inactive", oldNow.StudentMonthlyEnrollmentStatus)
	}
}
