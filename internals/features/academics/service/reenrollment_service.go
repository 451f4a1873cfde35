package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   ReenrollmentService — siswa menyatakan lanjut/berhenti
   bulan depan; secretary yang memutuskan.
========================================================= */

type ReenrollmentService struct {
	Directory *DirectoryService
	Groups    GroupStore
	Intents   IntentStore

	// InTx menjalankan fn dengan salinan service yang store-nya terikat
	// satu transaksi DB; nil = jalankan langsung (store in-memory di tes).
	InTx func(ctx context.Context, fn func(txs *ReenrollmentService) error) error

	// injected supaya tes deterministik
	Now func() time.Time
}

func NewReenrollmentService(db *gorm.DB, loc *time.Location) *ReenrollmentService {
	s := &ReenrollmentService{
		Directory: NewDirectoryService(db),
		Groups:    NewGormGroupStore(db),
		Intents:   NewGormIntentStore(db),
		Now:       func() time.Time { return time.Now().In(loc) },
	}
	s.InTx = func(ctx context.Context, fn func(txs *ReenrollmentService) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&ReenrollmentService{
				Directory: NewDirectoryService(tx),
				Groups:    NewGormGroupStore(tx),
				Intents:   NewGormIntentStore(tx),
				Now:       s.Now,
			})
		})
	}
	return s
}

func (s *ReenrollmentService) inTx(ctx context.Context, fn func(*ReenrollmentService) error) error {
	if s.InTx == nil {
		return fn(s)
	}
	return s.InTx(ctx, fn)
}

type SubmitIntentResult struct {
	Intent              *model.ReenrollmentIntentModel `json:"intent"`
	PendingEnrollmentID *uuid.UUID                     `json:"pending_enrollment_id,omitempty"`
}

// nextMonth = tanggal 1 bulan berikutnya (time.Date menormalisasi Desember→Januari).
func nextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// SubmitIntent: upsert niat daftar ulang siswa untuk periode bulan depan.
// Submit ulang mengubah jawaban dan mereset status ke pending.
func (s *ReenrollmentService) SubmitIntent(ctx context.Context, studentID uuid.UUID, willReturn bool, reason *string) (*SubmitIntentResult, error) {
	now := s.Now()

	fromPeriod, err := s.Directory.ResolvePeriod(ctx, now)
	if err != nil {
		return nil, err
	}
	toPeriod, err := s.Directory.ResolvePeriod(ctx, nextMonth(now))
	if err != nil {
		return nil, err
	}
	if toPeriod.AcademicPeriodIsClosed {
		return nil, ErrPeriodClosed
	}

	// wajib punya enrollment (status apa pun) di periode berjalan
	has, err := s.Directory.Enrollments.HasAnyInPeriod(ctx, studentID, fromPeriod.AcademicPeriodID)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, ErrNoCurrentEnrollment
	}

	// kalau mau lanjut: cari grup kembaran di periode tujuan
	var matchGroupID *uuid.UUID
	if willReturn {
		cur, err := s.Directory.Enrollments.LatestInPeriod(ctx, studentID, fromPeriod.AcademicPeriodID)
		if err != nil {
			return nil, err
		}
		curGroup, err := s.Groups.FindByID(ctx, cur.StudentMonthlyEnrollmentGroupID)
		if err != nil {
			return nil, err
		}
		match, err := s.Groups.FindMatching(ctx,
			toPeriod.AcademicPeriodID,
			curGroup.MonthlyClassGroupLevelID,
			curGroup.MonthlyClassGroupName,
			curGroup.MonthlyClassGroupRoomID,
		)
		switch {
		case err == nil:
			matchGroupID = &match.MonthlyClassGroupID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// grup belum dibuka di periode tujuan — intent tetap tercatat
		default:
			return nil, err
		}
	}

	// enrollment pending + intent ditulis dalam satu transaksi, supaya
	// tidak ada enrollment nyangkut tanpa intent kalau proses putus
	var result *SubmitIntentResult
	err = s.inTx(ctx, func(txs *ReenrollmentService) error {
		var pendingEnrollmentID *uuid.UUID
		if matchGroupID != nil {
			enr, err := txs.getOrCreatePendingEnrollment(ctx, toPeriod.AcademicPeriodID, studentID, *matchGroupID)
			if err != nil {
				return err
			}
			pendingEnrollmentID = &enr.StudentMonthlyEnrollmentID
		}

		intent, err := txs.upsertIntent(ctx, studentID, fromPeriod.AcademicPeriodID, toPeriod.AcademicPeriodID, willReturn, reason, pendingEnrollmentID)
		if err != nil {
			return err
		}

		result = &SubmitIntentResult{Intent: intent, PendingEnrollmentID: pendingEnrollmentID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReenrollmentService) getOrCreatePendingEnrollment(ctx context.Context, periodID, studentID, groupID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	if e, err := s.Directory.Enrollments.FindByKey(ctx, periodID, studentID, groupID); err == nil {
		return e, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e := &model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   groupID,
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusPending,
	}
	if err := s.Directory.Enrollments.Create(ctx, e); err != nil {
		if helpers.IsDuplicateKey(err) {
			return s.Directory.Enrollments.FindByKey(ctx, periodID, studentID, groupID)
		}
		return nil, err
	}
	return e, nil
}

func (s *ReenrollmentService) upsertIntent(ctx context.Context, studentID, fromPeriodID, toPeriodID uuid.UUID, willReturn bool, reason *string, pendingEnrollmentID *uuid.UUID) (*model.ReenrollmentIntentModel, error) {
	apply := func(it *model.ReenrollmentIntentModel) {
		it.ReenrollmentIntentFromPeriodID = fromPeriodID
		it.ReenrollmentIntentWillReturn = willReturn
		it.ReenrollmentIntentReason = reason
		it.ReenrollmentIntentStatus = model.ReenrollmentStatusPending
		it.ReenrollmentIntentPendingEnrollmentID = pendingEnrollmentID
		it.ReenrollmentIntentDecidedBy = nil
		it.ReenrollmentIntentDecidedAt = nil
	}

	if existing, err := s.Intents.FindByStudentToPeriod(ctx, studentID, toPeriodID); err == nil {
		apply(existing)
		if err := s.Intents.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	it := &model.ReenrollmentIntentModel{
		ReenrollmentIntentStudentID:  studentID,
		ReenrollmentIntentToPeriodID: toPeriodID,
	}
	apply(it)
	if err := s.Intents.Create(ctx, it); err != nil {
		if helpers.IsDuplicateKey(err) {
			existing, ferr := s.Intents.FindByStudentToPeriod(ctx, studentID, toPeriodID)
			if ferr != nil {
				return nil, ferr
			}
			apply(existing)
			if serr := s.Intents.Save(ctx, existing); serr != nil {
				return nil, serr
			}
			return existing, nil
		}
		return nil, err
	}
	return it, nil
}

// DecideIntent: keputusan secretary. Approve mengaktifkan enrollment pending
// (menjaga invariant satu-active), reject menonaktifkannya.
func (s *ReenrollmentService) DecideIntent(ctx context.Context, intentID, deciderUserID uuid.UUID, approve bool) (*model.ReenrollmentIntentModel, error) {
	it, err := s.Intents.FindByID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if it.ReenrollmentIntentStatus != model.ReenrollmentStatusPending {
		return nil, ErrIntentDecided
	}

	if it.ReenrollmentIntentPendingEnrollmentID != nil {
		enrID := *it.ReenrollmentIntentPendingEnrollmentID
		if approve {
			if err := s.Directory.ActivateEnrollment(ctx, enrID); err != nil {
				return nil, err
			}
		} else {
			if err := s.Directory.Enrollments.SetStatus(ctx, enrID, model.EnrollmentStatusInactive); err != nil {
				return nil, err
			}
		}
	}

	now := s.Now()
	if approve {
		it.ReenrollmentIntentStatus = model.ReenrollmentStatusApproved
	} else {
		it.ReenrollmentIntentStatus = model.ReenrollmentStatusRejected
	}
	it.ReenrollmentIntentDecidedBy = &deciderUserID
	it.ReenrollmentIntentDecidedAt = &now
	if err := s.Intents.Save(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}
