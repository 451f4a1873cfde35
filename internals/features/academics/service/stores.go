package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
)

/* =========================================================
   Store interfaces — service bicara lewat sini supaya bisa
   dites dengan mock in-memory tanpa DB.
========================================================= */

type PeriodStore interface {
	FindByYearMonth(ctx context.Context, year, month int) (*model.AcademicPeriodModel, error)
	Create(ctx context.Context, p *model.AcademicPeriodModel) error
}

type GroupStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.MonthlyClassGroupModel, error)
	// cari grup "kembaran" di periode lain: level + nama + ruangan sama
	FindMatching(ctx context.Context, periodID, levelID uuid.UUID, name string, roomID uuid.UUID) (*model.MonthlyClassGroupModel, error)
}

type EnrollmentStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error)
	ListActive(ctx context.Context, studentID, periodID uuid.UUID) ([]model.StudentMonthlyEnrollmentModel, error)
	HasAnyInPeriod(ctx context.Context, studentID, periodID uuid.UUID) (bool, error)
	LatestInPeriod(ctx context.Context, studentID, periodID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error)
	Create(ctx context.Context, e *model.StudentMonthlyEnrollmentModel) error
	FindByKey(ctx context.Context, periodID, studentID, groupID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error)
	// set active + nonaktifkan active lain milik (periode, siswa) dalam satu tx
	ActivateExclusive(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	SetExamUnlock(ctx context.Context, id uuid.UUID, unlocked bool) error
}

type IntentStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReenrollmentIntentModel, error)
	FindByStudentToPeriod(ctx context.Context, studentID, toPeriodID uuid.UUID) (*model.ReenrollmentIntentModel, error)
	Create(ctx context.Context, it *model.ReenrollmentIntentModel) error
	Save(ctx context.Context, it *model.ReenrollmentIntentModel) error
}

/* =========================================================
   GORM implementations
========================================================= */

type gormPeriodStore struct{ db *gorm.DB }

func NewGormPeriodStore(db *gorm.DB) PeriodStore { return &gormPeriodStore{db: db} }

func (s *gormPeriodStore) FindByYearMonth(ctx context.Context, year, month int) (*model.AcademicPeriodModel, error) {
	var p model.AcademicPeriodModel
	err := s.db.WithContext(ctx).
		Where("academic_period_year = ? AND academic_period_month = ?", year, month).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormPeriodStore) Create(ctx context.Context, p *model.AcademicPeriodModel) error {
	return s.db.WithContext(ctx).Create(p).Error
}

type gormGroupStore struct{ db *gorm.DB }

func NewGormGroupStore(db *gorm.DB) GroupStore { return &gormGroupStore{db: db} }

func (s *gormGroupStore) FindByID(ctx context.Context, id uuid.UUID) (*model.MonthlyClassGroupModel, error) {
	var g model.MonthlyClassGroupModel
	if err := s.db.WithContext(ctx).First(&g, "monthly_class_group_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *gormGroupStore) FindMatching(ctx context.Context, periodID, levelID uuid.UUID, name string, roomID uuid.UUID) (*model.MonthlyClassGroupModel, error) {
	var g model.MonthlyClassGroupModel
	err := s.db.WithContext(ctx).
		Where("monthly_class_group_period_id = ?", periodID).
		Where("monthly_class_group_level_id = ?", levelID).
		Where("monthly_class_group_name = ?", name).
		Where("monthly_class_group_room_id = ?", roomID).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

type gormEnrollmentStore struct{ db *gorm.DB }

func NewGormEnrollmentStore(db *gorm.DB) EnrollmentStore { return &gormEnrollmentStore{db: db} }

func (s *gormEnrollmentStore) FindByID(ctx context.Context, id uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	var e model.StudentMonthlyEnrollmentModel
	if err := s.db.WithContext(ctx).First(&e, "student_monthly_enrollment_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *gormEnrollmentStore) ListActive(ctx context.Context, studentID, periodID uuid.UUID) ([]model.StudentMonthlyEnrollmentModel, error) {
	var rows []model.StudentMonthlyEnrollmentModel
	err := s.db.WithContext(ctx).
		Where("student_monthly_enrollment_student_id = ?", studentID).
		Where("student_monthly_enrollment_period_id = ?", periodID).
		Where("student_monthly_enrollment_status = ?", model.EnrollmentStatusActive).
		Order("student_monthly_enrollment_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *gormEnrollmentStore) HasAnyInPeriod(ctx context.Context, studentID, periodID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.StudentMonthlyEnrollmentModel{}).
		Where("student_monthly_enrollment_student_id = ?", studentID).
		Where("student_monthly_enrollment_period_id = ?", periodID).
		Count(&n).Error
	return n > 0, err
}

func (s *gormEnrollmentStore) LatestInPeriod(ctx context.Context, studentID, periodID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	var e model.StudentMonthlyEnrollmentModel
	err := s.db.WithContext(ctx).
		Where("student_monthly_enrollment_student_id = ?", studentID).
		Where("student_monthly_enrollment_period_id = ?", periodID).
		// active dulu, lalu yang terbaru
		Order("CASE WHEN student_monthly_enrollment_status = 'active' THEN 0 ELSE 1 END, student_monthly_enrollment_created_at DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *gormEnrollmentStore) Create(ctx context.Context, e *model.StudentMonthlyEnrollmentModel) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *gormEnrollmentStore) FindByKey(ctx context.Context, periodID, studentID, groupID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	var e model.StudentMonthlyEnrollmentModel
	err := s.db.WithContext(ctx).
		Where("student_monthly_enrollment_period_id = ?", periodID).
		Where("student_monthly_enrollment_student_id = ?", studentID).
		Where("student_monthly_enrollment_group_id = ?", groupID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ActivateExclusive menjaga invariant satu-active-per-(periode,siswa):
// nonaktifkan row active lain dulu, baru aktifkan target — satu transaksi.
func (s *gormEnrollmentStore) ActivateExclusive(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.StudentMonthlyEnrollmentModel
		if err := tx.First(&target, "student_monthly_enrollment_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.StudentMonthlyEnrollmentModel{}).
			Where("student_monthly_enrollment_period_id = ?", target.StudentMonthlyEnrollmentPeriodID).
			Where("student_monthly_enrollment_student_id = ?", target.StudentMonthlyEnrollmentStudentID).
			Where("student_monthly_enrollment_id <> ?", id).
			Where("student_monthly_enrollment_status = ?", model.EnrollmentStatusActive).
			Update("student_monthly_enrollment_status", model.EnrollmentStatusInactive).Error; err != nil {
			return err
		}
		return tx.Model(&model.StudentMonthlyEnrollmentModel{}).
			Where("student_monthly_enrollment_id = ?", id).
			Update("student_monthly_enrollment_status", model.EnrollmentStatusActive).Error
	})
}

func (s *gormEnrollmentStore) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.db.WithContext(ctx).
		Model(&model.StudentMonthlyEnrollmentModel{}).
		Where("student_monthly_enrollment_id = ?", id).
		Update("student_monthly_enrollment_status", status).Error
}

func (s *gormEnrollmentStore) SetExamUnlock(ctx context.Context, id uuid.UUID, unlocked bool) error {
	return s.db.WithContext(ctx).
		Model(&model.StudentMonthlyEnrollmentModel{}).
		Where("student_monthly_enrollment_id = ?", id).
		Update("student_monthly_enrollment_exam_unlock", unlocked).Error
}

type gormIntentStore struct{ db *gorm.DB }

func NewGormIntentStore(db *gorm.DB) IntentStore { return &gormIntentStore{db: db} }

func (s *gormIntentStore) FindByID(ctx context.Context, id uuid.UUID) (*model.ReenrollmentIntentModel, error) {
	var it model.ReenrollmentIntentModel
	if err := s.db.WithContext(ctx).First(&it, "reenrollment_intent_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *gormIntentStore) FindByStudentToPeriod(ctx context.Context, studentID, toPeriodID uuid.UUID) (*model.ReenrollmentIntentModel, error) {
	var it model.ReenrollmentIntentModel
	err := s.db.WithContext(ctx).
		Where("reenrollment_intent_student_id = ?", studentID).
		Where("reenrollment_intent_to_period_id = ?", toPeriodID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *gormIntentStore) Create(ctx context.Context, it *model.ReenrollmentIntentModel) error {
	return s.db.WithContext(ctx).Create(it).Error
}

func (s *gormIntentStore) Save(ctx context.Context, it *model.ReenrollmentIntentModel) error {
	return s.db.WithContext(ctx).Save(it).Error
}
