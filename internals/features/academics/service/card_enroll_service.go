package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
	userModel "abcschool_backend/internals/features/users/model"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   CardEnrollService — pendaftaran via scan kartu siswa.
   Guru scan kartu, sistem get-or-create enrollment di grup
   tujuan lalu mengaktifkannya (satu active per periode).
========================================================= */

type StudentLookupStore interface {
	FindByCode(ctx context.Context, code string) (*userModel.StudentProfileModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.StudentProfileModel, error)
	// sinkronisasi quick fields di profil; sumber kebenaran tetap enrollment
	SyncGroupInfo(ctx context.Context, studentID uuid.UUID, levelName, groupName string) error
}

type PeriodByIDStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.AcademicPeriodModel, error)
}

type LevelStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.AcademicLevelModel, error)
}

type gormStudentLookupStore struct{ db *gorm.DB }

func NewGormStudentLookupStore(db *gorm.DB) StudentLookupStore { return &gormStudentLookupStore{db: db} }

func (s *gormStudentLookupStore) FindByCode(ctx context.Context, code string) (*userModel.StudentProfileModel, error) {
	var row userModel.StudentProfileModel
	if err := s.db.WithContext(ctx).First(&row, "student_profile_student_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormStudentLookupStore) FindByID(ctx context.Context, id uuid.UUID) (*userModel.StudentProfileModel, error) {
	var row userModel.StudentProfileModel
	if err := s.db.WithContext(ctx).First(&row, "student_profile_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormStudentLookupStore) SyncGroupInfo(ctx context.Context, studentID uuid.UUID, levelName, groupName string) error {
	return s.db.WithContext(ctx).
		Model(&userModel.StudentProfileModel{}).
		Where("student_profile_id = ?", studentID).
		Updates(map[string]interface{}{
			"student_profile_current_level": levelName,
			"student_profile_group_name":    groupName,
		}).Error
}

type gormPeriodByIDStore struct{ db *gorm.DB }

func NewGormPeriodByIDStore(db *gorm.DB) PeriodByIDStore { return &gormPeriodByIDStore{db: db} }

func (s *gormPeriodByIDStore) FindByID(ctx context.Context, id uuid.UUID) (*model.AcademicPeriodModel, error) {
	var row model.AcademicPeriodModel
	if err := s.db.WithContext(ctx).First(&row, "academic_period_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

type gormLevelStore struct{ db *gorm.DB }

func NewGormLevelStore(db *gorm.DB) LevelStore { return &gormLevelStore{db: db} }

func (s *gormLevelStore) FindByID(ctx context.Context, id uuid.UUID) (*model.AcademicLevelModel, error) {
	var row model.AcademicLevelModel
	if err := s.db.WithContext(ctx).First(&row, "academic_level_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

type CardEnrollService struct {
	Directory *DirectoryService
	Groups    GroupStore
	Periods   PeriodByIDStore
	Levels    LevelStore
	Students  StudentLookupStore

	Now func() time.Time
}

func NewCardEnrollService(db *gorm.DB, loc *time.Location) *CardEnrollService {
	return &CardEnrollService{
		Directory: NewDirectoryService(db),
		Groups:    NewGormGroupStore(db),
		Periods:   NewGormPeriodByIDStore(db),
		Levels:    NewGormLevelStore(db),
		Students:  NewGormStudentLookupStore(db),
		Now:       func() time.Time { return time.Now().In(loc) },
	}
}

type CardEnrollResult struct {
	Student    *userModel.StudentProfileModel       `json:"student"`
	Enrollment *model.StudentMonthlyEnrollmentModel `json:"enrollment"`
	Created    bool                                 `json:"created"`
}

// EnrollByCard mendaftarkan siswa (dari kode kartu atau id) ke satu grup
// bulanan. Periode grup yang sudah ditutup menolak mutasi (ErrPeriodClosed).
// Pendaftaran berulang ke grup yang sama idempotent.
func (s *CardEnrollService) EnrollByCard(ctx context.Context, studentCode string, studentID *uuid.UUID, groupID uuid.UUID) (*CardEnrollResult, error) {
	var student *userModel.StudentProfileModel
	var err error
	if studentID != nil {
		student, err = s.Students.FindByID(ctx, *studentID)
	} else {
		student, err = s.Students.FindByCode(ctx, studentCode)
	}
	if err != nil {
		return nil, err
	}

	group, err := s.Groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	period, err := s.Periods.FindByID(ctx, group.MonthlyClassGroupPeriodID)
	if err != nil {
		return nil, err
	}
	if period.AcademicPeriodIsClosed {
		return nil, ErrPeriodClosed
	}

	enr, created, err := s.getOrCreateEnrollment(ctx, period.AcademicPeriodID, student.StudentProfileID, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.Directory.ActivateEnrollment(ctx, enr.StudentMonthlyEnrollmentID); err != nil {
		return nil, err
	}
	enr.StudentMonthlyEnrollmentStatus = model.EnrollmentStatusActive

	if level, lerr := s.Levels.FindByID(ctx, group.MonthlyClassGroupLevelID); lerr == nil {
		if serr := s.Students.SyncGroupInfo(ctx, student.StudentProfileID, level.AcademicLevelName, group.MonthlyClassGroupName); serr == nil {
			student.StudentProfileCurrentLevel = &level.AcademicLevelName
			student.StudentProfileGroupName = &group.MonthlyClassGroupName
		}
	}

	return &CardEnrollResult{Student: student, Enrollment: enr, Created: created}, nil
}

func (s *CardEnrollService) getOrCreateEnrollment(ctx context.Context, periodID, studentID, groupID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, bool, error) {
	if e, err := s.Directory.Enrollments.FindByKey(ctx, periodID, studentID, groupID); err == nil {
		return e, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	row := &model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  periodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   groupID,
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusPending,
	}
	if err := s.Directory.Enrollments.Create(ctx, row); err != nil {
		if helpers.IsDuplicateKey(err) {
			e, ferr := s.Directory.Enrollments.FindByKey(ctx, periodID, studentID, groupID)
			if ferr != nil {
				return nil, false, ferr
			}
			return e, false, nil
		}
		return nil, false, err
	}
	return row, true, nil
}
