package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "abcschool_backend/internals/features/academics/model"
	academicsService "abcschool_backend/internals/features/academics/service"
	attendanceService "abcschool_backend/internals/features/attendance/service"
	"abcschool_backend/internals/features/exams/model"
	helpers "abcschool_backend/internals/helpers"
)

// ErrExamLocked = enrollment siswa belum dibuka gerbang ujiannya.
var ErrExamLocked = errors.New("gerbang ujian masih terkunci")

type EntryStore interface {
	FindByKey(ctx context.Context, date time.Time, groupID, studentID uuid.UUID, courseID *uuid.UUID) (*model.StudentExamEntryModel, error)
	Create(ctx context.Context, row *model.StudentExamEntryModel) error
	ListByGroupAndDate(ctx context.Context, groupID uuid.UUID, date time.Time) ([]model.StudentExamEntryModel, error)
}

type gormEntryStore struct{ db *gorm.DB }

func NewGormEntryStore(db *gorm.DB) EntryStore { return &gormEntryStore{db: db} }

func (s *gormEntryStore) FindByKey(ctx context.Context, date time.Time, groupID, studentID uuid.UUID, courseID *uuid.UUID) (*model.StudentExamEntryModel, error) {
	q := s.db.WithContext(ctx).
		Where("student_exam_entry_date = ?", date.Format("2006-01-02")).
		Where("student_exam_entry_group_id = ?", groupID).
		Where("student_exam_entry_student_id = ?", studentID)
	if courseID != nil {
		q = q.Where("student_exam_entry_course_id = ?", *courseID)
	} else {
		q = q.Where("student_exam_entry_course_id IS NULL")
	}

	var row model.StudentExamEntryModel
	if err := q.First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormEntryStore) Create(ctx context.Context, row *model.StudentExamEntryModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormEntryStore) ListByGroupAndDate(ctx context.Context, groupID uuid.UUID, date time.Time) ([]model.StudentExamEntryModel, error) {
	var rows []model.StudentExamEntryModel
	err := s.db.WithContext(ctx).
		Where("student_exam_entry_group_id = ? AND student_exam_entry_date = ?", groupID, date.Format("2006-01-02")).
		Order("student_exam_entry_entered_at ASC").
		Find(&rows).Error
	return rows, err
}

/* =========================
   Service
========================= */

type GateService struct {
	Directory   *academicsService.DirectoryService
	Groups      academicsService.GroupStore
	Enrollments academicsService.EnrollmentStore

	Entries     EntryStore
	Assignments attendanceService.AssignmentStore
	Rooms       attendanceService.RoomStore
	Locations   attendanceService.StudentLocationStore

	Codec *attendanceService.QRCodec

	Now func() time.Time
}

func NewGateService(db *gorm.DB, qrSecret string, loc *time.Location) *GateService {
	return &GateService{
		Directory:   academicsService.NewDirectoryService(db),
		Groups:      academicsService.NewGormGroupStore(db),
		Enrollments: academicsService.NewGormEnrollmentStore(db),
		Entries:     NewGormEntryStore(db),
		Assignments: attendanceService.NewGormAssignmentStore(db),
		Rooms:       attendanceService.NewGormRoomStore(db),
		Locations:   attendanceService.NewGormStudentLocationStore(db),
		Codec:       attendanceService.NewQRCodec(qrSecret),
		Now:         func() time.Time { return time.Now().In(loc) },
	}
}

type EnterInput struct {
	StudentID uuid.UUID
	QRPayload string
	CourseID  *uuid.UUID
	Lat       *float64
	Lng       *float64
}

type EnterResult struct {
	Entry   *model.StudentExamEntryModel `json:"entry"`
	Created bool                         `json:"created"`
}

// EnterExam memvalidasi gerbang ujian lalu mencatat kehadiran ujian.
// Urutan gerbang: periode → enrollment aktif → QR ruangan/grup cocok →
// exam_unlock → geofence. Masuk ulang di hari yang sama idempotent.
func (s *GateService) EnterExam(ctx context.Context, in EnterInput) (*EnterResult, error) {
	now := s.Now()

	period, err := s.Directory.ResolvePeriod(ctx, now)
	if err != nil {
		return nil, err
	}

	enr, err := s.Directory.ActiveEnrollmentFor(ctx, in.StudentID, period.AcademicPeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceService.ErrNotEnrolled
		}
		return nil, err
	}

	group, err := s.Groups.FindByID(ctx, enr.StudentMonthlyEnrollmentGroupID)
	if err != nil {
		return nil, err
	}

	if err := s.matchScannedRoom(ctx, in.QRPayload, group); err != nil {
		return nil, err
	}

	if !enr.StudentMonthlyEnrollmentExamUnlock {
		return nil, ErrExamLocked
	}

	if in.Lat != nil && in.Lng != nil {
		// lokasi terakhir tetap dicatat walau gerbang ditolak
		if lerr := s.Locations.UpdateLastLocation(ctx, in.StudentID, *in.Lat, *in.Lng, now); lerr != nil {
			log.Printf("[WARN] gagal update lokasi siswa %s: %v", in.StudentID, lerr)
		}

		campus, cerr := s.Rooms.CampusForRoom(ctx, group.MonthlyClassGroupRoomID)
		if cerr != nil {
			return nil, cerr
		}
		if !attendanceService.WithinCampus(campus, *in.Lat, *in.Lng) {
			return nil, attendanceService.ErrOutsideCampus
		}
	}

	return s.upsertEntry(ctx, now, group, in)
}

// matchScannedRoom menerima QR ruangan ATAU QR grup di pintu ujian;
// aturan pencocokan sama dengan scan absensi harian.
func (s *GateService) matchScannedRoom(ctx context.Context, payload string, group *academicsModel.MonthlyClassGroupModel) error {
	if roomQR, err := s.Codec.ParseRoomQR(payload); err == nil {
		room, rerr := s.Rooms.FindByCode(ctx, roomQR.RoomCode)
		if rerr != nil {
			if errors.Is(rerr, gorm.ErrRecordNotFound) {
				return attendanceService.ErrWrongClassroom
			}
			return rerr
		}
		if room.RoomID != group.MonthlyClassGroupRoomID {
			return attendanceService.ErrWrongClassroom
		}
		return nil
	} else if errors.Is(err, attendanceService.ErrQREmpty) {
		return err
	}

	gq, err := s.Codec.ParseGroupQR(payload)
	if err != nil {
		return err
	}
	if gq.GroupID != group.MonthlyClassGroupID {
		return attendanceService.ErrWrongClassroom
	}
	return nil
}

func (s *GateService) upsertEntry(ctx context.Context, now time.Time, group *academicsModel.MonthlyClassGroupModel, in EnterInput) (*EnterResult, error) {
	groupID := group.MonthlyClassGroupID

	if existing, err := s.Entries.FindByKey(ctx, now, groupID, in.StudentID, in.CourseID); err == nil {
		return &EnterResult{Entry: existing, Created: false}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &model.StudentExamEntryModel{
		StudentExamEntryDate:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		StudentExamEntryGroupID:   groupID,
		StudentExamEntryStudentID: in.StudentID,
		StudentExamEntryCourseID:  in.CourseID,
		StudentExamEntryEnteredAt: now,
		StudentExamEntryLat:       in.Lat,
		StudentExamEntryLng:       in.Lng,
	}
	if err := s.Entries.Create(ctx, row); err != nil {
		if helpers.IsDuplicateKey(err) {
			existing, ferr := s.Entries.FindByKey(ctx, now, groupID, in.StudentID, in.CourseID)
			if ferr != nil {
				return nil, ferr
			}
			return &EnterResult{Entry: existing, Created: false}, nil
		}
		return nil, err
	}
	return &EnterResult{Entry: row, Created: true}, nil
}

// UnlockExam membuka gerbang ujian satu enrollment. Hanya guru yang
// ditugaskan ke grup enrollment tersebut; flip satu arah (tidak menutup).
func (s *GateService) UnlockExam(ctx context.Context, enrollmentID, teacherID uuid.UUID) (*academicsModel.StudentMonthlyEnrollmentModel, error) {
	enr, err := s.Enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	ok, err := s.Assignments.IsTeacherAssigned(ctx, teacherID, enr.StudentMonthlyEnrollmentGroupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, attendanceService.ErrNotAuthorized
	}

	if !enr.StudentMonthlyEnrollmentExamUnlock {
		if err := s.Enrollments.SetExamUnlock(ctx, enrollmentID, true); err != nil {
			return nil, err
		}
		enr.StudentMonthlyEnrollmentExamUnlock = true
	}
	return enr, nil
}

// LockExam menutup kembali gerbang ujian. Aksi koreksi eksplisit,
// dibatasi admin di layer route.
func (s *GateService) LockExam(ctx context.Context, enrollmentID uuid.UUID) (*academicsModel.StudentMonthlyEnrollmentModel, error) {
	enr, err := s.Enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enr.StudentMonthlyEnrollmentExamUnlock {
		if err := s.Enrollments.SetExamUnlock(ctx, enrollmentID, false); err != nil {
			return nil, err
		}
		enr.StudentMonthlyEnrollmentExamUnlock = false
	}
	return enr, nil
}
