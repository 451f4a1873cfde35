package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "abcschool_backend/internals/features/academics/model"
	"abcschool_backend/internals/features/attendance/model"
	userModel "abcschool_backend/internals/features/users/model"
)

/* =========================================================
   Store interfaces milik ledger — mock-able untuk tes.
========================================================= */

type CheckInStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.DailyRoomCheckInModel, error)
	FindByKey(ctx context.Context, date time.Time, roomID, studentID uuid.UUID) (*model.DailyRoomCheckInModel, error)
	Create(ctx context.Context, ci *model.DailyRoomCheckInModel) error
	Save(ctx context.Context, ci *model.DailyRoomCheckInModel) error
	// check-in pada tanggal tsb untuk grup-grup tertentu
	ListByGroupsAndDate(ctx context.Context, groupIDs []uuid.UUID, date time.Time) ([]model.DailyRoomCheckInModel, error)
}

type ApprovalStore interface {
	FindByKey(ctx context.Context, checkinID, teacherID uuid.UUID) (*model.DailyRoomCheckInApprovalModel, error)
	Create(ctx context.Context, a *model.DailyRoomCheckInApprovalModel) error
	Save(ctx context.Context, a *model.DailyRoomCheckInApprovalModel) error
	CountApproved(ctx context.Context, checkinID uuid.UUID) (int, error)
}

type AssignmentStore interface {
	IsTeacherAssigned(ctx context.Context, teacherID, groupID uuid.UUID) (bool, error)
	GroupIDsForTeacher(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)
}

type RoomStore interface {
	FindByCode(ctx context.Context, code string) (*academicsModel.RoomModel, error)
	// kampus aktif tempat ruangan berada; nil tanpa error kalau tidak di-geofence
	CampusForRoom(ctx context.Context, roomID uuid.UUID) (*academicsModel.SchoolCampusModel, error)
}

type StudentLocationStore interface {
	UpdateLastLocation(ctx context.Context, studentID uuid.UUID, lat, lng float64, at time.Time) error
}

/* =========================================================
   GORM implementations
========================================================= */

type gormCheckInStore struct{ db *gorm.DB }

func NewGormCheckInStore(db *gorm.DB) CheckInStore { return &gormCheckInStore{db: db} }

func (s *gormCheckInStore) FindByID(ctx context.Context, id uuid.UUID) (*model.DailyRoomCheckInModel, error) {
	var ci model.DailyRoomCheckInModel
	if err := s.db.WithContext(ctx).First(&ci, "daily_room_checkin_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ci, nil
}

func (s *gormCheckInStore) FindByKey(ctx context.Context, date time.Time, roomID, studentID uuid.UUID) (*model.DailyRoomCheckInModel, error) {
	var ci model.DailyRoomCheckInModel
	err := s.db.WithContext(ctx).
		Where("daily_room_checkin_date = ?", date.Format("2006-01-02")).
		Where("daily_room_checkin_room_id = ?", roomID).
		Where("daily_room_checkin_student_id = ?", studentID).
		First(&ci).Error
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

func (s *gormCheckInStore) Create(ctx context.Context, ci *model.DailyRoomCheckInModel) error {
	return s.db.WithContext(ctx).Create(ci).Error
}

func (s *gormCheckInStore) Save(ctx context.Context, ci *model.DailyRoomCheckInModel) error {
	return s.db.WithContext(ctx).Save(ci).Error
}

func (s *gormCheckInStore) ListByGroupsAndDate(ctx context.Context, groupIDs []uuid.UUID, date time.Time) ([]model.DailyRoomCheckInModel, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var rows []model.DailyRoomCheckInModel
	err := s.db.WithContext(ctx).
		Where("daily_room_checkin_group_id IN ?", groupIDs).
		Where("daily_room_checkin_date = ?", date.Format("2006-01-02")).
		Order("daily_room_checkin_scanned_at ASC").
		Find(&rows).Error
	return rows, err
}

type gormApprovalStore struct{ db *gorm.DB }

func NewGormApprovalStore(db *gorm.DB) ApprovalStore { return &gormApprovalStore{db: db} }

func (s *gormApprovalStore) FindByKey(ctx context.Context, checkinID, teacherID uuid.UUID) (*model.DailyRoomCheckInApprovalModel, error) {
	var a model.DailyRoomCheckInApprovalModel
	err := s.db.WithContext(ctx).
		Where("daily_room_checkin_approval_checkin_id = ?", checkinID).
		Where("daily_room_checkin_approval_teacher_id = ?", teacherID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormApprovalStore) Create(ctx context.Context, a *model.DailyRoomCheckInApprovalModel) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *gormApprovalStore) Save(ctx context.Context, a *model.DailyRoomCheckInApprovalModel) error {
	return s.db.WithContext(ctx).Save(a).Error
}

func (s *gormApprovalStore) CountApproved(ctx context.Context, checkinID uuid.UUID) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.DailyRoomCheckInApprovalModel{}).
		Where("daily_room_checkin_approval_checkin_id = ?", checkinID).
		Where("daily_room_checkin_approval_approved = ?", true).
		Count(&n).Error
	return int(n), err
}

type gormAssignmentStore struct{ db *gorm.DB }

func NewGormAssignmentStore(db *gorm.DB) AssignmentStore { return &gormAssignmentStore{db: db} }

func (s *gormAssignmentStore) IsTeacherAssigned(ctx context.Context, teacherID, groupID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&academicsModel.TeacherCourseAssignmentModel{}).
		Where("teacher_course_assignment_teacher_id = ?", teacherID).
		Where("teacher_course_assignment_group_id = ?", groupID).
		Count(&n).Error
	return n > 0, err
}

func (s *gormAssignmentStore) GroupIDsForTeacher(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&academicsModel.TeacherCourseAssignmentModel{}).
		Distinct("teacher_course_assignment_group_id").
		Where("teacher_course_assignment_teacher_id = ?", teacherID).
		Pluck("teacher_course_assignment_group_id", &ids).Error
	return ids, err
}

type gormRoomStore struct{ db *gorm.DB }

func NewGormRoomStore(db *gorm.DB) RoomStore { return &gormRoomStore{db: db} }

func (s *gormRoomStore) FindByCode(ctx context.Context, code string) (*academicsModel.RoomModel, error) {
	var r academicsModel.RoomModel
	if err := s.db.WithContext(ctx).Where("room_code = ?", code).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormRoomStore) CampusForRoom(ctx context.Context, roomID uuid.UUID) (*academicsModel.SchoolCampusModel, error) {
	var r academicsModel.RoomModel
	if err := s.db.WithContext(ctx).First(&r, "room_id = ?", roomID).Error; err != nil {
		return nil, err
	}
	if r.RoomCampusID == nil {
		return nil, nil
	}
	var campus academicsModel.SchoolCampusModel
	err := s.db.WithContext(ctx).
		Where("school_campus_id = ?", *r.RoomCampusID).
		Where("school_campus_is_active = ?", true).
		First(&campus).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campus, nil
}

type gormStudentLocationStore struct{ db *gorm.DB }

func NewGormStudentLocationStore(db *gorm.DB) StudentLocationStore {
	return &gormStudentLocationStore{db: db}
}

func (s *gormStudentLocationStore) UpdateLastLocation(ctx context.Context, studentID uuid.UUID, lat, lng float64, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&userModel.StudentProfileModel{}).
		Where("student_profile_id = ?", studentID).
		Updates(map[string]interface{}{
			"student_profile_last_lat":     lat,
			"student_profile_last_lng":     lng,
			"student_profile_last_seen_at": at,
		}).Error
}
