package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
	attendanceService "abcschool_backend/internals/features/attendance/service"
	helpers "abcschool_backend/internals/helpers"
	"abcschool_backend/internals/helpers/dbtime"
)

/* =========================================================
   GroupController — grup bulanan, penugasan guru, enrollment.
========================================================= */

type GroupController struct {
	DB       *gorm.DB
	Codec    *attendanceService.QRCodec
	Validate *validator.Validate
}

func NewGroupController(db *gorm.DB, qrSecret string) *GroupController {
	return &GroupController{
		DB:       db,
		Codec:    attendanceService.NewQRCodec(qrSecret),
		Validate: validator.New(),
	}
}

// periode tertutup menolak mutasi apapun yang menggantung padanya
func (ctl *GroupController) guardPeriodOpen(c *fiber.Ctx, periodID uuid.UUID) (bool, error) {
	var period model.AcademicPeriodModel
	if err := ctl.DB.First(&period, "academic_period_id = ?", periodID).Error; err != nil {
		return false, helpers.JsonError(c, fiber.StatusNotFound, "Periode tidak ditemukan")
	}
	if period.AcademicPeriodIsClosed {
		return false, helpers.JsonError(c, fiber.StatusConflict, "Periode sudah ditutup, mutasi ditolak")
	}
	return true, nil
}

type createGroupReq struct {
	PeriodID     uuid.UUID `json:"monthly_class_group_period_id" validate:"required"`
	LevelID      uuid.UUID `json:"monthly_class_group_level_id" validate:"required"`
	Name         string    `json:"monthly_class_group_name" validate:"required,min=1,max=80"`
	RoomID       uuid.UUID `json:"monthly_class_group_room_id" validate:"required"`
	StartTime    *string   `json:"monthly_class_group_start_time" validate:"omitempty"` // "HH:MM"
	LateGraceMin *int      `json:"monthly_class_group_late_grace_min" validate:"omitempty,min=0,max=240"`
}

// POST /api/s/groups
func (ctl *GroupController) CreateGroup(c *fiber.Ctx) error {
	var req createGroupReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if ok, resp := ctl.guardPeriodOpen(c, req.PeriodID); !ok {
		return resp
	}

	row := model.MonthlyClassGroupModel{
		MonthlyClassGroupPeriodID:     req.PeriodID,
		MonthlyClassGroupLevelID:      req.LevelID,
		MonthlyClassGroupName:         strings.TrimSpace(req.Name),
		MonthlyClassGroupRoomID:       req.RoomID,
		MonthlyClassGroupLateGraceMin: req.LateGraceMin,
	}
	if req.StartTime != nil && *req.StartTime != "" {
		tod, err := dbtime.Parse(*req.StartTime)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "start_time harus format HH:MM")
		}
		row.MonthlyClassGroupStartTime = &tod
	}

	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Grup dengan kombinasi periode/level/nama/ruangan sudah ada")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat grup")
	}
	return helpers.JsonCreated(c, "Grup dibuat", row)
}

// GET /api/s/groups?period_id=&level_id=&page=&per_page=
func (ctl *GroupController) ListGroups(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.MonthlyClassGroupModel{})
	if raw := c.Query("period_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "period_id tidak valid")
		}
		q = q.Where("monthly_class_group_period_id = ?", id)
	}
	if raw := c.Query("level_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "level_id tidak valid")
		}
		q = q.Where("monthly_class_group_level_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung grup")
	}

	var rows []model.MonthlyClassGroupModel
	if err := q.Order("monthly_class_group_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil grup")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/s/groups/:id/qr — payload QR grup untuk dicetak/ditayangkan
func (ctl *GroupController) ExportGroupQR(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID grup tidak valid")
	}

	var group model.MonthlyClassGroupModel
	if err := ctl.DB.First(&group, "monthly_class_group_id = ?", groupID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Grup tidak ditemukan")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"monthly_class_group_id":   group.MonthlyClassGroupID,
		"monthly_class_group_name": group.MonthlyClassGroupName,
		"qr_payload":               ctl.Codec.MakeGroupQR(group.MonthlyClassGroupID),
	})
}

/* ===== PENUGASAN GURU ===== */

type assignTeacherReq struct {
	TeacherID uuid.UUID  `json:"teacher_course_assignment_teacher_id" validate:"required"`
	GroupID   uuid.UUID  `json:"teacher_course_assignment_group_id" validate:"required"`
	CourseID  *uuid.UUID `json:"teacher_course_assignment_course_id"`
	IsTitular bool       `json:"teacher_course_assignment_is_titular"`
}

// POST /api/s/assignments
func (ctl *GroupController) AssignTeacher(c *fiber.Ctx) error {
	var req assignTeacherReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var group model.MonthlyClassGroupModel
	if err := ctl.DB.First(&group, "monthly_class_group_id = ?", req.GroupID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Grup tidak ditemukan")
	}
	if ok, resp := ctl.guardPeriodOpen(c, group.MonthlyClassGroupPeriodID); !ok {
		return resp
	}

	row := model.TeacherCourseAssignmentModel{
		TeacherCourseAssignmentTeacherID: req.TeacherID,
		TeacherCourseAssignmentGroupID:   req.GroupID,
		TeacherCourseAssignmentCourseID:  req.CourseID,
		TeacherCourseAssignmentIsTitular: req.IsTitular,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Penugasan sudah ada, atau grup sudah punya wali kelas")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat penugasan")
	}
	return helpers.JsonCreated(c, "Penugasan dibuat", row)
}

// GET /api/s/assignments?group_id=
func (ctl *GroupController) ListAssignments(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Query("group_id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "group_id tidak valid")
	}

	var rows []model.TeacherCourseAssignmentModel
	if err := ctl.DB.Where("teacher_course_assignment_group_id = ?", groupID).
		Order("teacher_course_assignment_is_titular DESC, teacher_course_assignment_created_at ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penugasan")
	}
	return helpers.JsonOK(c, "OK", fiber.Map{"assignments": rows, "count": len(rows)})
}

// DELETE /api/s/assignments/:id
func (ctl *GroupController) RemoveAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID penugasan tidak valid")
	}

	res := ctl.DB.Where("teacher_course_assignment_id = ?", assignmentID).
		Delete(&model.TeacherCourseAssignmentModel{})
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus penugasan")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Penugasan tidak ditemukan")
	}
	return helpers.JsonDeleted(c, "Penugasan dihapus", fiber.Map{"teacher_course_assignment_id": assignmentID})
}

/* ===== ENROLLMENT ===== */

// GET /api/s/enrollments?period_id=&group_id=&student_id=&status=
func (ctl *GroupController) ListEnrollments(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.StudentMonthlyEnrollmentModel{})
	if raw := c.Query("period_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "period_id tidak valid")
		}
		q = q.Where("student_monthly_enrollment_period_id = ?", id)
	}
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "group_id tidak valid")
		}
		q = q.Where("student_monthly_enrollment_group_id = ?", id)
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("student_monthly_enrollment_student_id = ?", id)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("student_monthly_enrollment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung enrollment")
	}

	var rows []model.StudentMonthlyEnrollmentModel
	if err := q.Order("student_monthly_enrollment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
