package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceService "abcschool_backend/internals/features/attendance/service"
	"abcschool_backend/internals/features/exams/service"
	helpers "abcschool_backend/internals/helpers"
)

type ExamController struct {
	Gate     *service.GateService
	Validate *validator.Validate
}

func NewExamController(gate *service.GateService) *ExamController {
	return &ExamController{Gate: gate, Validate: validator.New()}
}

func mapExamError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrExamLocked):
		return helpers.JsonError(c, fiber.StatusForbidden, "Gerbang ujian Anda belum dibuka oleh guru")
	case errors.Is(err, attendanceService.ErrQREmpty):
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload QR kosong")
	case errors.Is(err, attendanceService.ErrQRFormat):
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format QR tidak dikenali")
	case errors.Is(err, attendanceService.ErrNotEnrolled):
		return helpers.JsonError(c, fiber.StatusForbidden, "Anda tidak terdaftar di periode berjalan")
	case errors.Is(err, attendanceService.ErrWrongClassroom):
		return helpers.JsonError(c, fiber.StatusForbidden, "QR ini bukan untuk grup Anda")
	case errors.Is(err, attendanceService.ErrOutsideCampus):
		return helpers.JsonError(c, fiber.StatusForbidden, "Lokasi Anda di luar area kampus")
	case errors.Is(err, attendanceService.ErrNotAuthorized):
		return helpers.JsonError(c, fiber.StatusForbidden, "Anda tidak ditugaskan ke grup ini")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	default:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

type enterExamReq struct {
	QRPayload string     `json:"qr_payload" validate:"required"`
	CourseID  *uuid.UUID `json:"course_id"`
	Lat       *float64   `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng       *float64   `json:"lng" validate:"omitempty,min=-180,max=180"`
}

// POST /api/u/exams/enter — siswa scan QR ruangan/grup di pintu ujian
func (ctl *ExamController) Enter(c *fiber.Ctx) error {
	studentID, err := helpers.GetStudentIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil siswa tidak ditemukan di token")
	}

	var req enterExamReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Gate.EnterExam(c.Context(), service.EnterInput{
		StudentID: studentID,
		QRPayload: req.QRPayload,
		CourseID:  req.CourseID,
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		return mapExamError(c, err)
	}

	msg := "Masuk ujian tercatat"
	if !res.Created {
		msg = "Anda sudah tercatat masuk ujian"
	}
	return helpers.JsonOK(c, msg, res)
}

// POST /api/t/exams/unlock/:enrollment_id — guru membuka gerbang ujian
func (ctl *ExamController) Unlock(c *fiber.Ctx) error {
	teacherID, err := helpers.GetTeacherIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil guru tidak ditemukan di token")
	}

	enrollmentID, err := uuid.Parse(c.Params("enrollment_id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "enrollment_id tidak valid")
	}

	enr, err := ctl.Gate.UnlockExam(c.Context(), enrollmentID, teacherID)
	if err != nil {
		return mapExamError(c, err)
	}
	return helpers.JsonUpdated(c, "Gerbang ujian dibuka", enr)
}

// POST /api/a/exams/lock/:enrollment_id — koreksi admin, menutup kembali
func (ctl *ExamController) Lock(c *fiber.Ctx) error {
	enrollmentID, err := uuid.Parse(c.Params("enrollment_id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "enrollment_id tidak valid")
	}

	enr, err := ctl.Gate.LockExam(c.Context(), enrollmentID)
	if err != nil {
		return mapExamError(c, err)
	}
	return helpers.JsonUpdated(c, "Gerbang ujian ditutup", enr)
}

// GET /api/t/exams/entries?group_id=&date=YYYY-MM-DD — rekap masuk ujian
func (ctl *ExamController) ListEntries(c *fiber.Ctx) error {
	teacherID, err := helpers.GetTeacherIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil guru tidak ditemukan di token")
	}

	groupID, err := uuid.Parse(c.Query("group_id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "group_id tidak valid")
	}

	ok, err := ctl.Gate.Assignments.IsTeacherAssigned(c.Context(), teacherID, groupID)
	if err != nil {
		return mapExamError(c, err)
	}
	if !ok {
		return mapExamError(c, attendanceService.ErrNotAuthorized)
	}

	date := ctl.Gate.Now()
	if raw := c.Query("date"); raw != "" {
		d, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
		}
		date = d
	}

	rows, err := ctl.Gate.Entries.ListByGroupAndDate(c.Context(), groupID, date)
	if err != nil {
		return mapExamError(c, err)
	}
	return helpers.JsonOK(c, "OK", fiber.Map{"entries": rows, "count": len(rows)})
}
