package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsService "abcschool_backend/internals/features/academics/service"
	"abcschool_backend/internals/features/attendance/service"
	helpers "abcschool_backend/internals/helpers"
)

type AttendanceController struct {
	Ledger   *service.LedgerService
	Validate *validator.Validate
}

func NewAttendanceController(ledger *service.LedgerService) *AttendanceController {
	return &AttendanceController{Ledger: ledger, Validate: validator.New()}
}

// mapScanError memetakan sentinel service ke status HTTP.
func mapScanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrQREmpty):
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload QR kosong")
	case errors.Is(err, service.ErrQRFormat):
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format QR tidak dikenali")
	case errors.Is(err, service.ErrNotEnrolled):
		return helpers.JsonError(c, fiber.StatusForbidden, "Anda tidak terdaftar di periode berjalan")
	case errors.Is(err, service.ErrWrongClassroom):
		return helpers.JsonError(c, fiber.StatusForbidden, "QR ini bukan untuk kelas Anda")
	case errors.Is(err, service.ErrOutsideCampus):
		return helpers.JsonError(c, fiber.StatusForbidden, "Lokasi Anda di luar area kampus")
	case errors.Is(err, service.ErrNotAuthorized):
		return helpers.JsonError(c, fiber.StatusForbidden, "Anda tidak ditugaskan ke grup ini")
	case errors.Is(err, academicsService.ErrDataIntegrity):
		return helpers.JsonError(c, fiber.StatusConflict, "Data enrollment tidak konsisten, hubungi admin")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	default:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

type studentScanReq struct {
	QRPayload  string   `json:"qr_payload" validate:"required"`
	Lat        *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng        *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
	ClientTime string   `json:"client_time"`
}

// POST /api/u/attendance/scan — siswa scan QR pintu/grup
func (ctl *AttendanceController) StudentScan(c *fiber.Ctx) error {
	studentID, err := helpers.GetStudentIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil siswa tidak ditemukan di token")
	}

	var req studentScanReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Ledger.RecordScan(c.Context(), service.ScanInput{
		StudentID:  studentID,
		QRPayload:  req.QRPayload,
		Lat:        req.Lat,
		Lng:        req.Lng,
		ClientTime: req.ClientTime,
	})
	if err != nil {
		return mapScanError(c, err)
	}

	msg := "Absensi tercatat"
	if !res.Created {
		msg = "Absensi diperbarui"
	}
	return helpers.JsonOK(c, msg, res)
}

type confirmReq struct {
	CheckInID uuid.UUID `json:"checkin_id" validate:"required"`
	Approved  *bool     `json:"approved" validate:"required"`
	Note      *string   `json:"note" validate:"omitempty,max=255"`
}

// POST /api/t/attendance/confirm — suara guru atas satu check-in
func (ctl *AttendanceController) Confirm(c *fiber.Ctx) error {
	teacherID, err := helpers.GetTeacherIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil guru tidak ditemukan di token")
	}

	var req confirmReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Ledger.Confirm(c.Context(), req.CheckInID, teacherID, *req.Approved, req.Note)
	if err != nil {
		return mapScanError(c, err)
	}
	return helpers.JsonOK(c, "Konfirmasi tercatat", res)
}

// GET /api/t/attendance/pending?group_id=&date=YYYY-MM-DD
func (ctl *AttendanceController) ListPending(c *fiber.Ctx) error {
	teacherID, err := helpers.GetTeacherIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil guru tidak ditemukan di token")
	}

	var groupID *uuid.UUID
	if raw := c.Query("group_id"); raw != "" {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "group_id tidak valid")
		}
		groupID = &id
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		d, perr := time.ParseInLocation("2006-01-02", raw, ctl.Ledger.Classifier.Loc)
		if perr != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
		}
		date = &d
	}

	rows, err := ctl.Ledger.ListPending(c.Context(), teacherID, groupID, date)
	if err != nil {
		return mapScanError(c, err)
	}
	return helpers.JsonOK(c, "OK", fiber.Map{"pending": rows, "count": len(rows)})
}

// GET /api/s/attendance/rooms/:code/qr — payload QR ruangan untuk dicetak
func (ctl *AttendanceController) ExportRoomQR(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Kode ruangan wajib diisi")
	}

	room, err := ctl.Ledger.Rooms.FindByCode(c.Context(), code)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Ruangan tidak ditemukan")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"room_code":  room.RoomCode,
		"room_name":  room.RoomName,
		"qr_payload": ctl.Ledger.Codec.MakeRoomQR(room.RoomCode),
	})
}
