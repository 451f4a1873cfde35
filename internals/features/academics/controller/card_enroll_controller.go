package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/service"
	attendanceService "abcschool_backend/internals/features/attendance/service"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   CardEnrollController — guru scan kartu siswa untuk
   mendaftarkan ke grup bulanan.
========================================================= */

type CardEnrollController struct {
	Svc      *service.CardEnrollService
	Codec    *attendanceService.QRCodec
	Validate *validator.Validate
}

func NewCardEnrollController(svc *service.CardEnrollService, qrSecret string) *CardEnrollController {
	return &CardEnrollController{
		Svc:      svc,
		Codec:    attendanceService.NewQRCodec(qrSecret),
		Validate: validator.New(),
	}
}

type cardEnrollReq struct {
	QRPayload string    `json:"qr_payload" validate:"required"`
	GroupID   uuid.UUID `json:"group_id" validate:"required"`
}

// POST /api/t/enrollments/card-scan
func (ctl *CardEnrollController) EnrollByCard(c *fiber.Ctx) error {
	var req cardEnrollReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	card, err := ctl.Codec.ParseStudentQR(req.QRPayload)
	if err != nil {
		if errors.Is(err, attendanceService.ErrQREmpty) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Payload QR kosong")
		}
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format kartu tidak dikenali")
	}

	res, err := ctl.Svc.EnrollByCard(c.Context(), card.StudentCode, card.StudentID, req.GroupID)
	switch {
	case errors.Is(err, service.ErrPeriodClosed):
		return helpers.JsonError(c, fiber.StatusConflict, "Periode grup sudah ditutup")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Siswa atau grup tidak ditemukan")
	case err != nil:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pendaftaran")
	}

	msg := "Siswa didaftarkan ke grup"
	if !res.Created {
		msg = "Siswa sudah terdaftar, enrollment diaktifkan"
	}
	return helpers.JsonOK(c, msg, res)
}
