package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
	"abcschool_backend/internals/features/academics/service"
	helpers "abcschool_backend/internals/helpers"
)

type ReenrollmentController struct {
	DB       *gorm.DB
	Svc      *service.ReenrollmentService
	Validate *validator.Validate
}

func NewReenrollmentController(db *gorm.DB, svc *service.ReenrollmentService) *ReenrollmentController {
	return &ReenrollmentController{DB: db, Svc: svc, Validate: validator.New()}
}

func mapReenrollError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoCurrentEnrollment):
		return helpers.JsonError(c, fiber.StatusForbidden, "Anda tidak punya enrollment di periode berjalan")
	case errors.Is(err, service.ErrPeriodClosed):
		return helpers.JsonError(c, fiber.StatusConflict, "Periode tujuan sudah ditutup")
	case errors.Is(err, service.ErrIntentDecided):
		return helpers.JsonError(c, fiber.StatusConflict, "Intent sudah diputuskan, tidak bisa diubah")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	default:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

type submitIntentReq struct {
	WillReturn *bool   `json:"will_return" validate:"required"`
	Reason     *string `json:"reason" validate:"omitempty,max=255"`
}

// POST /api/u/reenrollment/intent — siswa menjawab "lanjut bulan depan?"
func (ctl *ReenrollmentController) SubmitIntent(c *fiber.Ctx) error {
	studentID, err := helpers.GetStudentIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil siswa tidak ditemukan di token")
	}

	var req submitIntentReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Svc.SubmitIntent(c.Context(), studentID, *req.WillReturn, req.Reason)
	if err != nil {
		return mapReenrollError(c, err)
	}
	return helpers.JsonOK(c, "Jawaban re-enrollment tersimpan", res)
}

type decideIntentReq struct {
	Approve *bool `json:"approve" validate:"required"`
}

// POST /api/s/reenrollment/:id/decide — sekretaris memutuskan intent
func (ctl *ReenrollmentController) DecideIntent(c *fiber.Ctx) error {
	deciderID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	intentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID intent tidak valid")
	}

	var req decideIntentReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	intent, err := ctl.Svc.DecideIntent(c.Context(), intentID, deciderID, *req.Approve)
	if err != nil {
		return mapReenrollError(c, err)
	}

	msg := "Intent ditolak"
	if *req.Approve {
		msg = "Intent disetujui, enrollment diaktifkan"
	}
	return helpers.JsonUpdated(c, msg, intent)
}

// GET /api/s/reenrollment?to_period_id=&status=&page=&per_page=
func (ctl *ReenrollmentController) ListIntents(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.ReenrollmentIntentModel{})
	if raw := c.Query("to_period_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "to_period_id tidak valid")
		}
		q = q.Where("reenrollment_intent_to_period_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("reenrollment_intent_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung intent")
	}

	var rows []model.ReenrollmentIntentModel
	if err := q.Order("reenrollment_intent_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil intent")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
