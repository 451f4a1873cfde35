package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/speeches/model"
	"abcschool_backend/internals/features/speeches/service"
	helpers "abcschool_backend/internals/helpers"
)

type SpeechController struct {
	DB       *gorm.DB
	Svc      *service.WorkflowService
	Validate *validator.Validate
}

func NewSpeechController(db *gorm.DB, svc *service.WorkflowService) *SpeechController {
	return &SpeechController{DB: db, Svc: svc, Validate: validator.New()}
}

func mapSpeechError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		return helpers.JsonError(c, fiber.StatusConflict, "Status pidato tidak mengizinkan aksi ini")
	case errors.Is(err, service.ErrNotOwner):
		return helpers.JsonError(c, fiber.StatusForbidden, "Pidato ini bukan milik Anda")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Pidato tidak ditemukan")
	default:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

type createSpeechReq struct {
	Title string `json:"speech_title" validate:"required,min=3,max=200"`
	Body  string `json:"speech_body" validate:"required,min=10"`
}

// POST /api/u/speeches
func (ctl *SpeechController) CreateDraft(c *fiber.Ctx) error {
	studentID, err := helpers.GetStudentIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil siswa tidak ditemukan di token")
	}

	var req createSpeechReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	sp, err := ctl.Svc.CreateDraft(c.Context(), studentID, strings.TrimSpace(req.Title), req.Body)
	if err != nil {
		return mapSpeechError(c, err)
	}
	return helpers.JsonCreated(c, "Draft pidato dibuat", sp)
}

// POST /api/u/speeches/:id/submit
func (ctl *SpeechController) Submit(c *fiber.Ctx) error {
	studentID, err := helpers.GetStudentIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil siswa tidak ditemukan di token")
	}

	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID pidato tidak valid")
	}

	sp, err := ctl.Svc.Submit(c.Context(), speechID, studentID)
	if err != nil {
		return mapSpeechError(c, err)
	}
	return helpers.JsonUpdated(c, "Pidato diajukan untuk review", sp)
}

// GET /api/u/speeches — pidato milik siswa sendiri
func (ctl *SpeechController) ListMine(c *fiber.Ctx) error {
	studentID, err := helpers.GetStudentIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil siswa tidak ditemukan di token")
	}

	var rows []model.SpeechModel
	if err := ctl.DB.Where("speech_student_id = ?", studentID).
		Order("speech_created_at DESC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pidato")
	}
	return helpers.JsonOK(c, "OK", rows)
}

type reviewSpeechReq struct {
	Approved *bool   `json:"approved" validate:"required"`
	Note     *string `json:"note" validate:"omitempty,max=255"`
}

// POST /api/t/speeches/:id/review
func (ctl *SpeechController) Review(c *fiber.Ctx) error {
	reviewerID, err := helpers.GetTeacherIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil guru tidak ditemukan di token")
	}

	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID pidato tidak valid")
	}

	var req reviewSpeechReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	sp, err := ctl.Svc.Review(c.Context(), speechID, reviewerID, *req.Approved, req.Note)
	if err != nil {
		return mapSpeechError(c, err)
	}

	msg := "Pidato ditolak"
	if *req.Approved {
		msg = "Pidato disetujui"
	}
	return helpers.JsonUpdated(c, msg, sp)
}

// GET /api/t/speeches/queue — antrian pidato submitted
func (ctl *SpeechController) ReviewQueue(c *fiber.Ctx) error {
	var rows []model.SpeechModel
	if err := ctl.DB.Where("speech_status = ?", model.SpeechStatusSubmitted).
		Order("speech_submitted_at ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil antrian")
	}
	return helpers.JsonOK(c, "OK", fiber.Map{"speeches": rows, "count": len(rows)})
}

// POST /api/s/speeches/:id/publish
func (ctl *SpeechController) Publish(c *fiber.Ctx) error {
	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID pidato tidak valid")
	}

	sp, err := ctl.Svc.Publish(c.Context(), speechID)
	if err != nil {
		return mapSpeechError(c, err)
	}
	return helpers.JsonUpdated(c, "Pidato dipublikasikan", sp)
}

// GET /api/speeches — publik, hanya yang published
func (ctl *SpeechController) ListPublished(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 10, 50)

	q := ctl.DB.Model(&model.SpeechModel{}).
		Where("speech_status = ?", model.SpeechStatusPublished)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pidato")
	}

	var rows []model.SpeechModel
	if err := q.Order("speech_published_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pidato")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
