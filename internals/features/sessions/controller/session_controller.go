package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/sessions/model"
	"abcschool_backend/internals/features/sessions/service"
	helpers "abcschool_backend/internals/helpers"
)

type SessionController struct {
	Tokens   *service.TokenService
	Validate *validator.Validate
}

func NewSessionController(tokens *service.TokenService) *SessionController {
	return &SessionController{Tokens: tokens, Validate: validator.New()}
}

type createSessionReq struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
	Date    string    `json:"date" validate:"required"` // YYYY-MM-DD
	Topic   *string   `json:"topic" validate:"omitempty,max=120"`
}

// POST /api/t/sessions — guru membuat sesi pertemuan
func (ctl *SessionController) CreateSession(c *fiber.Ctx) error {
	var req createSessionReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
	}

	row := &model.ClassSessionModel{
		ClassSessionGroupID: req.GroupID,
		ClassSessionDate:    date,
		ClassSessionTopic:   req.Topic,
	}
	if err := ctl.Tokens.Sessions.Create(c.Context(), row); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
	}
	return helpers.JsonCreated(c, "Sesi dibuat", row)
}

// GET /api/t/sessions?group_id=&date=YYYY-MM-DD
func (ctl *SessionController) ListSessions(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Query("group_id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "group_id tidak valid")
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
	}

	rows, err := ctl.Tokens.Sessions.ListByGroupAndDate(c.Context(), groupID, date)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return helpers.JsonOK(c, "OK", fiber.Map{"sessions": rows, "count": len(rows)})
}

type refreshTokenReq struct {
	TTLMinutes int `json:"ttl_minutes" validate:"omitempty,min=1,max=1440"`
}

// POST /api/t/sessions/:id/token — generate / perpanjang token QR sesi
func (ctl *SessionController) RefreshToken(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}

	var req refreshTokenReq
	// body opsional, TTL default dipakai kalau kosong
	_ = c.BodyParser(&req)
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	tok, err := ctl.Tokens.GenerateOrRefresh(c.Context(), sessionID, req.TTLMinutes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses token")
	}
	return helpers.JsonOK(c, "Token siap", tok)
}

type validateTokenReq struct {
	Payload string `json:"payload" validate:"required"`
}

// POST /api/u/sessions/validate-token — aplikasi siswa cek token yang discan
func (ctl *SessionController) ValidateToken(c *fiber.Ctx) error {
	var req validateTokenReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	tok, err := ctl.Tokens.Validate(c.Context(), req.Payload)
	switch {
	case errors.Is(err, service.ErrTokenNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Token tidak dikenali")
	case errors.Is(err, service.ErrTokenExpired):
		return helpers.JsonError(c, fiber.StatusGone, "Token sudah kedaluwarsa")
	case err != nil:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memvalidasi token")
	}

	return helpers.JsonOK(c, "Token valid", fiber.Map{
		"session_id": tok.AttendanceTokenSessionID,
		"expires_at": tok.AttendanceTokenExpiresAt,
	})
}
