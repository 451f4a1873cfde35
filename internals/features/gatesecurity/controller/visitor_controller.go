package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/gatesecurity/model"
	helpers "abcschool_backend/internals/helpers"
)

// batas default tamu dianggap "kelamaan di dalam"
const defaultOverstayHours = 4

type VisitorController struct {
	DB       *gorm.DB
	Loc      *time.Location
	Validate *validator.Validate
}

func NewVisitorController(db *gorm.DB, loc *time.Location) *VisitorController {
	return &VisitorController{DB: db, Loc: loc, Validate: validator.New()}
}

type checkInVisitorReq struct {
	Name    string         `json:"visitor_log_name" validate:"required,min=2,max=120"`
	Phone   *string        `json:"visitor_log_phone" validate:"omitempty,max=30"`
	Purpose string         `json:"visitor_log_purpose" validate:"required,min=2,max=255"`
	Badge   *string        `json:"visitor_log_badge" validate:"omitempty,max=30"`
	Meta    datatypes.JSON `json:"visitor_log_meta"`
}

// POST /api/sec/visitors/check-in
func (ctl *VisitorController) CheckIn(c *fiber.Ctx) error {
	recordedBy, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req checkInVisitorReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.VisitorLogModel{
		VisitorLogName:        strings.TrimSpace(req.Name),
		VisitorLogPhone:       req.Phone,
		VisitorLogPurpose:     strings.TrimSpace(req.Purpose),
		VisitorLogBadge:       req.Badge,
		VisitorLogMeta:        req.Meta,
		VisitorLogCheckedInAt: time.Now().In(ctl.Loc),
		VisitorLogRecordedBy:  recordedBy,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat tamu")
	}
	return helpers.JsonCreated(c, "Tamu tercatat masuk", row)
}

// POST /api/sec/visitors/:id/check-out
func (ctl *VisitorController) CheckOut(c *fiber.Ctx) error {
	visitorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID kunjungan tidak valid")
	}

	var row model.VisitorLogModel
	if err := ctl.DB.First(&row, "visitor_log_id = ?", visitorID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Kunjungan tidak ditemukan")
	}
	if row.VisitorLogCheckedOutAt != nil {
		return helpers.JsonError(c, fiber.StatusConflict, "Tamu sudah check-out")
	}

	now := time.Now().In(ctl.Loc)
	if err := ctl.DB.Model(&row).
		Update("visitor_log_checked_out_at", now).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat check-out")
	}
	row.VisitorLogCheckedOutAt = &now
	return helpers.JsonUpdated(c, "Tamu tercatat keluar", row)
}

// GET /api/sec/visitors?inside=true&date=YYYY-MM-DD&page=&per_page=
func (ctl *VisitorController) List(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.VisitorLogModel{})
	if c.Query("inside") == "true" {
		q = q.Where("visitor_log_checked_out_at IS NULL")
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, ctl.Loc)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
		}
		q = q.Where("visitor_log_checked_in_at >= ? AND visitor_log_checked_in_at < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kunjungan")
	}

	var rows []model.VisitorLogModel
	if err := q.Order("visitor_log_checked_in_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kunjungan")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/sec/visitors/overstay?hours=4 — tamu masih di dalam melewati batas
func (ctl *VisitorController) ListOverstay(c *fiber.Ctx) error {
	hours := defaultOverstayHours
	if raw := c.Query("hours"); raw != "" {
		h, err := strconv.Atoi(raw)
		if err != nil || h < 1 || h > 48 {
			return helpers.JsonError(c, fiber.StatusBadRequest, "hours harus 1-48")
		}
		hours = h
	}

	cutoff := time.Now().In(ctl.Loc).Add(-time.Duration(hours) * time.Hour)

	var rows []model.VisitorLogModel
	if err := ctl.DB.
		Where("visitor_log_checked_out_at IS NULL AND visitor_log_checked_in_at < ?", cutoff).
		Order("visitor_log_checked_in_at ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data overstay")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"threshold_hours": hours,
		"visitors":        rows,
		"count":           len(rows),
	})
}
