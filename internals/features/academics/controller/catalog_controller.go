package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   CatalogController — master data akademik:
   periode, level, kampus, ruangan, course.
========================================================= */

type CatalogController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db, Validate: validator.New()}
}

/* ===== PERIODE ===== */

// GET /api/s/periods?page=&per_page=
func (ctl *CatalogController) ListPeriods(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.AcademicPeriodModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung periode")
	}

	var rows []model.AcademicPeriodModel
	if err := q.Order("academic_period_year DESC, academic_period_month DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil periode")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/s/periods/:id/close — tutup periode, bekukan mutasi
func (ctl *CatalogController) ClosePeriod(c *fiber.Ctx) error {
	periodID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID periode tidak valid")
	}

	res := ctl.DB.Model(&model.AcademicPeriodModel{}).
		Where("academic_period_id = ?", periodID).
		Update("academic_period_is_closed", true)
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menutup periode")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Periode tidak ditemukan")
	}

	return helpers.JsonUpdated(c, "Periode ditutup", fiber.Map{"academic_period_id": periodID})
}

/* ===== LEVEL ===== */

type levelReq struct {
	Name  string `json:"academic_level_name" validate:"required,min=1,max=80"`
	Order int    `json:"academic_level_order" validate:"min=0"`
}

// GET /api/s/levels
func (ctl *CatalogController) ListLevels(c *fiber.Ctx) error {
	var rows []model.AcademicLevelModel
	if err := ctl.DB.Order("academic_level_order ASC, academic_level_name ASC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil level")
	}
	return helpers.JsonOK(c, "OK", rows)
}

// POST /api/s/levels
func (ctl *CatalogController) CreateLevel(c *fiber.Ctx) error {
	var req levelReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.AcademicLevelModel{
		AcademicLevelName:  strings.TrimSpace(req.Name),
		AcademicLevelOrder: req.Order,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Nama level sudah dipakai")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat level")
	}
	return helpers.JsonCreated(c, "Level dibuat", row)
}

/* ===== KAMPUS ===== */

type campusReq struct {
	Name      string  `json:"school_campus_name" validate:"required,min=1,max=80"`
	CenterLat float64 `json:"school_campus_center_lat" validate:"min=-90,max=90"`
	CenterLng float64 `json:"school_campus_center_lng" validate:"min=-180,max=180"`
	RadiusM   float64 `json:"school_campus_radius_m" validate:"omitempty,min=10,max=5000"`
	IsActive  *bool   `json:"school_campus_is_active"`
}

// GET /api/s/campuses
func (ctl *CatalogController) ListCampuses(c *fiber.Ctx) error {
	var rows []model.SchoolCampusModel
	if err := ctl.DB.Order("school_campus_name ASC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kampus")
	}
	return helpers.JsonOK(c, "OK", rows)
}

// POST /api/s/campuses
func (ctl *CatalogController) CreateCampus(c *fiber.Ctx) error {
	var req campusReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.SchoolCampusModel{
		SchoolCampusName:      strings.TrimSpace(req.Name),
		SchoolCampusCenterLat: req.CenterLat,
		SchoolCampusCenterLng: req.CenterLng,
		SchoolCampusRadiusM:   req.RadiusM,
		SchoolCampusIsActive:  true,
	}
	if row.SchoolCampusRadiusM == 0 {
		row.SchoolCampusRadiusM = 150
	}
	if req.IsActive != nil {
		row.SchoolCampusIsActive = *req.IsActive
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kampus")
	}
	return helpers.JsonCreated(c, "Kampus dibuat", row)
}

// PATCH /api/s/campuses/:id
func (ctl *CatalogController) UpdateCampus(c *fiber.Ctx) error {
	campusID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID kampus tidak valid")
	}

	var req campusReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(req.Name) != "" {
		updates["school_campus_name"] = strings.TrimSpace(req.Name)
	}
	if req.CenterLat != 0 || req.CenterLng != 0 {
		updates["school_campus_center_lat"] = req.CenterLat
		updates["school_campus_center_lng"] = req.CenterLng
	}
	if req.RadiusM != 0 {
		updates["school_campus_radius_m"] = req.RadiusM
	}
	if req.IsActive != nil {
		updates["school_campus_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.Model(&model.SchoolCampusModel{}).
		Where("school_campus_id = ?", campusID).
		Updates(updates)
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah kampus")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Kampus tidak ditemukan")
	}
	return helpers.JsonUpdated(c, "Kampus diubah", fiber.Map{"school_campus_id": campusID})
}

/* ===== RUANGAN ===== */

type roomReq struct {
	Code     string     `json:"room_code" validate:"required,min=1,max=30"`
	Name     string     `json:"room_name" validate:"required,min=1,max=80"`
	CampusID *uuid.UUID `json:"room_campus_id"`
}

// GET /api/s/rooms
func (ctl *CatalogController) ListRooms(c *fiber.Ctx) error {
	var rows []model.RoomModel
	if err := ctl.DB.Order("room_code ASC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ruangan")
	}
	return helpers.JsonOK(c, "OK", rows)
}

// POST /api/s/rooms
func (ctl *CatalogController) CreateRoom(c *fiber.Ctx) error {
	var req roomReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.RoomModel{
		RoomCode:     strings.ToUpper(strings.TrimSpace(req.Code)),
		RoomName:     strings.TrimSpace(req.Name),
		RoomCampusID: req.CampusID,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Kode ruangan sudah dipakai")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat ruangan")
	}
	return helpers.JsonCreated(c, "Ruangan dibuat", row)
}

/* ===== COURSE ===== */

type courseReq struct {
	Code string `json:"course_code" validate:"required,min=1,max=30"`
	Name string `json:"course_name" validate:"required,min=1,max=120"`
}

// GET /api/s/courses
func (ctl *CatalogController) ListCourses(c *fiber.Ctx) error {
	var rows []model.CourseModel
	if err := ctl.DB.Order("course_code ASC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	return helpers.JsonOK(c, "OK", rows)
}

// POST /api/s/courses
func (ctl *CatalogController) CreateCourse(c *fiber.Ctx) error {
	var req courseReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.CourseModel{
		CourseCode: strings.ToUpper(strings.TrimSpace(req.Code)),
		CourseName: strings.TrimSpace(req.Name),
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Kode course sudah dipakai")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helpers.JsonCreated(c, "Course dibuat", row)
}
