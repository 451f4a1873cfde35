package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/news/model"
	helpers "abcschool_backend/internals/helpers"
)

type NewsController struct {
	DB       *gorm.DB
	Loc      *time.Location
	Validate *validator.Validate
}

func NewNewsController(db *gorm.DB, loc *time.Location) *NewsController {
	return &NewsController{DB: db, Loc: loc, Validate: validator.New()}
}

type newsReq struct {
	Title   string `json:"news_title" validate:"required,min=3,max=200"`
	Body    string `json:"news_body" validate:"required,min=10"`
	Publish bool   `json:"publish"`
}

// POST /api/s/news
func (ctl *NewsController) Create(c *fiber.Ctx) error {
	authorID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req newsReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	base := helpers.GenerateSlug(req.Title)
	slug, err := helpers.EnsureUniqueSlug(ctl.DB, base, "news", "news_slug")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}

	row := model.NewsModel{
		NewsTitle:       strings.TrimSpace(req.Title),
		NewsSlug:        slug,
		NewsBody:        req.Body,
		NewsIsPublished: req.Publish,
		NewsAuthorID:    authorID,
	}
	if req.Publish {
		now := time.Now().In(ctl.Loc)
		row.NewsPublishedAt = &now
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Slug berita bentrok, coba lagi")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat berita")
	}
	return helpers.JsonCreated(c, "Berita dibuat", row)
}

// PATCH /api/s/news/:id
func (ctl *NewsController) Update(c *fiber.Ctx) error {
	newsID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID berita tidak valid")
	}

	var req struct {
		Title   *string `json:"news_title" validate:"omitempty,min=3,max=200"`
		Body    *string `json:"news_body" validate:"omitempty,min=10"`
		Publish *bool   `json:"publish"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["news_title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		updates["news_body"] = *req.Body
	}
	if req.Publish != nil {
		updates["news_is_published"] = *req.Publish
		if *req.Publish {
			updates["news_published_at"] = time.Now().In(ctl.Loc)
		}
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.Model(&model.NewsModel{}).
		Where("news_id = ?", newsID).
		Updates(updates)
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah berita")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Berita tidak ditemukan")
	}
	return helpers.JsonUpdated(c, "Berita diubah", fiber.Map{"news_id": newsID})
}

// DELETE /api/s/news/:id
func (ctl *NewsController) Delete(c *fiber.Ctx) error {
	newsID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID berita tidak valid")
	}

	res := ctl.DB.Where("news_id = ?", newsID).Delete(&model.NewsModel{})
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus berita")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Berita tidak ditemukan")
	}
	return helpers.JsonDeleted(c, "Berita dihapus", fiber.Map{"news_id": newsID})
}

// GET /api/news?page=&per_page= — publik, hanya yang terbit
func (ctl *NewsController) ListPublic(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 10, 50)

	q := ctl.DB.Model(&model.NewsModel{}).Where("news_is_published = true")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung berita")
	}

	var rows []model.NewsModel
	if err := q.Order("news_published_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil berita")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/news/:slug — publik
func (ctl *NewsController) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var row model.NewsModel
	if err := ctl.DB.
		Where("news_slug = ? AND news_is_published = true", slug).
		First(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Berita tidak ditemukan")
	}
	return helpers.JsonOK(c, "OK", row)
}

// GET /api/s/news — staf melihat semua, termasuk draft
func (ctl *NewsController) ListAll(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.NewsModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung berita")
	}

	var rows []model.NewsModel
	if err := q.Order("news_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil berita")
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
