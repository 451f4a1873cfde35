package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "abcschool_backend/internals/features/users/model"
	helpers "abcschool_backend/internals/helpers"
)

type UserAdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db, Validate: validator.New()}
}

// GET /api/a/users?role=&q=&page=&per_page=
func (ctl *UserAdminController) ListUsers(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&userModel.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
	}

	var users []userModel.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	return helpers.JsonList(c, "OK", users, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

type updateUserReq struct {
	UserName *string `json:"user_name" validate:"omitempty,min=2,max=80"`
	UserRole *string `json:"user_role" validate:"omitempty,oneof=student teacher secretary principal security admin"`
	IsActive *bool   `json:"user_is_active"`
}

// PATCH /api/a/users/:id
func (ctl *UserAdminController) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	var req updateUserReq
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}
	if req.UserName != nil {
		updates["user_name"] = strings.TrimSpace(*req.UserName)
	}
	if req.UserRole != nil {
		updates["user_role"] = *req.UserRole
	}
	if req.IsActive != nil {
		updates["user_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah user")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	return helpers.JsonUpdated(c, "User berhasil diubah", fiber.Map{"user_id": userID})
}

// DELETE /api/a/users/:id — soft delete + nonaktifkan
func (ctl *UserAdminController) DeactivateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", userID).
			Update("user_is_active", false).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&userModel.UserModel{}).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan user")
	}

	return helpers.JsonDeleted(c, "User dinonaktifkan", fiber.Map{"user_id": userID})
}

// GET /api/a/students/:code — lookup cepat profil siswa via kode kartu
func (ctl *UserAdminController) GetStudentByCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Kode siswa wajib diisi")
	}

	var sp userModel.StudentProfileModel
	if err := ctl.DB.Where("student_profile_student_code = ?", code).First(&sp).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", sp.StudentProfileUserID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"user":            user,
		"student_profile": sp,
	})
}
