package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	userModel "abcschool_backend/internals/features/users/model"
	userRepo "abcschool_backend/internals/features/users/repository"
	"abcschool_backend/internals/features/users/service"
	helpers "abcschool_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

// Me mengembalikan user + profil sesuai role dari token.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}

	resp := fiber.Map{"user": user}

	switch user.UserRole {
	case constants.RoleStudent:
		sp, err := userRepo.FindStudentProfileByUserID(ac.DB, userID)
		if err == nil {
			resp["student_profile"] = sp
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil siswa")
		}
	case constants.RoleTeacher:
		tp, err := userRepo.FindTeacherProfileByUserID(ac.DB, userID)
		if err == nil {
			resp["teacher_profile"] = tp
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil guru")
		}
	}

	return helpers.JsonOK(c, "OK", resp)
}
