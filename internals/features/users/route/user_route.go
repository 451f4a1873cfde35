// file: internals/features/users/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/users/controller"
	rateLimiter "abcschool_backend/internals/middlewares"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// ==========================
	// PUBLIC
	// Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.LoginRateLimiter(), authController.Register)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// ==========================
	// PROTECTED
	// ==========================
	protectedAuth := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))

	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Get("/me", authController.Me)
}

func UserAdminRoutes(app *fiber.App, db *gorm.DB) {
	adminController := controller.NewUserAdminController(db)

	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly...),
	)

	admin.Get("/users", adminController.ListUsers)
	admin.Patch("/users/:id", adminController.UpdateUser)
	admin.Delete("/users/:id", adminController.DeactivateUser)

	// Staf sekolah boleh lookup siswa via kode kartu
	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("lookup siswa"), append(constants.StaffOnly, constants.RoleTeacher, constants.RoleSecurity)...),
	)
	staff.Get("/students/:code", adminController.GetStudentByCode)
}
