// file: internals/features/sessions/route/session_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/sessions/controller"
	"abcschool_backend/internals/features/sessions/service"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func SessionRoutes(app *fiber.App, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewSessionController(service.NewTokenService(db, loc))

	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("sesi kelas"), constants.RoleTeacher, constants.RoleAdmin),
	)
	teacher.Post("/sessions", ctl.CreateSession)
	teacher.Get("/sessions", ctl.ListSessions)
	teacher.Post("/sessions/:id/token", ctl.RefreshToken)

	student := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("validasi token sesi"), constants.RoleStudent),
	)
	student.Post("/sessions/validate-token", ctl.ValidateToken)
}
