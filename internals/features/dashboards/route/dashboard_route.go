// file: internals/features/dashboards/route/dashboard_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/dashboards/controller"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func DashboardRoutes(app *fiber.App, db *gorm.DB, qrSecret string, loc *time.Location) {
	ctl := controller.NewDashboardController(db, qrSecret, loc)

	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("dashboard"), constants.RoleTeacher, constants.RoleAdmin),
	)
	teacher.Get("/dashboard", ctl.Teacher)

	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("dashboard"), constants.StaffOnly...),
	)
	staff.Get("/dashboard", ctl.Secretary)

	principal := app.Group("/api/p",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("dashboard pimpinan"), constants.PrincipalAndAbove...),
	)
	principal.Get("/dashboard", ctl.Principal)

	sec := app.Group("/api/sec",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorSecurity("dashboard gerbang"), constants.SecurityOnly...),
	)
	sec.Get("/dashboard", ctl.Security)
}
