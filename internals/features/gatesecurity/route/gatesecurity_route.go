// file: internals/features/gatesecurity/route/gatesecurity_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/gatesecurity/controller"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func GateSecurityRoutes(app *fiber.App, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewVisitorController(db, loc)

	sec := app.Group("/api/sec",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorSecurity("buku tamu"), constants.SecurityOnly...),
	)

	sec.Post("/visitors/check-in", ctl.CheckIn)
	sec.Post("/visitors/:id/check-out", ctl.CheckOut)
	sec.Get("/visitors", ctl.List)
	sec.Get("/visitors/overstay", ctl.ListOverstay)
}
