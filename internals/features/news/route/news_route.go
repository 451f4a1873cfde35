// file: internals/features/news/route/news_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/news/controller"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func NewsRoutes(app *fiber.App, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewNewsController(db, loc)

	// publik
	app.Get("/api/news", ctl.ListPublic)
	app.Get("/api/news/:slug", ctl.GetBySlug)

	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("berita"), constants.StaffOnly...),
	)
	staff.Get("/news", ctl.ListAll)
	staff.Post("/news", ctl.Create)
	staff.Patch("/news/:id", ctl.Update)
	staff.Delete("/news/:id", ctl.Delete)
}
