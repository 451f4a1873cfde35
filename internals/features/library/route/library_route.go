// file: internals/features/library/route/library_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/library/controller"
	"abcschool_backend/internals/features/library/service"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func LibraryRoutes(app *fiber.App, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewLibraryController(db, service.NewLoanService(db, loc))

	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("perpustakaan"), constants.StaffOnly...),
	)

	staff.Get("/library/books", ctl.ListBooks)
	staff.Post("/library/books", ctl.CreateBook)
	staff.Post("/library/loans", ctl.Borrow)
	staff.Post("/library/loans/:id/return", ctl.Return)
	staff.Get("/library/loans/overdue", ctl.Overdue)
}
