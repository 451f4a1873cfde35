// file: internals/features/speeches/route/speech_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/speeches/controller"
	"abcschool_backend/internals/features/speeches/service"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func SpeechRoutes(app *fiber.App, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewSpeechController(db, service.NewWorkflowService(db, loc))

	// publik: baca yang sudah terbit
	app.Get("/api/speeches", ctl.ListPublished)

	student := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("pidato"), constants.RoleStudent),
	)
	student.Get("/speeches", ctl.ListMine)
	student.Post("/speeches", ctl.CreateDraft)
	student.Post("/speeches/:id/submit", ctl.Submit)

	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("review pidato"), constants.RoleTeacher, constants.RoleAdmin),
	)
	teacher.Get("/speeches/queue", ctl.ReviewQueue)
	teacher.Post("/speeches/:id/review", ctl.Review)

	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("publikasi pidato"), constants.StaffOnly...),
	)
	staff.Post("/speeches/:id/publish", ctl.Publish)
}
