// file: internals/features/exams/route/exam_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/exams/controller"
	"abcschool_backend/internals/features/exams/service"
	rateLimiter "abcschool_backend/internals/middlewares"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func ExamRoutes(app *fiber.App, db *gorm.DB, qrSecret string, loc *time.Location) {
	ctl := controller.NewExamController(service.NewGateService(db, qrSecret, loc))

	student := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("masuk ujian"), constants.RoleStudent),
	)
	student.Post("/exams/enter", rateLimiter.ScanRateLimiter(), ctl.Enter)

	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("gerbang ujian"), constants.RoleTeacher, constants.RoleAdmin),
	)
	teacher.Post("/exams/unlock/:enrollment_id", ctl.Unlock)
	teacher.Get("/exams/entries", ctl.ListEntries)

	// penutupan kembali hanya lewat admin
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("gerbang ujian"), constants.AdminOnly...),
	)
	admin.Post("/exams/lock/:enrollment_id", ctl.Lock)
}
