// file: internals/features/attendance/route/attendance_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/attendance/controller"
	"abcschool_backend/internals/features/attendance/service"
	rateLimiter "abcschool_backend/internals/middlewares"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func AttendanceRoutes(app *fiber.App, db *gorm.DB, qrSecret string, loc *time.Location) {
	ctl := controller.NewAttendanceController(service.NewLedgerService(db, qrSecret, loc))

	// ==========================
	// SISWA — scan QR kehadiran
	// Base: /api/u
	// ==========================
	student := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("absensi"), constants.RoleStudent),
	)
	student.Post("/attendance/scan", rateLimiter.ScanRateLimiter(), ctl.StudentScan)

	// ==========================
	// GURU — konfirmasi & daftar pending
	// Base: /api/t
	// ==========================
	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("konfirmasi absensi"), constants.RoleTeacher, constants.RoleAdmin),
	)
	teacher.Post("/attendance/confirm", ctl.Confirm)
	teacher.Get("/attendance/pending", ctl.ListPending)

	// ==========================
	// STAF — ekspor QR ruangan
	// Base: /api/s
	// ==========================
	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("QR ruangan"), constants.StaffOnly...),
	)
	staff.Get("/attendance/rooms/:code/qr", ctl.ExportRoomQR)
}
