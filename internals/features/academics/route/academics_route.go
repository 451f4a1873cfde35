// file: internals/features/academics/route/academics_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/constants"
	"abcschool_backend/internals/features/academics/controller"
	"abcschool_backend/internals/features/academics/service"
	authMiddleware "abcschool_backend/internals/middlewares/auth"
)

func AcademicsRoutes(app *fiber.App, db *gorm.DB, qrSecret string, loc *time.Location) {
	catalog := controller.NewCatalogController(db)
	groups := controller.NewGroupController(db, qrSecret)
	reenroll := controller.NewReenrollmentController(db, service.NewReenrollmentService(db, loc))
	cardEnroll := controller.NewCardEnrollController(service.NewCardEnrollService(db, loc), qrSecret)

	// ==========================
	// STAF — master data & rekap
	// Base: /api/s
	// ==========================
	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("data akademik"), constants.StaffOnly...),
	)

	staff.Get("/periods", catalog.ListPeriods)
	staff.Post("/periods/:id/close", catalog.ClosePeriod)

	staff.Get("/levels", catalog.ListLevels)
	staff.Post("/levels", catalog.CreateLevel)

	staff.Get("/campuses", catalog.ListCampuses)
	staff.Post("/campuses", catalog.CreateCampus)
	staff.Patch("/campuses/:id", catalog.UpdateCampus)

	staff.Get("/rooms", catalog.ListRooms)
	staff.Post("/rooms", catalog.CreateRoom)

	staff.Get("/courses", catalog.ListCourses)
	staff.Post("/courses", catalog.CreateCourse)

	staff.Get("/groups", groups.ListGroups)
	staff.Post("/groups", groups.CreateGroup)
	staff.Get("/groups/:id/qr", groups.ExportGroupQR)

	staff.Get("/assignments", groups.ListAssignments)
	staff.Post("/assignments", groups.AssignTeacher)
	staff.Delete("/assignments/:id", groups.RemoveAssignment)

	staff.Get("/enrollments", groups.ListEnrollments)

	staff.Get("/reenrollment", reenroll.ListIntents)
	staff.Post("/reenrollment/:id/decide", reenroll.DecideIntent)

	// ==========================
	// SISWA — niat daftar ulang
	// Base: /api/u
	// ==========================
	student := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("re-enrollment"), constants.RoleStudent),
	)
	student.Post("/reenrollment/intent", reenroll.SubmitIntent)

	// ==========================
	// GURU — daftarkan siswa via kartu
	// Base: /api/t
	// ==========================
	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("pendaftaran via kartu"), constants.RoleTeacher, constants.RoleAdmin),
	)
	teacher.Post("/enrollments/card-scan", cardEnroll.EnrollByCard)
	teacher.Get("/groups", groups.ListGroups)
}
