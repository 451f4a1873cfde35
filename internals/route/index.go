// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"abcschool_backend/internals/configs"
	academicsRoute "abcschool_backend/internals/features/academics/route"
	attendanceRoute "abcschool_backend/internals/features/attendance/route"
	dashboardRoute "abcschool_backend/internals/features/dashboards/route"
	examRoute "abcschool_backend/internals/features/exams/route"
	gatesecurityRoute "abcschool_backend/internals/features/gatesecurity/route"
	libraryRoute "abcschool_backend/internals/features/library/route"
	newsRoute "abcschool_backend/internals/features/news/route"
	sessionRoute "abcschool_backend/internals/features/sessions/route"
	speechRoute "abcschool_backend/internals/features/speeches/route"
	userRoute "abcschool_backend/internals/features/users/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	qrSecret := configs.QRSecretKey
	loc := configs.SchoolLocation()

	BaseRoutes(app, db)

	// ===================== AUTH / USER BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserAdminRoutes...")
	userRoute.UserAdminRoutes(app, db)

	// ===================== AKADEMIK =====================
	log.Println("[INFO] Mounting Academics routes...")
	academicsRoute.AcademicsRoutes(app, db, qrSecret, loc)

	log.Println("[INFO] Mounting Session routes...")
	sessionRoute.SessionRoutes(app, db, loc)

	// ===================== ABSENSI & UJIAN =====================
	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRoutes(app, db, qrSecret, loc)

	log.Println("[INFO] Mounting Exam routes...")
	examRoute.ExamRoutes(app, db, qrSecret, loc)

	// ===================== OPERASIONAL SEKOLAH =====================
	log.Println("[INFO] Mounting Gate Security routes...")
	gatesecurityRoute.GateSecurityRoutes(app, db, loc)

	log.Println("[INFO] Mounting Library routes...")
	libraryRoute.LibraryRoutes(app, db, loc)

	log.Println("[INFO] Mounting Speech routes...")
	speechRoute.SpeechRoutes(app, db, loc)

	log.Println("[INFO] Mounting News routes...")
	newsRoute.NewsRoutes(app, db, loc)

	// ===================== DASHBOARD =====================
	log.Println("[INFO] Mounting Dashboard routes...")
	dashboardRoute.DashboardRoutes(app, db, qrSecret, loc)
}
