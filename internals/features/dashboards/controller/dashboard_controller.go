package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsModel "abcschool_backend/internals/features/academics/model"
	attendanceModel "abcschool_backend/internals/features/attendance/model"
	attendanceService "abcschool_backend/internals/features/attendance/service"
	gatesecurityModel "abcschool_backend/internals/features/gatesecurity/model"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   DashboardController — agregat read-only per peran.
========================================================= */

type DashboardController struct {
	DB     *gorm.DB
	Loc    *time.Location
	Ledger *attendanceService.LedgerService
}

func NewDashboardController(db *gorm.DB, qrSecret string, loc *time.Location) *DashboardController {
	return &DashboardController{
		DB:     db,
		Loc:    loc,
		Ledger: attendanceService.NewLedgerService(db, qrSecret, loc),
	}
}

func (ctl *DashboardController) today() string {
	return time.Now().In(ctl.Loc).Format("2006-01-02")
}

// GET /api/t/dashboard — grup hari ini + konfirmasi menunggu
func (ctl *DashboardController) Teacher(c *fiber.Ctx) error {
	teacherID, err := helpers.GetTeacherIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Profil guru tidak ditemukan di token")
	}

	groupIDs, err := ctl.Ledger.Assignments.GroupIDsForTeacher(c.Context(), teacherID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penugasan")
	}

	var groups []academicsModel.MonthlyClassGroupModel
	if len(groupIDs) > 0 {
		if err := ctl.DB.Where("monthly_class_group_id IN ?", groupIDs).
			Order("monthly_class_group_name ASC").
			Find(&groups).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil grup")
		}
	}

	pending, err := ctl.Ledger.ListPending(c.Context(), teacherID, nil, nil)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil konfirmasi pending")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"groups":                groups,
		"pending_confirmations": len(pending),
		"pending_detail":        pending,
	})
}

// GET /api/s/dashboard — rekap enrollment per status periode berjalan
func (ctl *DashboardController) Secretary(c *fiber.Ctx) error {
	now := time.Now().In(ctl.Loc)

	var period academicsModel.AcademicPeriodModel
	if err := ctl.DB.
		Where("academic_period_year = ? AND academic_period_month = ?", now.Year(), int(now.Month())).
		First(&period).Error; err != nil {
		return helpers.JsonOK(c, "Belum ada periode berjalan", fiber.Map{"enrollments_by_status": fiber.Map{}})
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var counts []statusCount
	if err := ctl.DB.Model(&academicsModel.StudentMonthlyEnrollmentModel{}).
		Select("student_monthly_enrollment_status AS status, COUNT(*) AS count").
		Where("student_monthly_enrollment_period_id = ?", period.AcademicPeriodID).
		Group("student_monthly_enrollment_status").
		Scan(&counts).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung enrollment")
	}

	var pendingIntents int64
	if err := ctl.DB.Model(&academicsModel.ReenrollmentIntentModel{}).
		Where("reenrollment_intent_status = ?", academicsModel.ReenrollmentStatusPending).
		Count(&pendingIntents).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung intent")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"period":                period.Code(),
		"enrollments_by_status": counts,
		"pending_reenrollments": pendingIntents,
	})
}

// GET /api/p/dashboard — total kehadiran hari ini untuk kepala sekolah
func (ctl *DashboardController) Principal(c *fiber.Ctx) error {
	today := ctl.today()

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var counts []statusCount
	if err := ctl.DB.Model(&attendanceModel.DailyRoomCheckInModel{}).
		Select("daily_room_checkin_status AS status, COUNT(*) AS count").
		Where("daily_room_checkin_date = ?", today).
		Group("daily_room_checkin_status").
		Scan(&counts).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kehadiran")
	}

	var totalScans int64
	if err := ctl.DB.Model(&attendanceModel.DailyRoomCheckInModel{}).
		Where("daily_room_checkin_date = ?", today).
		Count(&totalScans).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung scan")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"date":                today,
		"attendance_by_status": counts,
		"total_checkins":      totalScans,
	})
}

// GET /api/sec/dashboard — tamu yang masih di dalam
func (ctl *DashboardController) Security(c *fiber.Ctx) error {
	var inside []gatesecurityModel.VisitorLogModel
	if err := ctl.DB.
		Where("visitor_log_checked_out_at IS NULL").
		Order("visitor_log_checked_in_at ASC").
		Find(&inside).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tamu")
	}

	return helpers.JsonOK(c, "OK", fiber.Map{
		"visitors_inside": inside,
		"count":           len(inside),
	})
}
