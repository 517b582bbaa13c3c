package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/sessions/controller"
)

// AttendanceSessionStaffRoutes: check-in/out + override (butuh identitas staff dari JWT).
func AttendanceSessionStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceSessionController(db)

	api.Post("/attendance/check-in", ctrl.CheckIn)
	api.Post("/attendance/qr-token", ctrl.IssueQRToken)

	sessions := api.Group("/attendance/sessions")
	sessions.Get("/", ctrl.List)
	sessions.Post("/:id/check-out", ctrl.CheckOut)
	sessions.Post("/:id/override", ctrl.StaffOverride)
	sessions.Post("/override", ctrl.StaffOverride) // manual_checkin (tanpa attendance_id)
}
