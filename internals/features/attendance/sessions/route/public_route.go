package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/sessions/controller"
	"gymtrack_backend/internals/middlewares"
)

// AttendanceSessionPublicRoutes: endpoint kiosk QR — tanpa JWT, dibatasi rate limiter.
func AttendanceSessionPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceSessionController(db)

	api.Post("/attendance/qr-check-in/:gym_id", middlewares.CheckinRateLimiter(), ctrl.QRCheckIn)
}
