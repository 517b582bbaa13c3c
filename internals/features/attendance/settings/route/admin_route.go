package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/settings/controller"
	authStaff "gymtrack_backend/internals/middlewares/auth_staff"
)

// AttendanceSettingAdminRoutes: config attendance per gym.
// available-methods hanya untuk owner (privilege terpisah).
func AttendanceSettingAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceSettingController(db)

	settings := api.Group("/attendance/settings")
	settings.Get("/", ctrl.GetSettings)
	settings.Patch("/enabled", authStaff.RequireAdmin(), ctrl.ToggleEnabled)
	settings.Put("/active-methods", authStaff.RequireAdmin(), ctrl.SetActiveMethods)
	settings.Put("/available-methods", authStaff.RequireOwner(), ctrl.SetAvailableMethods)
	settings.Patch("/qr", authStaff.RequireAdmin(), ctrl.UpdateQRSettings)
	settings.Patch("/auto-checkout", authStaff.RequireAdmin(), ctrl.UpdateAutoCheckout)

	api.Get("/attendance/methods", ctrl.GetMethodCatalog)
}
