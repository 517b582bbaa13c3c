package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/overrides/controller"
)

// OverrideLogStaffRoutes: read-only — store-nya append-only, tidak ada route mutasi.
func OverrideLogStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewOverrideLogController(db)

	logs := api.Group("/attendance/override-logs")
	logs.Get("/", ctrl.List)
	logs.Get("/stats", ctrl.Stats)
}
