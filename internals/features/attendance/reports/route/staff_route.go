package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/reports/controller"
)

// ReportStaffRoutes: read-side projection untuk dashboard + export.
func ReportStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db)

	reports := api.Group("/attendance/reports")
	reports.Get("/today", ctrl.Today)
	reports.Get("/", ctrl.Report)
	reports.Get("/export", ctrl.ExportCSV)
	reports.Get("/export.xlsx", ctrl.ExportXLSX)
}
