// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/configs"
	overrideRoute "gymtrack_backend/internals/features/attendance/overrides/route"
	reportRoute "gymtrack_backend/internals/features/attendance/reports/route"
	sessionRoute "gymtrack_backend/internals/features/attendance/sessions/route"
	settingRoute "gymtrack_backend/internals/features/attendance/settings/route"
	authStaff "gymtrack_backend/internals/middlewares/auth_staff"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== GROUPS =====================

	// PUBLIC → kiosk QR, tanpa JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// STAFF → butuh token staff
	log.Println("[INFO] Setting up STAFF group...")
	staff := app.Group("/api/s",
		authStaff.AuthStaff(authStaff.AuthStaffOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Attendance routes...")
	sessionRoute.AttendanceSessionPublicRoutes(public, db)
	sessionRoute.AttendanceSessionStaffRoutes(staff, db)
	settingRoute.AttendanceSettingAdminRoutes(staff, db)
	overrideRoute.OverrideLogStaffRoutes(staff, db)
	reportRoute.ReportStaffRoutes(staff, db)
}
