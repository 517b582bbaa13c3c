package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/reports/service"
	helper "gymtrack_backend/internals/helpers"
	authStaff "gymtrack_backend/internals/middlewares/auth_staff"
)

type ReportController struct {
	Service *service.Service
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Service: service.New(db)}
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	// default: 7 hari terakhir
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -7)

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from harus format YYYY-MM-DD")
		}
		from = t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to harus format YYYY-MM-DD")
		}
		to = t.AddDate(0, 0, 1) // inklusif per hari
	}
	return from, to, nil
}

// GET /attendance/reports/today
func (ctrl *ReportController) Today(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := ctrl.Service.Today(c.UserContext(), gymID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /attendance/reports?period=daily&from=&to=
func (ctrl *ReportController) Report(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	period, err := service.ParsePeriod(strings.TrimSpace(c.Query("period", "daily")))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	from, to, err := parseRange(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	snap, err := ctrl.Service.Report(c.UserContext(), gymID, period, from, to)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", snap)
}

// GET /attendance/reports/export — CSV download
func (ctrl *ReportController) ExportCSV(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	from, to, err := parseRange(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	b, filename, err := ctrl.Service.ExportCSV(c.UserContext(), gymID, from, to)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// GET /attendance/reports/export.xlsx — varian spreadsheet
func (ctrl *ReportController) ExportXLSX(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	from, to, err := parseRange(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	b, filename, err := ctrl.Service.ExportXLSX(c.UserContext(), gymID, from, to)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}
