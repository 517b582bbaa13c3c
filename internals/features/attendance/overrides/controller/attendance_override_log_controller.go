package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/overrides/dto"
	"gymtrack_backend/internals/features/attendance/overrides/service"
	helper "gymtrack_backend/internals/helpers"
	authStaff "gymtrack_backend/internals/middlewares/auth_staff"
)

type OverrideLogController struct {
	Service *service.Service
}

func NewOverrideLogController(db *gorm.DB) *OverrideLogController {
	return &OverrideLogController{Service: service.New(db)}
}

func parseUUIDQuery(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" tidak valid")
	}
	return &id, nil
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" harus format YYYY-MM-DD")
	}
	return &t, nil
}

// GET /attendance/override-logs?staff_id=&member_id=&attendance_id=&from=&to=
func (ctrl *OverrideLogController) List(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var f dto.QueryFilters
	if f.StaffID, err = parseUUIDQuery(c, "staff_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.MemberID, err = parseUUIDQuery(c, "member_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.AttendanceID, err = parseUUIDQuery(c, "attendance_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.From, err = parseDateQuery(c, "from"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.To, err = parseDateQuery(c, "to"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.To != nil {
		// to bersifat inklusif per hari
		end := f.To.AddDate(0, 0, 1)
		f.To = &end
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Service.Query(c.UserContext(), gymID, f, paging.Offset, paging.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /attendance/override-logs/stats
func (ctrl *OverrideLogController) Stats(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	stats, err := ctrl.Service.Stats(c.UserContext(), gymID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}
