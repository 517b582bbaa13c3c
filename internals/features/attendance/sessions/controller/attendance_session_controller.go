package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymtrack_backend/internals/configs"
	"gymtrack_backend/internals/features/attendance/sessions/dto"
	"gymtrack_backend/internals/features/attendance/sessions/service"
	settingModel "gymtrack_backend/internals/features/attendance/settings/model"
	helper "gymtrack_backend/internals/helpers"
	authStaff "gymtrack_backend/internals/middlewares/auth_staff"
)

type AttendanceSessionController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewAttendanceSessionController(db *gorm.DB) *AttendanceSessionController {
	return &AttendanceSessionController{
		Service:  service.New(db, configs.QRTokenSecret),
		Validate: validator.New(),
	}
}

// POST /attendance/check-in — check-in manual/nfc/biometric via staff front-desk
func (ctrl *AttendanceSessionController) CheckIn(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.CheckIn(c.UserContext(), gymID, req.MemberID, settingModel.AttendanceMethod(req.Method))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Check-in berhasil", dto.FromModel(m))
}

// POST /attendance/qr-check-in/:gym_id — endpoint publik untuk kiosk QR
func (ctrl *AttendanceSessionController) QRCheckIn(c *fiber.Ctx) error {
	gymID, err := uuid.Parse(strings.TrimSpace(c.Params("gym_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "gym_id tidak valid")
	}

	var req dto.QRCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.QRCheckIn(c.UserContext(), gymID, req.Token)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Check-in berhasil", dto.FromModel(m))
}

// POST /attendance/sessions/:id/check-out
func (ctrl *AttendanceSessionController) CheckOut(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	attendanceID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	m, err := ctrl.Service.CheckOut(c.UserContext(), gymID, attendanceID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Check-out berhasil", dto.FromModel(m))
}

// POST /attendance/qr-token — staff men-generate QR dinamis untuk member
func (ctrl *AttendanceSessionController) IssueQRToken(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.IssueQRTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ttl := service.DefaultQRTokenTTL
	if req.TTLMinutes != nil {
		ttl = time.Duration(*req.TTLMinutes) * time.Minute
	}

	token, exp, err := ctrl.Service.IssueMemberQRToken(c.UserContext(), gymID, req.MemberID, ttl)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.QRTokenResponse{Token: token, ExpiresAt: exp})
}

// POST /attendance/sessions/:id/override  dan  POST /attendance/sessions/override (manual_checkin)
func (ctrl *AttendanceSessionController) StaffOverride(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := authStaff.GetStaffID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var attendanceID *uuid.UUID
	if raw := strings.TrimSpace(c.Params("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
		}
		attendanceID = &id
	}

	var req dto.StaffOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.StaffOverride(c.UserContext(), gymID, staffID, attendanceID, req, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Override tercatat", dto.FromModel(m))
}

// GET /attendance/sessions?member_id=&status=&from=&to=
func (ctrl *AttendanceSessionController) List(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var f dto.ListFilters
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id tidak valid")
		}
		f.MemberID = &id
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if raw != "active" && raw != "completed" {
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus active/completed")
		}
		f.Status = &raw
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from harus format YYYY-MM-DD")
		}
		f.From = &t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to harus format YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Service.List(c.UserContext(), gymID, f, paging.Offset, paging.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
