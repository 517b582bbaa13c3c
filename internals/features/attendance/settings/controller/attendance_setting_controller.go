package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/settings/dto"
	"gymtrack_backend/internals/features/attendance/settings/service"
	helper "gymtrack_backend/internals/helpers"
	authStaff "gymtrack_backend/internals/middlewares/auth_staff"
)

type AttendanceSettingController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewAttendanceSettingController(db *gorm.DB) *AttendanceSettingController {
	return &AttendanceSettingController{
		Service:  service.New(db),
		Validate: validator.New(),
	}
}

// GET /attendance/settings
func (ctrl *AttendanceSettingController) GetSettings(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctrl.Service.Get(c.UserContext(), gymID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// GET /attendance/methods — katalog method + tier (informasional)
func (ctrl *AttendanceSettingController) GetMethodCatalog(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", dto.MethodCatalog())
}

// PATCH /attendance/settings/enabled
func (ctrl *AttendanceSettingController) ToggleEnabled(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ToggleEnabledRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.ToggleEnabled(c.UserContext(), gymID, *req.Enabled)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Setting attendance diperbarui", dto.FromModel(m))
}

// PUT /attendance/settings/active-methods
func (ctrl *AttendanceSettingController) SetActiveMethods(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SetMethodsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.SetActiveMethods(c.UserContext(), gymID, req.Methods)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Active methods diperbarui", dto.FromModel(m))
}

// PUT /attendance/settings/available-methods (owner only, dijaga di route)
func (ctrl *AttendanceSettingController) SetAvailableMethods(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SetMethodsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.SetAvailableMethods(c.UserContext(), gymID, req.Methods)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Available methods diperbarui", dto.FromModel(m))
}

// PATCH /attendance/settings/qr
func (ctrl *AttendanceSettingController) UpdateQRSettings(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateQRSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.UpdateQRSettings(c.UserContext(), gymID, req.QRType, req.AllowMultipleCheckins)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "QR settings diperbarui", dto.FromModel(m))
}

// PATCH /attendance/settings/auto-checkout
func (ctrl *AttendanceSettingController) UpdateAutoCheckout(c *fiber.Ctx) error {
	gymID, err := authStaff.GetGymID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateAutoCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.UpdateAutoCheckout(c.UserContext(), gymID, req.Enabled, req.AfterHours)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Auto-checkout diperbarui", dto.FromModel(m))
}
