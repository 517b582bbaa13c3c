package dto

import (
	"time"

	"github.com/google/uuid"

	"gymtrack_backend/internals/features/attendance/settings/model"
)

/* ========== REQUESTS ========== */

type ToggleEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type SetMethodsRequest struct {
	Methods []string `json:"methods" validate:"required,min=1,dive,oneof=manual qr nfc biometric"`
}

type UpdateQRSettingsRequest struct {
	QRType                *string `json:"qr_type" validate:"omitempty,oneof=static dynamic"`
	AllowMultipleCheckins *bool   `json:"allow_multiple_checkins"`
}

type UpdateAutoCheckoutRequest struct {
	Enabled    *bool `json:"enabled"`
	AfterHours *int  `json:"after_hours" validate:"omitempty,min=1,max=24"`
}

/* ========== RESPONSES ========== */

type QRSettingsResponse struct {
	Type                  string `json:"type"`
	AllowMultipleCheckins bool   `json:"allow_multiple_checkins"`
}

type AutoCheckoutResponse struct {
	Enabled    bool `json:"enabled"`
	AfterHours int  `json:"after_hours"`
}

type AttendanceSettingResponse struct {
	ID               uuid.UUID            `json:"id"`
	GymID            uuid.UUID            `json:"gym_id"`
	IsEnabled        bool                 `json:"is_enabled"`
	AvailableMethods []string             `json:"available_methods"`
	ActiveMethods    []string             `json:"active_methods"`
	QRSettings       QRSettingsResponse   `json:"qr_settings"`
	AutoCheckout     AutoCheckoutResponse `json:"auto_checkout"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        *time.Time           `json:"updated_at,omitempty"`
}

func FromModel(m *model.AttendanceSettingModel) AttendanceSettingResponse {
	return AttendanceSettingResponse{
		ID:               m.AttendanceSettingID,
		GymID:            m.AttendanceSettingGymID,
		IsEnabled:        m.AttendanceSettingIsEnabled,
		AvailableMethods: append([]string(nil), m.AttendanceSettingAvailableMethods...),
		ActiveMethods:    append([]string(nil), m.AttendanceSettingActiveMethods...),
		QRSettings: QRSettingsResponse{
			Type:                  m.AttendanceSettingQRType,
			AllowMultipleCheckins: m.AttendanceSettingQRAllowMultipleCheckins,
		},
		AutoCheckout: AutoCheckoutResponse{
			Enabled:    m.AttendanceSettingAutoCheckoutEnabled,
			AfterHours: m.AttendanceSettingAutoCheckoutAfterHours,
		},
		CreatedAt: m.AttendanceSettingCreatedAt,
		UpdatedAt: m.AttendanceSettingUpdatedAt,
	}
}

// MethodCatalogItem untuk endpoint katalog method (informasional)
type MethodCatalogItem struct {
	Method           string `json:"method"`
	AuthenticityTier string `json:"authenticity_tier"`
}

func MethodCatalog() []MethodCatalogItem {
	out := make([]MethodCatalogItem, 0, len(model.AllMethods))
	for _, m := range model.AllMethods {
		out = append(out, MethodCatalogItem{Method: string(m), AuthenticityTier: m.AuthenticityTier()})
	}
	return out
}
