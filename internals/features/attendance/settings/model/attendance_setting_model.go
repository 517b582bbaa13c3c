package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// QR behaviour per gym
const (
	QRTypeStatic  = "static"
	QRTypeDynamic = "dynamic"
)

// AttendanceSettingModel: satu baris per gym. Tidak pernah dihapus, hanya di-disable.
type AttendanceSettingModel struct {
	AttendanceSettingID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_setting_id" json:"attendance_setting_id"`
	AttendanceSettingGymID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_settings_gym;column:attendance_setting_gym_id" json:"attendance_setting_gym_id"`

	AttendanceSettingIsEnabled bool `gorm:"not null;default:true;column:attendance_setting_is_enabled" json:"attendance_setting_is_enabled"`

	// set method sebagai text[]; invariant: active ⊆ available, active tidak kosong saat enabled
	AttendanceSettingAvailableMethods pq.StringArray `gorm:"type:text[];not null;column:attendance_setting_available_methods" json:"attendance_setting_available_methods"`
	AttendanceSettingActiveMethods    pq.StringArray `gorm:"type:text[];not null;column:attendance_setting_active_methods" json:"attendance_setting_active_methods"`

	AttendanceSettingQRType                  string `gorm:"type:varchar(16);not null;default:dynamic;column:attendance_setting_qr_type" json:"attendance_setting_qr_type"`
	AttendanceSettingQRAllowMultipleCheckins bool   `gorm:"not null;default:false;column:attendance_setting_qr_allow_multiple_checkins" json:"attendance_setting_qr_allow_multiple_checkins"`

	AttendanceSettingAutoCheckoutEnabled    bool `gorm:"not null;default:true;column:attendance_setting_auto_checkout_enabled" json:"attendance_setting_auto_checkout_enabled"`
	AttendanceSettingAutoCheckoutAfterHours int  `gorm:"not null;default:6;column:attendance_setting_auto_checkout_after_hours" json:"attendance_setting_auto_checkout_after_hours"`

	AttendanceSettingCreatedAt time.Time  `gorm:"column:attendance_setting_created_at;autoCreateTime" json:"attendance_setting_created_at"`
	AttendanceSettingUpdatedAt *time.Time `gorm:"column:attendance_setting_updated_at;autoUpdateTime" json:"attendance_setting_updated_at,omitempty"`
}

func (AttendanceSettingModel) TableName() string { return "attendance_settings" }

// DefaultForGym: default tenant baru — enabled, hanya manual yang aktif.
func DefaultForGym(gymID uuid.UUID) AttendanceSettingModel {
	return AttendanceSettingModel{
		AttendanceSettingGymID:                  gymID,
		AttendanceSettingIsEnabled:              true,
		AttendanceSettingAvailableMethods:       pq.StringArray(AllMethodStrings()),
		AttendanceSettingActiveMethods:          pq.StringArray{string(MethodManual)},
		AttendanceSettingQRType:                 QRTypeDynamic,
		AttendanceSettingQRAllowMultipleCheckins: false,
		AttendanceSettingAutoCheckoutEnabled:    true,
		AttendanceSettingAutoCheckoutAfterHours: 6,
	}
}

func (m *AttendanceSettingModel) MethodActive(method AttendanceMethod) bool {
	for _, v := range m.AttendanceSettingActiveMethods {
		if v == string(method) {
			return true
		}
	}
	return false
}

// AllowsConcurrent: exception invariant "satu ACTIVE per member" — hanya QR,
// dan hanya kalau tenant mengizinkan multiple check-in.
func (m *AttendanceSettingModel) AllowsConcurrent(method AttendanceMethod) bool {
	return method == MethodQR && m.AttendanceSettingQRAllowMultipleCheckins
}
