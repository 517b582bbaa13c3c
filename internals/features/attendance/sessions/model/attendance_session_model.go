package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	overrideModel "gymtrack_backend/internals/features/attendance/overrides/model"
)

type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

// AttendanceSessionModel: satu siklus check-in/check-out member.
// Invariant "maksimal satu ACTIVE per (gym, member)" dijaga index parsial
// uq_attendance_sessions_one_active (lihat databases.Migrate) — bukan oleh aplikasi.
// Kolom concurrent men-exclude sesi QR multi-checkin dari index tersebut.
type AttendanceSessionModel struct {
	AttendanceSessionID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`
	AttendanceSessionGymID    uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_gym_id" json:"attendance_session_gym_id"`
	AttendanceSessionMemberID uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_member_id" json:"attendance_session_member_id"`

	AttendanceSessionCheckInAt  time.Time  `gorm:"not null;column:attendance_session_check_in_at" json:"attendance_session_check_in_at"`
	AttendanceSessionCheckOutAt *time.Time `gorm:"column:attendance_session_check_out_at" json:"attendance_session_check_out_at,omitempty"`

	AttendanceSessionMethod string        `gorm:"type:varchar(16);not null;column:attendance_session_method" json:"attendance_session_method"`
	AttendanceSessionStatus SessionStatus `gorm:"type:varchar(16);not null;default:active;column:attendance_session_status" json:"attendance_session_status"`

	AttendanceSessionDurationMinutes *int `gorm:"column:attendance_session_duration_minutes" json:"attendance_session_duration_minutes,omitempty"`

	AttendanceSessionConcurrent bool `gorm:"not null;default:false;column:attendance_session_concurrent" json:"attendance_session_concurrent"`
	AttendanceSessionOverridden bool `gorm:"not null;default:false;column:attendance_session_overridden" json:"attendance_session_overridden"`

	AttendanceSessionCreatedAt time.Time      `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt *time.Time     `gorm:"column:attendance_session_updated_at;autoUpdateTime" json:"attendance_session_updated_at,omitempty"`
	AttendanceSessionDeletedAt gorm.DeletedAt `gorm:"column:attendance_session_deleted_at;index" json:"attendance_session_deleted_at,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

// DurationMinutesBetween: floor((out-in)/60s). Dipakai checkout, modify_time, dan sweep.
func DurationMinutesBetween(in, out time.Time) int {
	d := out.Sub(in)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// Snapshot memotret state untuk audit log (sebelum/sesudah override).
func (m *AttendanceSessionModel) Snapshot() overrideModel.SessionSnapshot {
	in := m.AttendanceSessionCheckInAt
	return overrideModel.SessionSnapshot{
		CheckIn:  &in,
		CheckOut: m.AttendanceSessionCheckOutAt,
		Status:   string(m.AttendanceSessionStatus),
		Duration: m.AttendanceSessionDurationMinutes,
	}
}

// ApplySnapshot mengembalikan state dari snapshot (action restore).
func (m *AttendanceSessionModel) ApplySnapshot(s overrideModel.SessionSnapshot) {
	if s.CheckIn != nil {
		m.AttendanceSessionCheckInAt = *s.CheckIn
	}
	m.AttendanceSessionCheckOutAt = s.CheckOut
	if s.Status != "" {
		m.AttendanceSessionStatus = SessionStatus(s.Status)
	}
	m.AttendanceSessionDurationMinutes = s.Duration
}
