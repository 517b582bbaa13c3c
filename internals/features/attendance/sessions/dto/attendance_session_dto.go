package dto

import (
	"time"

	"github.com/google/uuid"

	"gymtrack_backend/internals/features/attendance/sessions/model"
)

/* ========== REQUESTS ========== */

type CheckInRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Method   string    `json:"method" validate:"required,oneof=manual qr nfc biometric"`
}

type QRCheckInRequest struct {
	Token string `json:"token" validate:"required"`
}

// StaffOverrideRequest: satu payload untuk semua action override.
// member_id + method hanya untuk manual_checkin; new_check_in/new_check_out untuk modify_time.
type StaffOverrideRequest struct {
	Action      string     `json:"action" validate:"required,oneof=manual_checkin manual_checkout force_checkout modify_time delete restore"`
	Reason      string     `json:"reason" validate:"required,min=10"`
	MemberID    *uuid.UUID `json:"member_id"`
	Method      *string    `json:"method" validate:"omitempty,oneof=manual qr nfc biometric"`
	NewCheckIn  *time.Time `json:"new_check_in"`
	NewCheckOut *time.Time `json:"new_check_out"`
}

type IssueQRTokenRequest struct {
	MemberID   uuid.UUID `json:"member_id" validate:"required"`
	TTLMinutes *int      `json:"ttl_minutes" validate:"omitempty,min=1,max=1440"`
}

/* ========== RESPONSES ========== */

type SessionResponse struct {
	ID              uuid.UUID  `json:"id"`
	GymID           uuid.UUID  `json:"gym_id"`
	MemberID        uuid.UUID  `json:"member_id"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Overridden      bool       `json:"overridden"`
	CreatedAt       time.Time  `json:"created_at"`
}

func FromModel(m *model.AttendanceSessionModel) SessionResponse {
	return SessionResponse{
		ID:              m.AttendanceSessionID,
		GymID:           m.AttendanceSessionGymID,
		MemberID:        m.AttendanceSessionMemberID,
		CheckIn:         m.AttendanceSessionCheckInAt,
		CheckOut:        m.AttendanceSessionCheckOutAt,
		Method:          m.AttendanceSessionMethod,
		Status:          string(m.AttendanceSessionStatus),
		DurationMinutes: m.AttendanceSessionDurationMinutes,
		Overridden:      m.AttendanceSessionOverridden,
		CreatedAt:       m.AttendanceSessionCreatedAt,
	}
}

func FromModels(ms []model.AttendanceSessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

type QRTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

/* ========== LIST FILTERS ========== */

type ListFilters struct {
	MemberID *uuid.UUID
	Status   *string
	From     *time.Time
	To       *time.Time
}
