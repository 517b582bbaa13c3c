package dto

import (
	"time"

	"github.com/google/uuid"

	"gymtrack_backend/internals/features/attendance/overrides/model"
)

type OverrideLogResponse struct {
	ID            uuid.UUID              `json:"id"`
	AttendanceID  uuid.UUID              `json:"attendance_id"`
	GymID         uuid.UUID              `json:"gym_id"`
	MemberID      uuid.UUID              `json:"member_id"`
	StaffID       uuid.UUID              `json:"staff_id"`
	Action        string                 `json:"action"`
	Reason        string                 `json:"reason"`
	PreviousValue *model.SessionSnapshot `json:"previous_value,omitempty"`
	NewValue      *model.SessionSnapshot `json:"new_value,omitempty"`
	IPAddress     string                 `json:"ip_address,omitempty"`
	UserAgent     string                 `json:"user_agent,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

func FromModel(m *model.AttendanceOverrideLogModel) OverrideLogResponse {
	resp := OverrideLogResponse{
		ID:           m.AttendanceOverrideLogID,
		AttendanceID: m.AttendanceOverrideLogAttendanceID,
		GymID:        m.AttendanceOverrideLogGymID,
		MemberID:     m.AttendanceOverrideLogMemberID,
		StaffID:      m.AttendanceOverrideLogStaffID,
		Action:       string(m.AttendanceOverrideLogAction),
		Reason:       m.AttendanceOverrideLogReason,
		IPAddress:    m.AttendanceOverrideLogIPAddress,
		UserAgent:    m.AttendanceOverrideLogUserAgent,
		CreatedAt:    m.AttendanceOverrideLogCreatedAt,
	}
	if len(m.AttendanceOverrideLogPreviousValue) > 0 {
		if snap, err := model.SnapshotFromJSON(m.AttendanceOverrideLogPreviousValue); err == nil {
			resp.PreviousValue = &snap
		}
	}
	if len(m.AttendanceOverrideLogNewValue) > 0 {
		if snap, err := model.SnapshotFromJSON(m.AttendanceOverrideLogNewValue); err == nil {
			resp.NewValue = &snap
		}
	}
	return resp
}

func FromModels(ms []model.AttendanceOverrideLogModel) []OverrideLogResponse {
	out := make([]OverrideLogResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

// QueryFilters dibaca dari query string oleh controller
type QueryFilters struct {
	StaffID      *uuid.UUID
	MemberID     *uuid.UUID
	AttendanceID *uuid.UUID
	From         *time.Time
	To           *time.Time
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

type StaffCount struct {
	StaffID uuid.UUID `json:"staff_id"`
	Count   int64     `json:"count"`
}

type OverrideLogStatsResponse struct {
	Total       int64         `json:"total"`
	PerAction   []ActionCount `json:"per_action"`
	PerStaff    []StaffCount  `json:"per_staff"`
	LastEntryAt *time.Time    `json:"last_entry_at,omitempty"`
}
