package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OverrideAction: jenis mutasi staff terhadap sesi attendance.
type OverrideAction string

const (
	ActionManualCheckin  OverrideAction = "manual_checkin"
	ActionManualCheckout OverrideAction = "manual_checkout"
	ActionForceCheckout  OverrideAction = "force_checkout"
	ActionModifyTime     OverrideAction = "modify_time"
	ActionDelete         OverrideAction = "delete"
	ActionRestore        OverrideAction = "restore"
)

var AllActions = []OverrideAction{
	ActionManualCheckin,
	ActionManualCheckout,
	ActionForceCheckout,
	ActionModifyTime,
	ActionDelete,
	ActionRestore,
}

func (a OverrideAction) Valid() bool {
	for _, v := range AllActions {
		if a == v {
			return true
		}
	}
	return false
}

// SessionSnapshot: potret state sesi sebelum/sesudah override, disimpan sebagai JSONB.
type SessionSnapshot struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Status   string     `json:"status"`
	Duration *int       `json:"duration"`
}

func (s SessionSnapshot) ToJSON() (datatypes.JSON, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func SnapshotFromJSON(raw datatypes.JSON) (SessionSnapshot, error) {
	var s SessionSnapshot
	if len(raw) == 0 {
		return s, nil
	}
	err := json.Unmarshal(raw, &s)
	return s, err
}

// AttendanceOverrideLogModel: append-only. Tidak ada kolom updated_at/deleted_at
// dan tidak ada operasi update/delete di service — ini catatan compliance.
type AttendanceOverrideLogModel struct {
	AttendanceOverrideLogID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_override_log_id" json:"attendance_override_log_id"`
	AttendanceOverrideLogAttendanceID uuid.UUID `gorm:"type:uuid;not null;column:attendance_override_log_attendance_id" json:"attendance_override_log_attendance_id"`
	AttendanceOverrideLogGymID        uuid.UUID `gorm:"type:uuid;not null;column:attendance_override_log_gym_id" json:"attendance_override_log_gym_id"`
	AttendanceOverrideLogMemberID     uuid.UUID `gorm:"type:uuid;not null;column:attendance_override_log_member_id" json:"attendance_override_log_member_id"`
	AttendanceOverrideLogStaffID      uuid.UUID `gorm:"type:uuid;not null;column:attendance_override_log_staff_id" json:"attendance_override_log_staff_id"`

	AttendanceOverrideLogAction OverrideAction `gorm:"type:varchar(24);not null;column:attendance_override_log_action" json:"attendance_override_log_action"`
	AttendanceOverrideLogReason string         `gorm:"type:text;not null;column:attendance_override_log_reason" json:"attendance_override_log_reason"`

	AttendanceOverrideLogPreviousValue datatypes.JSON `gorm:"type:jsonb;column:attendance_override_log_previous_value" json:"attendance_override_log_previous_value,omitempty"`
	AttendanceOverrideLogNewValue      datatypes.JSON `gorm:"type:jsonb;column:attendance_override_log_new_value" json:"attendance_override_log_new_value,omitempty"`

	AttendanceOverrideLogIPAddress string `gorm:"type:varchar(64);column:attendance_override_log_ip_address" json:"attendance_override_log_ip_address,omitempty"`
	AttendanceOverrideLogUserAgent string `gorm:"type:text;column:attendance_override_log_user_agent" json:"attendance_override_log_user_agent,omitempty"`

	AttendanceOverrideLogCreatedAt time.Time `gorm:"column:attendance_override_log_created_at;autoCreateTime" json:"attendance_override_log_created_at"`
}

func (AttendanceOverrideLogModel) TableName() string { return "attendance_override_logs" }
