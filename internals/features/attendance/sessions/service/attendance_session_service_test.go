package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack_backend/internals/constants"
	overrideModel "gymtrack_backend/internals/features/attendance/overrides/model"
	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
)

func TestIsUniqueViolation(t *testing.T) {
	// pesan asli Postgres untuk pelanggaran 23505
	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "uq_attendance_sessions_one_active" (SQLSTATE 23505)`)
	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(errors.New("pq: duplicate key value violates unique constraint")))

	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestApplyAutoCheckout(t *testing.T) {
	checkIn := time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	m := sessionModel.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionGymID:     uuid.New(),
		AttendanceSessionMemberID:  uuid.New(),
		AttendanceSessionCheckInAt: checkIn,
		AttendanceSessionMethod:    "manual",
		AttendanceSessionStatus:    sessionModel.StatusActive,
	}

	applyAutoCheckout(&m, 8)

	// checkout di boundary checkIn+8h, durasi di-clamp 480 menit — bukan now-checkIn
	require.NotNil(t, m.AttendanceSessionCheckOutAt)
	assert.Equal(t, checkIn.Add(8*time.Hour), *m.AttendanceSessionCheckOutAt)
	assert.Equal(t, sessionModel.StatusCompleted, m.AttendanceSessionStatus)
	require.NotNil(t, m.AttendanceSessionDurationMinutes)
	assert.Equal(t, 480, *m.AttendanceSessionDurationMinutes)
	assert.True(t, m.AttendanceSessionOverridden)
}

func TestAutoCheckoutLogEntryAttribution(t *testing.T) {
	checkIn := time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	m := sessionModel.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionGymID:     uuid.New(),
		AttendanceSessionMemberID:  uuid.New(),
		AttendanceSessionCheckInAt: checkIn,
		AttendanceSessionMethod:    "manual",
		AttendanceSessionStatus:    sessionModel.StatusActive,
	}

	prev := m.Snapshot()
	applyAutoCheckout(&m, 8)

	entry, err := newLogEntry(&m, overrideModel.ActionForceCheckout, constants.SystemStaffID,
		"Auto-checkout: sesi melewati batas durasi tenant", &prev, "", constants.SystemUserAgent)
	require.NoError(t, err)

	assert.Equal(t, m.AttendanceSessionID, entry.AttendanceOverrideLogAttendanceID)
	assert.Equal(t, m.AttendanceSessionGymID, entry.AttendanceOverrideLogGymID)
	assert.Equal(t, m.AttendanceSessionMemberID, entry.AttendanceOverrideLogMemberID)
	assert.Equal(t, constants.SystemStaffID, entry.AttendanceOverrideLogStaffID)
	assert.Equal(t, overrideModel.ActionForceCheckout, entry.AttendanceOverrideLogAction)
	assert.Equal(t, constants.SystemUserAgent, entry.AttendanceOverrideLogUserAgent)

	prevSnap, err := overrideModel.SnapshotFromJSON(entry.AttendanceOverrideLogPreviousValue)
	require.NoError(t, err)
	assert.Equal(t, "active", prevSnap.Status)
	assert.Nil(t, prevSnap.CheckOut)

	newSnap, err := overrideModel.SnapshotFromJSON(entry.AttendanceOverrideLogNewValue)
	require.NoError(t, err)
	assert.Equal(t, "completed", newSnap.Status)
	require.NotNil(t, newSnap.Duration)
	assert.Equal(t, 480, *newSnap.Duration)
}
