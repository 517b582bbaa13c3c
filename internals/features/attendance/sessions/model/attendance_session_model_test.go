package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMinutesBetween(t *testing.T) {
	in := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	// floor, bukan round
	assert.Equal(t, 90, DurationMinutesBetween(in, in.Add(90*time.Minute)))
	assert.Equal(t, 90, DurationMinutesBetween(in, in.Add(90*time.Minute+59*time.Second)))
	assert.Equal(t, 0, DurationMinutesBetween(in, in.Add(30*time.Second)))

	// checkout sebelum checkin → 0, bukan negatif
	assert.Equal(t, 0, DurationMinutesBetween(in, in.Add(-10*time.Minute)))
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(75 * time.Minute)
	dur := 75

	m := AttendanceSessionModel{
		AttendanceSessionCheckInAt:       in,
		AttendanceSessionCheckOutAt:      &out,
		AttendanceSessionStatus:          StatusCompleted,
		AttendanceSessionDurationMinutes: &dur,
	}

	snap := m.Snapshot()
	require.NotNil(t, snap.CheckIn)
	assert.Equal(t, in, *snap.CheckIn)
	assert.Equal(t, "completed", snap.Status)

	// mutasi lalu restore
	m.AttendanceSessionCheckOutAt = nil
	m.AttendanceSessionStatus = StatusActive
	m.AttendanceSessionDurationMinutes = nil

	m.ApplySnapshot(snap)
	assert.Equal(t, in, m.AttendanceSessionCheckInAt)
	require.NotNil(t, m.AttendanceSessionCheckOutAt)
	assert.Equal(t, out, *m.AttendanceSessionCheckOutAt)
	assert.Equal(t, StatusCompleted, m.AttendanceSessionStatus)
	require.NotNil(t, m.AttendanceSessionDurationMinutes)
	assert.Equal(t, 75, *m.AttendanceSessionDurationMinutes)
}

func TestModifyCheckInShiftsDuration(t *testing.T) {
	// geser check-in 30 menit lebih awal → durasi bertambah 30 menit
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(60 * time.Minute)

	assert.Equal(t, 60, DurationMinutesBetween(in, out))
	assert.Equal(t, 90, DurationMinutesBetween(in.Add(-30*time.Minute), out))
}
