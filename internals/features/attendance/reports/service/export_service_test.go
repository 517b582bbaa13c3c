package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "attendance_export_2026-03-09.csv", ExportFilename(now))
}

func TestRenderCSV(t *testing.T) {
	in := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	memberID := uuid.New()

	completed := completedSession(memberID, in, 60, "qr")
	completed.AttendanceSessionOverridden = true
	rows := []sessionModel.AttendanceSessionModel{
		completed,
		activeSession(memberID, in.Add(time.Hour), "manual"),
	}

	b, err := RenderCSV(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "member_id,check_in,check_out,method,status,duration,overridden", lines[0])

	first := strings.Split(lines[1], ",")
	require.Len(t, first, 7)
	assert.Equal(t, memberID.String(), first[0])
	assert.Equal(t, "2026-03-09T08:00:00Z", first[1])
	assert.Equal(t, "2026-03-09T09:00:00Z", first[2])
	assert.Equal(t, "qr", first[3])
	assert.Equal(t, "completed", first[4])
	assert.Equal(t, "60", first[5])
	assert.Equal(t, "true", first[6])

	// sesi active: check_out dan duration kosong
	second := strings.Split(lines[2], ",")
	assert.Equal(t, "", second[2])
	assert.Equal(t, "active", second[4])
	assert.Equal(t, "", second[5])
	assert.Equal(t, "false", second[6])

	// deterministik: render ulang identik byte-per-byte
	b2, err := RenderCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, b, b2)
}

func TestRenderCSVEmpty(t *testing.T) {
	b, err := RenderCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "member_id,check_in,check_out,method,status,duration,overridden\n", string(b))
}
