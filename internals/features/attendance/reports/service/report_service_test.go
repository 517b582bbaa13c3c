package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
)

func completedSession(memberID uuid.UUID, checkIn time.Time, durMinutes int, method string) sessionModel.AttendanceSessionModel {
	out := checkIn.Add(time.Duration(durMinutes) * time.Minute)
	return sessionModel.AttendanceSessionModel{
		AttendanceSessionMemberID:        memberID,
		AttendanceSessionCheckInAt:       checkIn,
		AttendanceSessionCheckOutAt:      &out,
		AttendanceSessionMethod:          method,
		AttendanceSessionStatus:          sessionModel.StatusCompleted,
		AttendanceSessionDurationMinutes: &durMinutes,
	}
}

func activeSession(memberID uuid.UUID, checkIn time.Time, method string) sessionModel.AttendanceSessionModel {
	return sessionModel.AttendanceSessionModel{
		AttendanceSessionMemberID:  memberID,
		AttendanceSessionCheckInAt: checkIn,
		AttendanceSessionMethod:    method,
		AttendanceSessionStatus:    sessionModel.StatusActive,
	}
}

func TestParsePeriod(t *testing.T) {
	for _, ok := range []string{"daily", "weekly", "monthly"} {
		p, err := ParsePeriod(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, string(p))
	}
	_, err := ParsePeriod("hourly")
	require.Error(t, err)
}

func TestBucketKey(t *testing.T) {
	// Rabu 2026-03-11 → minggu dimulai Senin 2026-03-09
	wed := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-11", BucketKey(wed, PeriodDaily))
	assert.Equal(t, "2026-03-09", BucketKey(wed, PeriodWeekly))
	assert.Equal(t, "2026-03", BucketKey(wed, PeriodMonthly))

	// Minggu jatuh ke Senin minggu yang sama, bukan minggu berikutnya
	sun := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", BucketKey(sun, PeriodWeekly))

	mon := time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", BucketKey(mon, PeriodWeekly))
}

func TestBuildSnapshotDaily(t *testing.T) {
	// 10 sesi tersebar di 3 hari
	day1 := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	m1, m2, m3 := uuid.New(), uuid.New(), uuid.New()

	rows := []sessionModel.AttendanceSessionModel{
		completedSession(m1, day1, 60, "manual"),
		completedSession(m2, day1.Add(time.Hour), 90, "qr"),
		completedSession(m3, day1.Add(2*time.Hour), 30, "manual"),
		completedSession(m1, day2, 60, "qr"),
		completedSession(m2, day2.Add(time.Hour), 120, "qr"),
		activeSession(m3, day2.Add(3*time.Hour), "manual"),
		completedSession(m1, day3, 45, "manual"),
		completedSession(m2, day3.Add(time.Hour), 75, "nfc"),
		activeSession(m3, day3.Add(2*time.Hour), "qr"),
		activeSession(m1, day3.Add(4*time.Hour), "manual"),
	}

	snap := BuildSnapshot(rows, PeriodDaily, day1, day3.AddDate(0, 0, 1))

	assert.Equal(t, 10, snap.TotalCheckIns)
	assert.Equal(t, 3, snap.UniqueMembers)
	require.Len(t, snap.DailyBreakdown, 3)

	// bucket urut tanggal, total per bucket menjumlah ke 10
	sum := 0
	for _, b := range snap.DailyBreakdown {
		sum += b.Total
	}
	assert.Equal(t, 10, sum)
	assert.Equal(t, "2026-03-09", snap.DailyBreakdown[0].Date)
	assert.Equal(t, "2026-03-10", snap.DailyBreakdown[1].Date)
	assert.Equal(t, "2026-03-11", snap.DailyBreakdown[2].Date)
	assert.Equal(t, 3, snap.DailyBreakdown[0].Total)
	assert.Equal(t, 3, snap.DailyBreakdown[1].Total)
	assert.Equal(t, 4, snap.DailyBreakdown[2].Total)

	// avg hanya dari sesi completed: (60+90+30+60+120+45+75)/7
	assert.InDelta(t, 480.0/7.0, snap.AvgDurationMinutes, 0.001)

	assert.Equal(t, 4, snap.MethodBreakdown["qr"])
	assert.Equal(t, 5, snap.MethodBreakdown["manual"])
	assert.Equal(t, 1, snap.MethodBreakdown["nfc"])
}

func TestBuildSnapshotPeakHourTieBreak(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	m := uuid.New()
	rows := []sessionModel.AttendanceSessionModel{
		activeSession(m, day.Add(7*time.Hour), "manual"),
		activeSession(m, day.Add(7*time.Hour+30*time.Minute), "manual"),
		activeSession(m, day.Add(18*time.Hour), "manual"),
		activeSession(m, day.Add(18*time.Hour+15*time.Minute), "manual"),
	}

	snap := BuildSnapshot(rows, PeriodDaily, day, day.AddDate(0, 0, 1))
	// seri 7 vs 18 → jam terkecil menang
	assert.Equal(t, 7, snap.PeakHour)
}

func TestBuildSnapshotEmpty(t *testing.T) {
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	snap := BuildSnapshot(nil, PeriodWeekly, from, from.AddDate(0, 0, 7))

	assert.Equal(t, 0, snap.TotalCheckIns)
	assert.Equal(t, 0, snap.UniqueMembers)
	assert.Equal(t, 0.0, snap.AvgDurationMinutes)
	assert.Empty(t, snap.DailyBreakdown)
}

func TestBuildTodayStats(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	m1, m2 := uuid.New(), uuid.New()
	rows := []sessionModel.AttendanceSessionModel{
		activeSession(m1, now, "qr"),
		completedSession(m2, now.Add(-2*time.Hour), 60, "manual"),
		completedSession(m1, now.Add(-4*time.Hour), 45, "qr"),
	}

	stats := BuildTodayStats(rows)
	assert.Equal(t, 3, stats.Present)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 2, stats.MethodBreakdown["qr"])
	assert.Equal(t, 1, stats.MethodBreakdown["manual"])
}
