package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/reports/dto"
	sessionDTO "gymtrack_backend/internals/features/attendance/sessions/dto"
	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "period harus daily/weekly/monthly")
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

/* ========== pure aggregation (dipakai juga oleh test) ========== */

// BucketKey menentukan bucket satu sesi untuk granularitas period.
func BucketKey(t time.Time, period Period) string {
	switch period {
	case PeriodWeekly:
		// senin sebagai awal minggu
		monday := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		return monday.Format("2006-01-02")
	case PeriodMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// BuildSnapshot mengagregasi rows menjadi ReportSnapshot.
// avg_duration hanya dari sesi completed; peak_hour seri dimenangkan jam terkecil.
func BuildSnapshot(rows []sessionModel.AttendanceSessionModel, period Period, from, to time.Time) dto.ReportSnapshotResponse {
	out := dto.ReportSnapshotResponse{
		Period:          string(period),
		From:            from,
		To:              to,
		TotalCheckIns:   len(rows),
		MethodBreakdown: map[string]int{},
		DailyBreakdown:  []dto.PeriodBucket{},
	}

	members := map[uuid.UUID]bool{}
	hourCount := map[int]int{}
	type agg struct {
		total, completed, durSum int
	}
	buckets := map[string]*agg{}

	totalDur, totalCompleted := 0, 0
	for i := range rows {
		r := &rows[i]
		members[r.AttendanceSessionMemberID] = true
		out.MethodBreakdown[r.AttendanceSessionMethod]++
		hourCount[r.AttendanceSessionCheckInAt.Hour()]++

		key := BucketKey(r.AttendanceSessionCheckInAt, period)
		b := buckets[key]
		if b == nil {
			b = &agg{}
			buckets[key] = b
		}
		b.total++
		if r.AttendanceSessionStatus == sessionModel.StatusCompleted && r.AttendanceSessionDurationMinutes != nil {
			b.completed++
			b.durSum += *r.AttendanceSessionDurationMinutes
			totalCompleted++
			totalDur += *r.AttendanceSessionDurationMinutes
		}
	}

	out.UniqueMembers = len(members)
	if totalCompleted > 0 {
		out.AvgDurationMinutes = float64(totalDur) / float64(totalCompleted)
	}

	best, bestCount := 0, -1
	for h := 0; h < 24; h++ {
		if hourCount[h] > bestCount {
			best, bestCount = h, hourCount[h]
		}
	}
	out.PeakHour = best

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := buckets[k]
		row := dto.PeriodBucket{Date: k, Total: b.total, Completed: b.completed}
		if b.completed > 0 {
			row.AvgDurationMinutes = float64(b.durSum) / float64(b.completed)
		}
		out.DailyBreakdown = append(out.DailyBreakdown, row)
	}
	return out
}

func BuildTodayStats(rows []sessionModel.AttendanceSessionModel) dto.TodayStats {
	stats := dto.TodayStats{MethodBreakdown: map[string]int{}}
	for i := range rows {
		r := &rows[i]
		stats.Present++
		stats.MethodBreakdown[r.AttendanceSessionMethod]++
		switch r.AttendanceSessionStatus {
		case sessionModel.StatusActive:
			stats.Active++
		case sessionModel.StatusCompleted:
			stats.Completed++
		}
	}
	stats.Total = stats.Present
	return stats
}

/* ========== queries (read-only, tidak pernah memutasi sesi) ========== */

func (s *Service) rowsInRange(ctx context.Context, gymID uuid.UUID, from, to time.Time, includeDeleted bool) ([]sessionModel.AttendanceSessionModel, error) {
	q := s.DB.WithContext(ctx)
	if includeDeleted {
		q = q.Unscoped()
	}
	var rows []sessionModel.AttendanceSessionModel
	err := q.
		Where("attendance_session_gym_id = ?", gymID).
		Where("attendance_session_check_in_at >= ? AND attendance_session_check_in_at < ?", from, to).
		Order("attendance_session_check_in_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca sesi")
	}
	return rows, nil
}

func (s *Service) Today(ctx context.Context, gymID uuid.UUID, now time.Time) (*dto.TodayResponse, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rows, err := s.rowsInRange(ctx, gymID, start, start.AddDate(0, 0, 1), false)
	if err != nil {
		return nil, err
	}
	return &dto.TodayResponse{
		Sessions: sessionDTO.FromModels(rows),
		Stats:    BuildTodayStats(rows),
	}, nil
}

func (s *Service) Report(ctx context.Context, gymID uuid.UUID, period Period, from, to time.Time) (*dto.ReportSnapshotResponse, error) {
	if !to.After(from) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "range tidak valid")
	}
	rows, err := s.rowsInRange(ctx, gymID, from, to, false)
	if err != nil {
		return nil, err
	}
	snap := BuildSnapshot(rows, period, from, to)
	return &snap, nil
}
