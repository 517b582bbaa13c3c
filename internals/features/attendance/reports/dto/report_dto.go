package dto

import (
	"time"

	sessionDTO "gymtrack_backend/internals/features/attendance/sessions/dto"
)

type TodayStats struct {
	Present         int            `json:"present"`          // semua sesi hari ini, apapun statusnya
	Active          int            `json:"active"`           // status ACTIVE
	Completed       int            `json:"completed"`
	Total           int            `json:"total"`
	MethodBreakdown map[string]int `json:"method_breakdown"`
}

type TodayResponse struct {
	Sessions []sessionDTO.SessionResponse `json:"sessions"`
	Stats    TodayStats                   `json:"stats"`
}

type PeriodBucket struct {
	Date               string  `json:"date"` // daily: YYYY-MM-DD, weekly: senin minggu ybs, monthly: YYYY-MM
	Total              int     `json:"total"`
	Completed          int     `json:"completed"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
}

// ReportSnapshot: proyeksi read-side, tidak pernah dipersist sebagai source of truth.
type ReportSnapshotResponse struct {
	Period             string         `json:"period"`
	From               time.Time      `json:"from"`
	To                 time.Time      `json:"to"`
	TotalCheckIns      int            `json:"total_check_ins"`
	UniqueMembers      int            `json:"unique_members"`
	AvgDurationMinutes float64        `json:"avg_duration_minutes"` // mean durasi sesi completed saja
	PeakHour           int            `json:"peak_hour"`            // jam dengan check-in terbanyak, seri → jam terkecil
	DailyBreakdown     []PeriodBucket `json:"daily_breakdown"`
	MethodBreakdown    map[string]int `json:"method_breakdown"`
}
