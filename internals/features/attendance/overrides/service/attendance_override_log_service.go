package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymtrack_backend/internals/features/attendance/overrides/dto"
	"gymtrack_backend/internals/features/attendance/overrides/model"
)

// MinReasonLength: reason override wajib, minimal 10 karakter.
const MinReasonLength = 10

func ValidateReason(reason string) error {
	// hitung rune, bukan byte — selaras dengan tag validator `min=10`
	if utf8.RuneCountInString(strings.TrimSpace(reason)) < MinReasonLength {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Reason override wajib diisi minimal 10 karakter")
	}
	return nil
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// Append menulis satu entry audit DI DALAM transaksi mutasi sesi (tx wajib transaksi
// yang sama). Kalau tulis log gagal, transaksi pembungkus ikut gagal — tidak pernah
// ada mutasi tanpa audit atau audit tanpa mutasi.
func (s *Service) Append(tx *gorm.DB, entry *model.AttendanceOverrideLogModel) error {
	if !entry.AttendanceOverrideLogAction.Valid() {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Action override tidak dikenal")
	}
	if err := ValidateReason(entry.AttendanceOverrideLogReason); err != nil {
		return err
	}
	if entry.AttendanceOverrideLogStaffID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Override tanpa identitas staff ditolak")
	}
	if err := tx.Create(entry).Error; err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menulis audit log")
	}
	return nil
}

// Query: baca log audit, created_at DESC. Tidak ada method Update/Delete di
// service ini — by contract store ini append-only.
func (s *Service) Query(ctx context.Context, gymID uuid.UUID, f dto.QueryFilters, offset, limit int) ([]model.AttendanceOverrideLogModel, int64, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.AttendanceOverrideLogModel{}).
		Where("attendance_override_log_gym_id = ?", gymID)

	if f.StaffID != nil {
		q = q.Where("attendance_override_log_staff_id = ?", *f.StaffID)
	}
	if f.MemberID != nil {
		q = q.Where("attendance_override_log_member_id = ?", *f.MemberID)
	}
	if f.AttendanceID != nil {
		q = q.Where("attendance_override_log_attendance_id = ?", *f.AttendanceID)
	}
	if f.From != nil {
		q = q.Where("attendance_override_log_created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("attendance_override_log_created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menghitung audit log")
	}

	var rows []model.AttendanceOverrideLogModel
	if err := q.
		Order("attendance_override_log_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca audit log")
	}
	return rows, total, nil
}

// LatestForAttendance: entry terbaru untuk satu sesi — dipakai action restore.
func (s *Service) LatestForAttendance(tx *gorm.DB, attendanceID uuid.UUID) (*model.AttendanceOverrideLogModel, error) {
	var row model.AttendanceOverrideLogModel
	err := tx.
		Where("attendance_override_log_attendance_id = ?", attendanceID).
		Order("attendance_override_log_created_at DESC").
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.NewError(fiber.StatusNotFound, "Tidak ada riwayat override untuk sesi ini")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca riwayat override")
	}
	return &row, nil
}

// Stats: ringkasan untuk layar audit dashboard.
func (s *Service) Stats(ctx context.Context, gymID uuid.UUID) (*dto.OverrideLogStatsResponse, error) {
	base := s.DB.WithContext(ctx).
		Model(&model.AttendanceOverrideLogModel{}).
		Where("attendance_override_log_gym_id = ?", gymID)

	out := dto.OverrideLogStatsResponse{}

	if err := base.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menghitung audit log")
	}

	if err := base.Session(&gorm.Session{}).
		Select("attendance_override_log_action AS action, COUNT(*) AS count").
		Group("attendance_override_log_action").
		Order("count DESC").
		Scan(&out.PerAction).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal agregasi per action")
	}

	if err := base.Session(&gorm.Session{}).
		Select("attendance_override_log_staff_id AS staff_id, COUNT(*) AS count").
		Group("attendance_override_log_staff_id").
		Order("count DESC").
		Limit(20).
		Scan(&out.PerStaff).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal agregasi per staff")
	}

	var last model.AttendanceOverrideLogModel
	err := base.Session(&gorm.Session{}).
		Order("attendance_override_log_created_at DESC").
		First(&last).Error
	if err == nil {
		out.LastEntryAt = &last.AttendanceOverrideLogCreatedAt
	} else if err != gorm.ErrRecordNotFound {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca entry terakhir")
	}

	return &out, nil
}
