package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymtrack_backend/internals/constants"
	overrideModel "gymtrack_backend/internals/features/attendance/overrides/model"
	overrideSvc "gymtrack_backend/internals/features/attendance/overrides/service"
	"gymtrack_backend/internals/features/attendance/sessions/dto"
	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
	settingModel "gymtrack_backend/internals/features/attendance/settings/model"
	settingSvc "gymtrack_backend/internals/features/attendance/settings/service"
)

// MemberResolver: kolaborator identitas untuk QR statis (token opaque → member).
// Implementasinya milik modul membership, bukan core attendance.
type MemberResolver interface {
	ResolveMember(ctx context.Context, gymID uuid.UUID, token string) (uuid.UUID, error)
}

type Service struct {
	DB        *gorm.DB
	Settings  *settingSvc.Service
	Overrides *overrideSvc.Service
	QRSecret  string
	Resolver  MemberResolver // boleh nil kalau tenant hanya pakai QR dinamis
}

func New(db *gorm.DB, qrSecret string) *Service {
	return &Service{
		DB:        db,
		Settings:  settingSvc.New(db),
		Overrides: overrideSvc.New(db),
		QRSecret:  qrSecret,
	}
}

// Deteksi unique violation Postgres (kode "23505") tanpa import pgconn
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}

/* ========== CHECK-IN / CHECK-OUT ========== */

// CheckIn membuat sesi ACTIVE baru. Duplikat (member sudah ACTIVE) ditolak oleh
// unique index di storage — insert dulu, baru map unique violation ke 409.
func (s *Service) CheckIn(ctx context.Context, gymID, memberID uuid.UUID, method settingModel.AttendanceMethod) (*sessionModel.AttendanceSessionModel, error) {
	cfg, err := s.Settings.Get(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if !cfg.AttendanceSettingIsEnabled {
		return nil, fiber.NewError(fiber.StatusForbidden, "Attendance sedang dinonaktifkan untuk gym ini")
	}
	if !method.Valid() {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Method tidak dikenal")
	}
	if !cfg.MethodActive(method) {
		return nil, fiber.NewError(fiber.StatusConflict, "Method "+string(method)+" tidak aktif untuk gym ini")
	}

	m := sessionModel.AttendanceSessionModel{
		AttendanceSessionGymID:      gymID,
		AttendanceSessionMemberID:   memberID,
		AttendanceSessionCheckInAt:  time.Now(),
		AttendanceSessionMethod:     string(method),
		AttendanceSessionStatus:     sessionModel.StatusActive,
		AttendanceSessionConcurrent: cfg.AllowsConcurrent(method),
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Member sudah memiliki sesi aktif")
		}
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyimpan check-in")
	}
	return &m, nil
}

// QRCheckIn: resolve token → member, lalu delegasi ke CheckIn dengan method qr.
func (s *Service) QRCheckIn(ctx context.Context, gymID uuid.UUID, token string) (*sessionModel.AttendanceSessionModel, error) {
	cfg, err := s.Settings.Get(ctx, gymID)
	if err != nil {
		return nil, err
	}

	var memberID uuid.UUID
	switch cfg.AttendanceSettingQRType {
	case settingModel.QRTypeDynamic:
		tokenGymID, mid, err := ParseQRToken(s.QRSecret, token, time.Now())
		if err != nil {
			return nil, err
		}
		if tokenGymID != gymID {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "QR token bukan untuk gym ini")
		}
		memberID = mid
	default: // static: token opaque, diresolve kolaborator membership
		if s.Resolver == nil {
			return nil, fiber.NewError(fiber.StatusNotImplemented, "QR statis belum dikonfigurasi untuk gym ini")
		}
		mid, err := s.Resolver.ResolveMember(ctx, gymID, token)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "QR token tidak dikenali")
		}
		memberID = mid
	}

	return s.CheckIn(ctx, gymID, memberID, settingModel.MethodQR)
}

// CheckOut menyelesaikan sesi ACTIVE milik member sendiri.
func (s *Service) CheckOut(ctx context.Context, gymID, attendanceID uuid.UUID) (*sessionModel.AttendanceSessionModel, error) {
	var out *sessionModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockSession(tx, gymID, attendanceID, false)
		if err != nil {
			return err
		}
		if m.AttendanceSessionStatus != sessionModel.StatusActive {
			return fiber.NewError(fiber.StatusConflict, "Sesi sudah selesai")
		}

		now := time.Now()
		dur := sessionModel.DurationMinutesBetween(m.AttendanceSessionCheckInAt, now)
		m.AttendanceSessionCheckOutAt = &now
		m.AttendanceSessionStatus = sessionModel.StatusCompleted
		m.AttendanceSessionDurationMinutes = &dur

		if err := tx.Save(m).Error; err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyimpan check-out")
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lockSession(tx *gorm.DB, gymID, attendanceID uuid.UUID, includeDeleted bool) (*sessionModel.AttendanceSessionModel, error) {
	q := tx
	if includeDeleted {
		q = q.Unscoped()
	}
	var m sessionModel.AttendanceSessionModel
	err := q.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("attendance_session_id = ? AND attendance_session_gym_id = ?", attendanceID, gymID).
		First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sesi attendance tidak ditemukan")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca sesi attendance")
	}
	return &m, nil
}

/* ========== QR TOKEN (staff men-generate untuk member) ========== */

func (s *Service) IssueMemberQRToken(ctx context.Context, gymID, memberID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	cfg, err := s.Settings.Get(ctx, gymID)
	if err != nil {
		return "", time.Time{}, err
	}
	if cfg.AttendanceSettingQRType != settingModel.QRTypeDynamic {
		return "", time.Time{}, fiber.NewError(fiber.StatusConflict, "Gym ini memakai QR statis")
	}
	return IssueQRToken(s.QRSecret, gymID, memberID, ttl, time.Now())
}

/* ========== AUTO-CHECKOUT SWEEP ========== */

// SweepDuration: durasi auto-checkout di-clamp di batas afterHours, bukan now-checkIn.
func SweepDuration(afterHours int) int { return afterHours * 60 }

// Sweep force-complete semua sesi ACTIVE yang lewat batas auto-checkout tenant.
// Tiap sesi diproses di transaksinya sendiri; satu gagal tidak membatalkan yang lain.
// Aman di-rerun: hanya menyentuh sesi yang masih ACTIVE melewati threshold.
func (s *Service) Sweep(ctx context.Context, cfg *settingModel.AttendanceSettingModel, now time.Time) (int, error) {
	if !cfg.AttendanceSettingAutoCheckoutEnabled {
		return 0, nil
	}
	afterHours := cfg.AttendanceSettingAutoCheckoutAfterHours
	threshold := now.Add(-time.Duration(afterHours) * time.Hour)

	var stale []sessionModel.AttendanceSessionModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_session_gym_id = ?", cfg.AttendanceSettingGymID).
		Where("attendance_session_status = ?", sessionModel.StatusActive).
		Where("attendance_session_check_in_at < ?", threshold).
		Find(&stale).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca sesi stale")
	}

	done := 0
	for i := range stale {
		if err := s.forceCheckoutStale(ctx, &stale[i], afterHours); err != nil {
			log.Printf("[SWEEP] gym=%s session=%s err: %v",
				cfg.AttendanceSettingGymID, stale[i].AttendanceSessionID, err)
			continue
		}
		done++
	}
	return done, nil
}

// applyAutoCheckout menyelesaikan sesi stale di batas afterHours: checkout di
// boundary checkIn+afterHours (bukan now), durasi di-clamp ke batas yang sama.
func applyAutoCheckout(m *sessionModel.AttendanceSessionModel, afterHours int) {
	boundary := m.AttendanceSessionCheckInAt.Add(time.Duration(afterHours) * time.Hour)
	dur := SweepDuration(afterHours)
	m.AttendanceSessionCheckOutAt = &boundary
	m.AttendanceSessionStatus = sessionModel.StatusCompleted
	m.AttendanceSessionDurationMinutes = &dur
	m.AttendanceSessionOverridden = true
}

func (s *Service) forceCheckoutStale(ctx context.Context, stale *sessionModel.AttendanceSessionModel, afterHours int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockSession(tx, stale.AttendanceSessionGymID, stale.AttendanceSessionID, false)
		if err != nil {
			return err
		}
		if m.AttendanceSessionStatus != sessionModel.StatusActive {
			return nil // sudah di-checkout orang lain; sweep idempoten
		}

		prev := m.Snapshot()
		applyAutoCheckout(m, afterHours)

		if err := tx.Save(m).Error; err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyimpan auto-checkout")
		}

		return s.appendLog(tx, m, overrideModel.ActionForceCheckout, constants.SystemStaffID,
			"Auto-checkout: sesi melewati batas durasi tenant", &prev, "", constants.SystemUserAgent)
	})
}

// newLogEntry membangun entry audit dari state sesi SESUDAH mutasi diterapkan;
// snapshot prev dipotret caller sebelum mutasi.
func newLogEntry(
	m *sessionModel.AttendanceSessionModel,
	action overrideModel.OverrideAction,
	staffID uuid.UUID,
	reason string,
	prev *overrideModel.SessionSnapshot,
	ip, userAgent string,
) (*overrideModel.AttendanceOverrideLogModel, error) {
	entry := overrideModel.AttendanceOverrideLogModel{
		AttendanceOverrideLogAttendanceID: m.AttendanceSessionID,
		AttendanceOverrideLogGymID:        m.AttendanceSessionGymID,
		AttendanceOverrideLogMemberID:     m.AttendanceSessionMemberID,
		AttendanceOverrideLogStaffID:      staffID,
		AttendanceOverrideLogAction:       action,
		AttendanceOverrideLogReason:       reason,
		AttendanceOverrideLogIPAddress:    ip,
		AttendanceOverrideLogUserAgent:    userAgent,
	}
	if prev != nil {
		raw, err := prev.ToJSON()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal serialisasi snapshot")
		}
		entry.AttendanceOverrideLogPreviousValue = raw
	}
	newSnap := m.Snapshot()
	raw, err := newSnap.ToJSON()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal serialisasi snapshot")
	}
	entry.AttendanceOverrideLogNewValue = raw
	return &entry, nil
}

func (s *Service) appendLog(
	tx *gorm.DB,
	m *sessionModel.AttendanceSessionModel,
	action overrideModel.OverrideAction,
	staffID uuid.UUID,
	reason string,
	prev *overrideModel.SessionSnapshot,
	ip, userAgent string,
) error {
	entry, err := newLogEntry(m, action, staffID, reason, prev, ip, userAgent)
	if err != nil {
		return err
	}
	return s.Overrides.Append(tx, entry)
}

/* ========== STAFF OVERRIDE ========== */

// StaffOverride: semua mutasi staff terhadap sesi. Mutasi + entry audit jalan dalam
// SATU transaksi — dua-duanya sukses atau dua-duanya batal.
func (s *Service) StaffOverride(
	ctx context.Context,
	gymID, staffID uuid.UUID,
	attendanceID *uuid.UUID,
	req dto.StaffOverrideRequest,
	ip, userAgent string,
) (*sessionModel.AttendanceSessionModel, error) {
	// reason dicek sebelum menyentuh store — penolakan tidak meninggalkan jejak apa pun
	if err := overrideSvc.ValidateReason(req.Reason); err != nil {
		return nil, err
	}
	if staffID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Override tanpa identitas staff ditolak")
	}
	action := overrideModel.OverrideAction(req.Action)
	if !action.Valid() {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Action override tidak dikenal")
	}

	if action == overrideModel.ActionManualCheckin {
		return s.overrideManualCheckin(ctx, gymID, staffID, req, ip, userAgent)
	}
	if attendanceID == nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "attendance_id wajib untuk action "+req.Action)
	}

	var out *sessionModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		includeDeleted := action == overrideModel.ActionRestore
		m, err := lockSession(tx, gymID, *attendanceID, includeDeleted)
		if err != nil {
			return err
		}
		prev := m.Snapshot()

		switch action {
		case overrideModel.ActionManualCheckout, overrideModel.ActionForceCheckout:
			if m.AttendanceSessionStatus != sessionModel.StatusActive {
				return fiber.NewError(fiber.StatusConflict, "Sesi sudah selesai")
			}
			now := time.Now()
			dur := sessionModel.DurationMinutesBetween(m.AttendanceSessionCheckInAt, now)
			m.AttendanceSessionCheckOutAt = &now
			m.AttendanceSessionStatus = sessionModel.StatusCompleted
			m.AttendanceSessionDurationMinutes = &dur

		case overrideModel.ActionModifyTime:
			if req.NewCheckIn == nil && req.NewCheckOut == nil {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "modify_time butuh new_check_in dan/atau new_check_out")
			}
			if req.NewCheckIn != nil {
				m.AttendanceSessionCheckInAt = *req.NewCheckIn
			}
			if req.NewCheckOut != nil {
				m.AttendanceSessionCheckOutAt = req.NewCheckOut
			}
			if m.AttendanceSessionCheckOutAt != nil {
				if !m.AttendanceSessionCheckOutAt.After(m.AttendanceSessionCheckInAt) {
					return fiber.NewError(fiber.StatusUnprocessableEntity, "check_out harus setelah check_in")
				}
				// durasi dihitung ulang dari timestamp baru, tidak dibawa dari nilai lama
				dur := sessionModel.DurationMinutesBetween(m.AttendanceSessionCheckInAt, *m.AttendanceSessionCheckOutAt)
				m.AttendanceSessionDurationMinutes = &dur
				m.AttendanceSessionStatus = sessionModel.StatusCompleted
			}

		case overrideModel.ActionDelete:
			// soft delete; status terakhir terekam di snapshot log

		case overrideModel.ActionRestore:
			last, err := s.Overrides.LatestForAttendance(tx, m.AttendanceSessionID)
			if err != nil {
				return err
			}
			prevSnap, err := overrideModel.SnapshotFromJSON(last.AttendanceOverrideLogPreviousValue)
			if err != nil || prevSnap.Status == "" {
				return fiber.NewError(fiber.StatusConflict, "Tidak ada state sebelumnya untuk di-restore")
			}
			m.ApplySnapshot(prevSnap)
		}

		m.AttendanceSessionOverridden = true

		// audit dulu, mutasi menyusul — keduanya satu transaksi
		if err := s.appendLog(tx, m, action, staffID, req.Reason, &prev, ip, userAgent); err != nil {
			return err
		}

		switch action {
		case overrideModel.ActionDelete:
			if err := tx.Model(m).Update("attendance_session_overridden", true).Error; err != nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyimpan override")
			}
			if err := tx.Delete(m).Error; err != nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menghapus sesi")
			}
		case overrideModel.ActionRestore:
			updates := map[string]any{
				"attendance_session_check_in_at":      m.AttendanceSessionCheckInAt,
				"attendance_session_check_out_at":     m.AttendanceSessionCheckOutAt,
				"attendance_session_status":           m.AttendanceSessionStatus,
				"attendance_session_duration_minutes": m.AttendanceSessionDurationMinutes,
				"attendance_session_overridden":       true,
				"attendance_session_deleted_at":       nil,
			}
			if err := tx.Unscoped().Model(m).Updates(updates).Error; err != nil {
				if isUniqueViolation(err) {
					return fiber.NewError(fiber.StatusConflict, "Member sudah memiliki sesi aktif")
				}
				return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal me-restore sesi")
			}
			m.AttendanceSessionDeletedAt = gorm.DeletedAt{}
		default:
			if err := tx.Save(m).Error; err != nil {
				if isUniqueViolation(err) {
					return fiber.NewError(fiber.StatusConflict, "Member sudah memiliki sesi aktif")
				}
				return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyimpan override")
			}
		}

		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// manual_checkin: staff membuat sesi atas nama member. Tetap tunduk unique index.
func (s *Service) overrideManualCheckin(
	ctx context.Context,
	gymID, staffID uuid.UUID,
	req dto.StaffOverrideRequest,
	ip, userAgent string,
) (*sessionModel.AttendanceSessionModel, error) {
	if req.MemberID == nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "member_id wajib untuk manual_checkin")
	}
	method := string(settingModel.MethodManual)
	if req.Method != nil {
		method = *req.Method
	}

	checkIn := time.Now()
	if req.NewCheckIn != nil {
		checkIn = *req.NewCheckIn
	}

	var out *sessionModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := sessionModel.AttendanceSessionModel{
			AttendanceSessionGymID:      gymID,
			AttendanceSessionMemberID:   *req.MemberID,
			AttendanceSessionCheckInAt:  checkIn,
			AttendanceSessionMethod:     method,
			AttendanceSessionStatus:     sessionModel.StatusActive,
			AttendanceSessionOverridden: true,
		}
		if err := tx.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Member sudah memiliki sesi aktif")
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membuat sesi manual")
		}
		if err := s.appendLog(tx, &m, overrideModel.ActionManualCheckin, staffID, req.Reason, nil, ip, userAgent); err != nil {
			return err
		}
		out = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ========== LISTING ========== */

func (s *Service) List(ctx context.Context, gymID uuid.UUID, f dto.ListFilters, offset, limit int) ([]sessionModel.AttendanceSessionModel, int64, error) {
	q := s.DB.WithContext(ctx).
		Model(&sessionModel.AttendanceSessionModel{}).
		Where("attendance_session_gym_id = ?", gymID)

	if f.MemberID != nil {
		q = q.Where("attendance_session_member_id = ?", *f.MemberID)
	}
	if f.Status != nil {
		q = q.Where("attendance_session_status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("attendance_session_check_in_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("attendance_session_check_in_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menghitung sesi")
	}

	var rows []sessionModel.AttendanceSessionModel
	if err := q.
		Order("attendance_session_check_in_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca sesi")
	}
	return rows, total, nil
}
