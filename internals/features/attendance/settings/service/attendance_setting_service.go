package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymtrack_backend/internals/features/attendance/settings/model"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

/* ========== pure helpers (dipakai juga oleh test) ========== */

// NormalizeMethods: trim, dedupe, tolak method tak dikenal; hasil dalam urutan kanonik.
func NormalizeMethods(in []string) ([]string, error) {
	seen := map[string]bool{}
	for _, raw := range in {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" {
			continue
		}
		if !model.AttendanceMethod(v).Valid() {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Method tidak dikenal: "+v)
		}
		seen[v] = true
	}
	out := make([]string, 0, len(seen))
	for _, m := range model.AllMethods {
		if seen[string(m)] {
			out = append(out, string(m))
		}
	}
	return out, nil
}

// ValidateMethodSets menjaga invariant config:
// active tidak boleh kosong saat enabled, dan active ⊆ available.
func ValidateMethodSets(enabled bool, active, available []string) error {
	if enabled && len(active) == 0 {
		return fiber.NewError(fiber.StatusConflict, "activeMethods tidak boleh kosong saat attendance enabled")
	}
	avail := map[string]bool{}
	for _, v := range available {
		avail[v] = true
	}
	for _, v := range active {
		if !avail[v] {
			return fiber.NewError(fiber.StatusConflict, "Method "+v+" tidak tersedia untuk gym ini")
		}
	}
	return nil
}

/* ========== reads ========== */

// Get mengembalikan config gym; akses pertama membuat default tenant.
// Insert pakai ON CONFLICT DO NOTHING supaya first-access yang balapan tidak
// menghasilkan dua baris.
func (s *Service) Get(ctx context.Context, gymID uuid.UUID) (*model.AttendanceSettingModel, error) {
	return s.GetTx(s.DB.WithContext(ctx), gymID)
}

func (s *Service) GetTx(tx *gorm.DB, gymID uuid.UUID) (*model.AttendanceSettingModel, error) {
	if tx == nil {
		tx = s.DB
	}
	def := model.DefaultForGym(gymID)
	if err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attendance_setting_gym_id"}},
			DoNothing: true,
		}).
		Create(&def).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyiapkan config attendance")
	}

	var m model.AttendanceSettingModel
	if err := tx.
		Where("attendance_setting_gym_id = ?", gymID).
		Take(&m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Gagal membaca config attendance")
	}
	return &m, nil
}

/* ========== writes (serialized per tenant) ========== */

// withLock menjalankan mutasi di dalam transaksi dengan row lock per gym,
// supaya toggle yang balapan tidak saling menimpa dan invariant tetap terjaga.
func (s *Service) withLock(ctx context.Context, gymID uuid.UUID, mutate func(m *model.AttendanceSettingModel) error) (*model.AttendanceSettingModel, error) {
	var out *model.AttendanceSettingModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.GetTx(tx, gymID); err != nil {
			return err
		}

		var m model.AttendanceSettingModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("attendance_setting_gym_id = ?", gymID).
			Take(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal lock config attendance")
		}

		if err := mutate(&m); err != nil {
			return err
		}
		if err := ValidateMethodSets(
			m.AttendanceSettingIsEnabled,
			m.AttendanceSettingActiveMethods,
			m.AttendanceSettingAvailableMethods,
		); err != nil {
			return err
		}

		if err := tx.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal menyimpan config attendance")
		}
		out = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ToggleEnabled(ctx context.Context, gymID uuid.UUID, enabled bool) (*model.AttendanceSettingModel, error) {
	return s.withLock(ctx, gymID, func(m *model.AttendanceSettingModel) error {
		m.AttendanceSettingIsEnabled = enabled
		return nil
	})
}

func (s *Service) SetActiveMethods(ctx context.Context, gymID uuid.UUID, methods []string) (*model.AttendanceSettingModel, error) {
	norm, err := NormalizeMethods(methods)
	if err != nil {
		return nil, err
	}
	return s.withLock(ctx, gymID, func(m *model.AttendanceSettingModel) error {
		m.AttendanceSettingActiveMethods = pq.StringArray(norm)
		return nil
	})
}

// SetAvailableMethods: operasi administratif (owner) — membatasi method yang boleh
// diaktifkan tenant. Active yang tidak lagi tersedia ikut dipangkas; kalau hasilnya
// kosong saat enabled, seluruh operasi ditolak.
func (s *Service) SetAvailableMethods(ctx context.Context, gymID uuid.UUID, methods []string) (*model.AttendanceSettingModel, error) {
	norm, err := NormalizeMethods(methods)
	if err != nil {
		return nil, err
	}
	if len(norm) == 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "availableMethods tidak boleh kosong")
	}
	return s.withLock(ctx, gymID, func(m *model.AttendanceSettingModel) error {
		avail := map[string]bool{}
		for _, v := range norm {
			avail[v] = true
		}
		kept := make([]string, 0, len(m.AttendanceSettingActiveMethods))
		for _, v := range m.AttendanceSettingActiveMethods {
			if avail[v] {
				kept = append(kept, v)
			}
		}
		m.AttendanceSettingAvailableMethods = pq.StringArray(norm)
		m.AttendanceSettingActiveMethods = pq.StringArray(kept)
		return nil
	})
}

func (s *Service) UpdateQRSettings(ctx context.Context, gymID uuid.UUID, qrType *string, allowMulti *bool) (*model.AttendanceSettingModel, error) {
	return s.withLock(ctx, gymID, func(m *model.AttendanceSettingModel) error {
		if qrType != nil {
			t := strings.ToLower(strings.TrimSpace(*qrType))
			if t != model.QRTypeStatic && t != model.QRTypeDynamic {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "qr_type harus static atau dynamic")
			}
			m.AttendanceSettingQRType = t
		}
		if allowMulti != nil {
			m.AttendanceSettingQRAllowMultipleCheckins = *allowMulti
		}
		return nil
	})
}

func (s *Service) UpdateAutoCheckout(ctx context.Context, gymID uuid.UUID, enabled *bool, afterHours *int) (*model.AttendanceSettingModel, error) {
	return s.withLock(ctx, gymID, func(m *model.AttendanceSettingModel) error {
		if enabled != nil {
			m.AttendanceSettingAutoCheckoutEnabled = *enabled
		}
		if afterHours != nil {
			if *afterHours < 1 || *afterHours > 24 {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "after_hours harus 1..24")
			}
			m.AttendanceSettingAutoCheckoutAfterHours = *afterHours
		}
		return nil
	})
}
