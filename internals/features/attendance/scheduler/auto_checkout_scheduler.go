package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"gymtrack_backend/internals/configs"
	sessionSvc "gymtrack_backend/internals/features/attendance/sessions/service"
	settingModel "gymtrack_backend/internals/features/attendance/settings/model"
)

// StartAutoCheckoutScheduler menjalankan sweep auto-checkout per interval.
// Sweep hanya menyentuh sesi yang masih ACTIVE melewati threshold, jadi aman
// di-rerun; kegagalan satu gym tidak menghentikan gym lain.
func StartAutoCheckoutScheduler(db *gorm.DB) {
	go func() {
		// Interval dari env (default: 30 menit)
		intervalMinutes := 30
		if val := os.Getenv("ATTENDANCE_SWEEP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMinutes = parsed
			}
		}

		svc := sessionSvc.New(db, configs.QRTokenSecret)

		for {
			runSweepPass(db, svc)
			time.Sleep(time.Duration(intervalMinutes) * time.Minute)
		}
	}()
}

func runSweepPass(db *gorm.DB, svc *sessionSvc.Service) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SWEEP] panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var cfgs []settingModel.AttendanceSettingModel
	if err := db.WithContext(ctx).
		Where("attendance_setting_is_enabled = TRUE").
		Where("attendance_setting_auto_checkout_enabled = TRUE").
		Find(&cfgs).Error; err != nil {
		log.Printf("[SWEEP ERROR] Gagal membaca settings: %v", err)
		return
	}

	now := time.Now()
	total := 0
	for i := range cfgs {
		n, err := svc.Sweep(ctx, &cfgs[i], now)
		if err != nil {
			log.Printf("[SWEEP ERROR] gym=%s: %v", cfgs[i].AttendanceSettingGymID, err)
			continue
		}
		total += n
	}
	if total > 0 {
		log.Printf("[SWEEP] %d sesi di-auto-checkout", total)
	} else {
		log.Println("[SWEEP] Tidak ada sesi yang memenuhi syarat auto-checkout")
	}
}
