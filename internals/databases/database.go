package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gymtrack_backend/internals/configs"
	overrideModel "gymtrack_backend/internals/features/attendance/overrides/model"
	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
	settingModel "gymtrack_backend/internals/features/attendance/settings/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=gymtrack&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate + index yang tidak bisa diekspresikan lewat tag GORM.
// Index parsial di bawah adalah penjaga invariant "maksimal satu sesi ACTIVE per member";
// check-in mengandalkan unique violation dari index ini, bukan check-then-act di aplikasi.
func Migrate() {
	if err := DB.AutoMigrate(
		&settingModel.AttendanceSettingModel{},
		&sessionModel.AttendanceSessionModel{},
		&overrideModel.AttendanceOverrideLogModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrate schema: %v", err)
	}

	stmts := []string{
		// satu sesi ACTIVE per (gym, member); sesi QR dengan allow-multiple di-exclude lewat kolom concurrent
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_sessions_one_active
		   ON attendance_sessions (attendance_session_gym_id, attendance_session_member_id)
		   WHERE attendance_session_status = 'active'
		     AND attendance_session_concurrent = FALSE
		     AND attendance_session_deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_sessions_gym_checkin
		   ON attendance_sessions (attendance_session_gym_id, attendance_session_check_in_at)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_override_logs_gym_created
		   ON attendance_override_logs (attendance_override_log_gym_id, attendance_override_log_created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_override_logs_staff_created
		   ON attendance_override_logs (attendance_override_log_staff_id, attendance_override_log_created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_override_logs_member_created
		   ON attendance_override_logs (attendance_override_log_member_id, attendance_override_log_created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_override_logs_attendance
		   ON attendance_override_logs (attendance_override_log_attendance_id)`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Fatalf("❌ Gagal buat index: %v", err)
		}
	}
	log.Println("✅ Schema & index siap.")
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
