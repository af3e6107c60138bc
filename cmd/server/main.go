package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/adapters/storage"
	announcementStore "gymdesk/internal/adapters/storage/announcement"
	paymentlogStore "gymdesk/internal/adapters/storage/paymentlog"
	settingsStore "gymdesk/internal/adapters/storage/settings"
	studentStore "gymdesk/internal/adapters/storage/student"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("GYMDESK_DB", "gymdesk.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database schema: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	students := studentStore.NewSQLiteStore(timedDB)
	settings := settingsStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		StudentStore:      students,
		SettlementStore:   students,
		PaymentLogStore:   paymentlogStore.NewSQLiteStore(timedDB),
		AnnouncementStore: announcementStore.NewSQLiteStore(timedDB),
		SettingsStore:     settings,
	}

	// Seed the default admin passcode when no auth settings exist yet
	if err := settings.EnsureAuthDefaults(context.Background()); err != nil {
		log.Fatalf("failed to seed auth settings: %v", err)
	}

	// Configure email sender for payment receipts
	resendKey := os.Getenv("GYMDESK_RESEND_KEY")
	emailFrom := envOrDefault("GYMDESK_RESEND_FROM", "KGF Gym <noreply@kgfgym.example>")
	emailNotify := os.Getenv("GYMDESK_NOTIFY_TO")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailNotify)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailNotify)
		if os.Getenv("GYMDESK_ENV") == "production" {
			log.Println("WARNING: GYMDESK_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set GYMDESK_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + perf endpoint)
	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("GYMDESK_ADDR", ":8080")
	log.Printf("GymDesk %s starting on %s (env=%s)", version, addr, envOrDefault("GYMDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
