package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. Attendance and progress logs are document-valued fields
	// on the student row, stored as JSON text, keeping the record granularity
	// of the upstream document store.
	schema := `
	CREATE TABLE IF NOT EXISTS student (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		access_code TEXT NOT NULL,
		monthly_fee INTEGER NOT NULL DEFAULT 0,
		paid_amount INTEGER NOT NULL DEFAULT 0,
		due_amount INTEGER NOT NULL DEFAULT 0,
		payment_status TEXT NOT NULL,
		next_due_date TEXT,
		join_date TEXT NOT NULL,
		last_payment_date TEXT,
		attendance TEXT NOT NULL DEFAULT '{}',
		progress_logs TEXT NOT NULL DEFAULT '[]',
		plan_details TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_student_access_code ON student(access_code);

	CREATE TABLE IF NOT EXISTS payment_log (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		amount INTEGER NOT NULL,
		date TEXT NOT NULL,
		month_key TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payment_log_month ON payment_log(month_key);

	CREATE TABLE IF NOT EXISTS announcement (
		id TEXT PRIMARY KEY,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL,
		posted_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
