package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates or updates the schema. Every statement is idempotent
// so the server can run them on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_by VARCHAR(255) NOT NULL DEFAULT 'system',
			last_login TIMESTAMPTZ,
			password_changed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			categories TEXT[] NOT NULL DEFAULT '{}',
			belt_level VARCHAR(50) NOT NULL,
			registration_date DATE NOT NULL DEFAULT CURRENT_DATE,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			emergency_contact_name VARCHAR(255) NOT NULL DEFAULT '',
			emergency_contact_phone VARCHAR(50) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			categories TEXT[] NOT NULL DEFAULT '{}',
			instructor VARCHAR(255) NOT NULL,
			max_capacity INT NOT NULL,
			duration_minutes INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS class_schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			class_id UUID NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			recurring BOOLEAN NOT NULL DEFAULT false,
			days_of_week INT[] NOT NULL DEFAULT '{}',
			recurrence_end_date DATE,
			status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_class_schedules_date ON class_schedules(date)`,
		`CREATE INDEX IF NOT EXISTS idx_class_schedules_class ON class_schedules(class_id)`,

		// Session overrides are logically embedded in their schedule; the
		// composite key gives at most one row per (schedule, date) and lets
		// reconciliation upsert a single date without touching its siblings.
		`CREATE TABLE IF NOT EXISTS schedule_sessions (
			schedule_id UUID NOT NULL REFERENCES class_schedules(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			instructor VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(20),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (schedule_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			class_schedule_id UUID NOT NULL REFERENCES class_schedules(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status VARCHAR(20) NOT NULL,
			category VARCHAR(50) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			recorded_by VARCHAR(255) NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, class_schedule_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_schedule_date ON attendance(class_schedule_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
