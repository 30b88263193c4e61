package database

import (
	"database/sql"

	"karate-attendance/app/models"
)

// GetDashboardStats returns headline counts for the dashboard landing page.
// ClassesToday and WeekAttendance are filled in by the caller, which has the
// schedule expansion at hand.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE status = 'active'`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM classes`).Scan(&stats.TotalClasses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'instructor' AND status = 'active'`).Scan(&stats.ActiveInstructor)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
