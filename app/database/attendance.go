package database

import (
	"database/sql"

	"karate-attendance/app/models"
)

// UpsertAttendance records one student's outcome for one occurrence. The
// unique (student, schedule, date) key makes re-submission an update, so
// marking the same student twice never produces duplicates.
func UpsertAttendance(db *sql.DB, a *models.Attendance) error {
	query := `INSERT INTO attendance (student_id, class_schedule_id, date, status, category, notes, recorded_by, recorded_at)
			  VALUES ($1, $2, $3::date, $4, $5, $6, $7, NOW())
			  ON CONFLICT (student_id, class_schedule_id, date)
			  DO UPDATE SET status = EXCLUDED.status,
							category = EXCLUDED.category,
							notes = EXCLUDED.notes,
							recorded_by = EXCLUDED.recorded_by,
							recorded_at = NOW(),
							updated_at = NOW()
			  RETURNING id, recorded_at, created_at, updated_at`
	return db.QueryRow(query,
		a.StudentID, a.ClassScheduleID, a.Date, a.Status, a.Category, a.Notes, a.RecordedBy,
	).Scan(&a.ID, &a.RecordedAt, &a.CreatedAt, &a.UpdatedAt)
}

// GetClassAttendance returns attendance for one schedule, optionally narrowed
// to a single occurrence date and a student category.
func GetClassAttendance(db *sql.DB, scheduleID, date, category string) ([]*models.Attendance, error) {
	query := `SELECT a.id, a.student_id, a.class_schedule_id, a.date::text, a.status,
					 a.category, a.notes, a.recorded_by, a.recorded_at, a.created_at, a.updated_at,
					 s.name, s.email
			  FROM attendance a JOIN students s ON s.id = a.student_id
			  WHERE a.class_schedule_id = $1
				AND (NULLIF($2, '') IS NULL OR a.date = NULLIF($2, '')::date)
				AND ($3 = '' OR a.category = $3)
			  ORDER BY s.name ASC`
	rows, err := db.Query(query, scheduleID, date, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{}
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.ClassScheduleID, &a.Date, &a.Status,
			&a.Category, &a.Notes, &a.RecordedBy, &a.RecordedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.StudentName, &a.StudentEmail,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// SearchAttendance finds attendance records across all classes by student
// name or email, optionally narrowed by date range, status, and category.
func SearchAttendance(db *sql.DB, studentQuery, dateFrom, dateTo, status, category string) ([]*models.Attendance, error) {
	query := `SELECT a.id, a.student_id, a.class_schedule_id, a.date::text, a.status,
					 a.category, a.notes, a.recorded_by, a.recorded_at, a.created_at, a.updated_at,
					 s.name, s.email
			  FROM attendance a JOIN students s ON s.id = a.student_id
			  WHERE ($1 = '' OR s.name ILIKE '%' || $1 || '%' OR s.email ILIKE '%' || $1 || '%')
				AND (NULLIF($2, '') IS NULL OR a.date >= NULLIF($2, '')::date)
				AND (NULLIF($3, '') IS NULL OR a.date <= NULLIF($3, '')::date)
				AND ($4 = '' OR a.status = $4)
				AND ($5 = '' OR a.category = $5)
			  ORDER BY a.date DESC, s.name ASC
			  LIMIT 500`
	rows, err := db.Query(query, studentQuery, dateFrom, dateTo, status, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{}
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.ClassScheduleID, &a.Date, &a.Status,
			&a.Category, &a.Notes, &a.RecordedBy, &a.RecordedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.StudentName, &a.StudentEmail,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetAttendanceReport aggregates per-student attendance over a date range.
// Late counts as half a presence in the percentage, mirroring how the school
// has always graded it.
func GetAttendanceReport(db *sql.DB, rangeStart, rangeEnd string) ([]*models.AttendanceReportRow, error) {
	query := `SELECT s.id, s.name, COALESCE(s.categories[1], ''),
					 COUNT(*) AS total,
					 COUNT(*) FILTER (WHERE a.status = 'present') AS present,
					 COUNT(*) FILTER (WHERE a.status = 'absent') AS absent,
					 COUNT(*) FILTER (WHERE a.status = 'late') AS late
			  FROM attendance a JOIN students s ON s.id = a.student_id
			  WHERE a.date BETWEEN $1::date AND $2::date
			  GROUP BY s.id, s.name, s.categories
			  ORDER BY s.name ASC`
	rows, err := db.Query(query, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []*models.AttendanceReportRow
	for rows.Next() {
		r := &models.AttendanceReportRow{}
		if err := rows.Scan(&r.StudentID, &r.StudentName, &r.Category,
			&r.TotalClasses, &r.PresentCount, &r.AbsentCount, &r.LateCount); err != nil {
			return nil, err
		}
		if r.TotalClasses > 0 {
			r.AttendancePercentage = 100 * (float64(r.PresentCount) + 0.5*float64(r.LateCount)) / float64(r.TotalClasses)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

// CountAttendanceSince returns totals used for the dashboard week-attendance
// figure.
func CountAttendanceSince(db *sql.DB, sinceDate string) (total, present int, err error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'present')
			  FROM attendance WHERE date >= $1::date`
	err = db.QueryRow(query, sinceDate).Scan(&total, &present)
	return total, present, err
}
