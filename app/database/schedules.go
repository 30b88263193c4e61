package database

import (
	"database/sql"

	"github.com/lib/pq"

	"karate-attendance/app/models"
)

const scheduleColumns = `s.id, s.class_id, s.date::text, s.start_time, s.end_time,
	s.recurring, s.days_of_week, COALESCE(s.recurrence_end_date::text, ''), s.status,
	s.created_at, s.updated_at, c.name, c.instructor`

func scanSchedule(row interface{ Scan(...any) error }) (*models.ClassSchedule, error) {
	s := &models.ClassSchedule{}
	err := row.Scan(
		&s.ID, &s.ClassID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Recurring, pq.Array(&s.DaysOfWeek), &s.RecurrenceEndDate, &s.Status,
		&s.CreatedAt, &s.UpdatedAt, &s.ClassName, &s.ClassInstructor,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func querySchedules(db *sql.DB, query string, args ...any) ([]*models.ClassSchedule, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.ClassSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// FindSchedules returns raw schedule definitions matching the filters,
// ordered by anchor date then start time.
func FindSchedules(db *sql.DB, f models.ScheduleFilters) ([]*models.ClassSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
			  FROM class_schedules s JOIN classes c ON c.id = s.class_id
			  WHERE (NULLIF($1, '') IS NULL OR s.date >= NULLIF($1, '')::date)
				AND (NULLIF($2, '') IS NULL OR s.date <= NULLIF($2, '')::date)
				AND (NULLIF($3, '') IS NULL OR s.class_id = NULLIF($3, '')::uuid)
			  ORDER BY s.date ASC, s.start_time ASC`
	return querySchedules(db, query, f.RangeStart, f.RangeEnd, f.ClassID)
}

// FindExpansionCandidates loads the schedules that can produce occurrences in
// [rangeStart, rangeEnd]: recurring definitions whose recurrence window
// touches the range, and single definitions dated inside it. Session
// overrides are attached to each returned schedule.
func FindExpansionCandidates(db *sql.DB, rangeStart, rangeEnd, classID string) ([]*models.ClassSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
			  FROM class_schedules s JOIN classes c ON c.id = s.class_id
			  WHERE (NULLIF($3, '') IS NULL OR s.class_id = NULLIF($3, '')::uuid)
				AND (
					(s.recurring
						AND (s.recurrence_end_date IS NULL OR s.recurrence_end_date >= $1::date)
						AND s.date <= $2::date)
					OR
					(NOT s.recurring AND s.date BETWEEN $1::date AND $2::date)
				)
			  ORDER BY s.date ASC, s.start_time ASC`
	schedules, err := querySchedules(db, query, rangeStart, rangeEnd, classID)
	if err != nil {
		return nil, err
	}
	if err := attachSessionOverrides(db, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// SearchPastClasses finds schedule entries whose class already met, for the
// view that lets staff pull up a past class and edit its attendance. With a
// date given the search pins to that day; otherwise it covers everything
// before today. Instructor matches exactly, category by membership in the
// class's category list. Newest first.
func SearchPastClasses(db *sql.DB, date, instructor, category, today string) ([]*models.ClassSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
			  FROM class_schedules s JOIN classes c ON c.id = s.class_id
			  WHERE (CASE WHEN NULLIF($1, '') IS NULL
						  THEN s.date < $4::date
						  ELSE s.date = NULLIF($1, '')::date END)
				AND (NULLIF($2, '') IS NULL OR c.instructor = $2)
				AND (NULLIF($3, '') IS NULL OR $3 = ANY(c.categories))
			  ORDER BY s.date DESC, s.start_time DESC`
	schedules, err := querySchedules(db, query, date, instructor, category, today)
	if err != nil {
		return nil, err
	}
	if err := attachSessionOverrides(db, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func GetScheduleByID(db *sql.DB, scheduleID string) (*models.ClassSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
			  FROM class_schedules s JOIN classes c ON c.id = s.class_id
			  WHERE s.id = $1`
	s, err := scanSchedule(db.QueryRow(query, scheduleID))
	if err != nil {
		return nil, err
	}
	overrides, err := GetSessionOverrides(db, scheduleID)
	if err != nil {
		return nil, err
	}
	s.Sessions = overrides
	return s, nil
}

func CreateSchedule(db *sql.DB, s *models.ClassSchedule) error {
	query := `INSERT INTO class_schedules (class_id, date, start_time, end_time, recurring, days_of_week, recurrence_end_date, status)
			  VALUES ($1, $2::date, $3, $4, $5, $6, NULLIF($7, '')::date, $8)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		s.ClassID, s.Date, s.StartTime, s.EndTime, s.Recurring,
		pq.Array(s.DaysOfWeek), s.RecurrenceEndDate, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateSchedule(db *sql.DB, s *models.ClassSchedule) error {
	query := `UPDATE class_schedules
			  SET date = $1::date, start_time = $2, end_time = $3, recurring = $4,
				  days_of_week = $5, recurrence_end_date = NULLIF($6, '')::date,
				  status = $7, updated_at = NOW()
			  WHERE id = $8`
	res, err := db.Exec(query,
		s.Date, s.StartTime, s.EndTime, s.Recurring,
		pq.Array(s.DaysOfWeek), s.RecurrenceEndDate, s.Status, s.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteSchedule removes a schedule; its session overrides and attendance
// records cascade at the database level.
func DeleteSchedule(db *sql.DB, scheduleID string) error {
	res, err := db.Exec(`DELETE FROM class_schedules WHERE id = $1`, scheduleID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const overrideColumns = `date::text, instructor, COALESCE(status, ''), notes`

func GetSessionOverrides(db *sql.DB, scheduleID string) ([]models.SessionOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM schedule_sessions WHERE schedule_id = $1 ORDER BY date ASC`
	rows, err := db.Query(query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func scanOverrides(rows *sql.Rows) ([]models.SessionOverride, error) {
	var overrides []models.SessionOverride
	for rows.Next() {
		var o models.SessionOverride
		if err := rows.Scan(&o.Date, &o.Instructor, &o.Status, &o.Notes); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// attachSessionOverrides loads the overrides for every schedule in one query
// and attaches them to their parents.
func attachSessionOverrides(db *sql.DB, schedules []*models.ClassSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	ids := make([]string, len(schedules))
	byID := make(map[string]*models.ClassSchedule, len(schedules))
	for i, s := range schedules {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	query := `SELECT schedule_id, ` + overrideColumns + `
			  FROM schedule_sessions WHERE schedule_id = ANY($1) ORDER BY date ASC`
	rows, err := db.Query(query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var scheduleID string
		var o models.SessionOverride
		if err := rows.Scan(&scheduleID, &o.Date, &o.Instructor, &o.Status, &o.Notes); err != nil {
			return err
		}
		if s := byID[scheduleID]; s != nil {
			s.Sessions = append(s.Sessions, o)
		}
	}
	return rows.Err()
}

// UpsertSessionOverride writes one (schedule, date) override in a single
// statement. Existing overrides for other dates are never read or rewritten,
// so concurrent reconciliations against different dates cannot clobber each
// other. With keepNotes set, an empty incoming notes value leaves the row's
// existing notes alone instead of blanking them.
func UpsertSessionOverride(tx *sql.Tx, scheduleID string, o models.SessionOverride, keepNotes bool) error {
	query := `INSERT INTO schedule_sessions (schedule_id, date, instructor, status, notes)
			  VALUES ($1, $2::date, $3, NULLIF($4, ''), $5)
			  ON CONFLICT (schedule_id, date)
			  DO UPDATE SET instructor = EXCLUDED.instructor,
							status = EXCLUDED.status,
							notes = CASE WHEN $6 AND EXCLUDED.notes = ''
										 THEN schedule_sessions.notes
										 ELSE EXCLUDED.notes END,
							updated_at = NOW()`
	_, err := tx.Exec(query, scheduleID, o.Date, o.Instructor, string(o.Status), o.Notes, keepNotes)
	return err
}

// UpdateScheduleStatus sets the top-level lifecycle status on the schedule
// itself, distinct from any per-date override status.
func UpdateScheduleStatus(tx *sql.Tx, scheduleID string, status models.ClassStatus) error {
	res, err := tx.Exec(`UPDATE class_schedules SET status = $1, updated_at = NOW() WHERE id = $2`, status, scheduleID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
