package services

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
)

// Outcome is one reconciliation request: the recorded facts for a single
// occurrence of a schedule, plus an optional lifecycle change for the parent
// definition itself (used when closing out a one-off schedule).
type Outcome struct {
	ScheduleID     string
	Date           string
	Instructor     string
	Status         models.ClassStatus
	Notes          string
	ScheduleStatus models.ClassStatus // optional; empty means leave unchanged

	// KeepNotes preserves an existing override's notes when Notes is empty,
	// used by batch attendance marking so re-marking a date never erases
	// what an instructor wrote about that session.
	KeepNotes bool
}

// ApplyOutcome writes an Outcome into the schedule's session-override list.
// The override for the occurrence date is replaced in place or appended; all
// other dates' overrides are untouched, and applying the same outcome twice
// leaves the list identical. Returns the schedule with its updated overrides.
func ApplyOutcome(db *sql.DB, o Outcome) (*models.ClassSchedule, error) {
	if uuid.Validate(o.ScheduleID) != nil {
		return nil, validationf("invalid schedule id %q", o.ScheduleID)
	}
	if _, err := ParseDate(o.Date); err != nil {
		return nil, validationf("invalid occurrence date %q, expected YYYY-MM-DD", o.Date)
	}
	if o.Status != "" && !models.ValidClassStatus(string(o.Status)) {
		return nil, validationf("invalid session status %q", o.Status)
	}
	if o.ScheduleStatus != "" && !models.ValidClassStatus(string(o.ScheduleStatus)) {
		return nil, validationf("invalid schedule status %q", o.ScheduleStatus)
	}

	schedule, err := database.GetScheduleByID(db, o.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	override := models.SessionOverride{
		Date:       o.Date,
		Instructor: o.Instructor,
		Status:     o.Status,
		Notes:      o.Notes,
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := database.UpsertSessionOverride(tx, schedule.ID, override, o.KeepNotes); err != nil {
		return nil, translateConflict(err)
	}
	if o.ScheduleStatus != "" {
		if err := database.UpdateScheduleStatus(tx, schedule.ID, o.ScheduleStatus); err != nil {
			return nil, translateConflict(err)
		}
		schedule.Status = o.ScheduleStatus
	}
	if err := tx.Commit(); err != nil {
		return nil, translateConflict(err)
	}

	schedule.Sessions = mergeOverride(schedule.Sessions, override, o.KeepNotes)
	return schedule, nil
}

// mergeOverride returns the override list with o replacing the entry for its
// date, or appended when no entry exists. Entries for other dates are
// returned exactly as given. Mirrors the database upsert so the caller can
// report the post-write state without a second read.
func mergeOverride(overrides []models.SessionOverride, o models.SessionOverride, keepNotes bool) []models.SessionOverride {
	for i := range overrides {
		if overrides[i].Date == o.Date {
			if keepNotes && o.Notes == "" {
				o.Notes = overrides[i].Notes
			}
			out := make([]models.SessionOverride, len(overrides))
			copy(out, overrides)
			out[i] = o
			return out
		}
	}
	out := make([]models.SessionOverride, 0, len(overrides)+1)
	out = append(out, overrides...)
	return append(out, o)
}

func translateConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure / deadlock_detected: the write lost a race
		// and should be retried from a fresh read.
		if pqErr.Code == "40001" || pqErr.Code == "40P01" {
			return ErrConflict
		}
	}
	return err
}

// MarkResult reports the outcome of one record in a batch mark request.
type MarkResult struct {
	StudentID  string             `json:"student_id"`
	Success    bool               `json:"success"`
	Error      string             `json:"error,omitempty"`
	Attendance *models.Attendance `json:"attendance,omitempty"`
}

// MarkAttendance records a batch of attendance outcomes, then reconciles each
// touched (schedule, date) pair's session override so future expansions show
// who taught and that the session completed. A failure on one record does not
// abort the rest of the batch.
func MarkAttendance(db *sql.DB, sys *config.SystemConfig, records []*models.Attendance, recordedBy string) []MarkResult {
	results := make([]MarkResult, 0, len(records))

	type sessionKey struct{ scheduleID, date string }
	touched := map[sessionKey]bool{}

	for _, rec := range records {
		if rec.StudentID == "" || rec.ClassScheduleID == "" {
			results = append(results, MarkResult{StudentID: rec.StudentID, Error: "student_id and class_schedule_id are required"})
			continue
		}
		if !models.ValidAttendanceStatus(string(rec.Status)) {
			results = append(results, MarkResult{StudentID: rec.StudentID, Error: "invalid attendance status: " + string(rec.Status)})
			continue
		}
		if !sys.IsValidCategory(rec.Category) {
			results = append(results, MarkResult{StudentID: rec.StudentID, Error: "invalid category: " + rec.Category})
			continue
		}
		if rec.Date == "" {
			rec.Date = time.Now().Format(models.DateLayout)
		}
		if _, err := ParseDate(rec.Date); err != nil {
			results = append(results, MarkResult{StudentID: rec.StudentID, Error: "invalid date: " + rec.Date})
			continue
		}

		rec.RecordedBy = recordedBy
		if err := database.UpsertAttendance(db, rec); err != nil {
			results = append(results, MarkResult{StudentID: rec.StudentID, Error: "failed to save attendance: " + err.Error()})
			continue
		}
		results = append(results, MarkResult{StudentID: rec.StudentID, Success: true, Attendance: rec})
		touched[sessionKey{rec.ClassScheduleID, rec.Date}] = true
	}

	// Session reconciliation is secondary: the attendance rows are already
	// saved, so a failure here is reported per call site, not rolled back.
	for key := range touched {
		_, err := ApplyOutcome(db, Outcome{
			ScheduleID: key.scheduleID,
			Date:       key.date,
			Instructor: recordedBy,
			Status:     models.StatusCompleted,
			KeepNotes:  true,
		})
		if err != nil {
			slog.Warn("attendance saved but session reconciliation failed",
				"schedule_id", key.scheduleID, "date", key.date, "error", err)
		}
	}

	return results
}

// TodayClasses expands today's occurrences, ordered by start time.
func TodayClasses(db *sql.DB, now time.Time) ([]models.ClassOccurrence, error) {
	today := now.Format(models.DateLayout)
	return ExpandRange(db, today, today, "")
}

// nextClassLookahead bounds how far ahead the next-class search walks.
const nextClassLookahead = 60 // days

// NextUpcomingClass finds the closest occurrence at or after now: first a
// class later today, otherwise the earliest one in the coming weeks. The
// second return is false when nothing is scheduled within the lookahead.
func NextUpcomingClass(db *sql.DB, now time.Time) (models.ClassOccurrence, bool, error) {
	today, err := TodayClasses(db, now)
	if err != nil {
		return models.ClassOccurrence{}, false, err
	}
	if occ, ok := firstScheduled(today, now.Format(timeLayout)); ok {
		return occ, true, nil
	}

	start := now.AddDate(0, 0, 1).Format(models.DateLayout)
	end := now.AddDate(0, 0, nextClassLookahead).Format(models.DateLayout)
	upcoming, err := ExpandRange(db, start, end, "")
	if err != nil {
		return models.ClassOccurrence{}, false, err
	}
	occ, ok := firstScheduled(upcoming, "")
	return occ, ok, nil
}

// firstScheduled picks the first still-scheduled occurrence starting at or
// after notBefore. Occurrences arrive sorted by date then start time.
func firstScheduled(occs []models.ClassOccurrence, notBefore string) (models.ClassOccurrence, bool) {
	for _, occ := range occs {
		if occ.Status == models.StatusScheduled && occ.StartTime >= notBefore {
			return occ, true
		}
	}
	return models.ClassOccurrence{}, false
}

// ReportRange resolves a named range (week, month, quarter) against now.
// Unknown names fall back to the current month.
func ReportRange(name string, now time.Time) (start, end string) {
	y, m, _ := now.Date()
	switch name {
	case "week":
		// Week starts Sunday, matching the weekday numbering used everywhere.
		weekStart := now.AddDate(0, 0, -int(now.Weekday()))
		return weekStart.Format(models.DateLayout), weekStart.AddDate(0, 0, 6).Format(models.DateLayout)
	case "quarter":
		qm := time.Month(((int(m)-1)/3)*3 + 1)
		qs := time.Date(y, qm, 1, 0, 0, 0, 0, now.Location())
		return qs.Format(models.DateLayout), qs.AddDate(0, 3, -1).Format(models.DateLayout)
	default:
		ms := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return ms.Format(models.DateLayout), ms.AddDate(0, 1, -1).Format(models.DateLayout)
	}
}
