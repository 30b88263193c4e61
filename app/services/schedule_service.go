package services

import (
	"database/sql"
	"iter"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"karate-attendance/app/database"
	"karate-attendance/app/models"
)

// ParseDate parses a calendar date in YYYY-MM-DD form. All schedule
// arithmetic treats dates as pure calendar dates; no timezone conversion is
// ever applied.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, s)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// OccurrenceDates enumerates, in ascending order, every calendar date in the
// intersection of [anchor, recurrenceEnd] and [rangeStart, rangeEnd] whose
// weekday (Sunday=0 .. Saturday=6) is in daysOfWeek. An empty intersection or
// an empty weekday set yields nothing. The sequence is lazy and can be ranged
// over more than once.
func OccurrenceDates(anchor, rangeStart, rangeEnd time.Time, daysOfWeek []int64, recurrenceEnd time.Time) iter.Seq[time.Time] {
	wanted := map[time.Weekday]bool{}
	for _, d := range daysOfWeek {
		wanted[time.Weekday(d)] = true
	}

	start := maxDate(anchor, rangeStart)
	end := minDate(recurrenceEnd, rangeEnd)

	return func(yield func(time.Time) bool) {
		if len(wanted) == 0 {
			return
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if wanted[d.Weekday()] {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// EffectiveSession is the resolved per-occurrence view after merging a
// schedule's defaults with any session override for that date.
type EffectiveSession struct {
	Instructor string
	Status     models.ClassStatus
	Notes      string
}

// ResolveSession looks up an override whose date exactly equals date and
// merges it with the schedule-level default status. With no override the
// instructor is left empty for the caller to fill from the class's nominal
// instructor. Pure function.
func ResolveSession(date string, overrides []models.SessionOverride, defaultStatus models.ClassStatus) EffectiveSession {
	for _, o := range overrides {
		if o.Date == date {
			status := o.Status
			if status == "" {
				status = defaultStatus
			}
			return EffectiveSession{Instructor: o.Instructor, Status: status, Notes: o.Notes}
		}
	}
	return EffectiveSession{Status: defaultStatus}
}

// ExpandSchedules turns schedule definitions into the flat list of class
// occurrences inside [rangeStart, rangeEnd], sorted by date then start time.
// A definition that fails to parse is logged and skipped so one bad record
// cannot take down a whole dashboard view.
func ExpandSchedules(schedules []*models.ClassSchedule, rangeStart, rangeEnd time.Time) []models.ClassOccurrence {
	var occurrences []models.ClassOccurrence

	for _, s := range schedules {
		anchor, err := ParseDate(s.Date)
		if err != nil {
			slog.Warn("skipping schedule with unparseable date",
				"schedule_id", s.ID, "date", s.Date, "error", err)
			continue
		}

		if !s.Recurring {
			if anchor.Before(rangeStart) || anchor.After(rangeEnd) {
				continue
			}
			// One-off schedules carry their own lifecycle status; an
			// override recorded for the date still wins.
			occurrences = append(occurrences, occurrenceFor(s, s.Date, s.Status, false))
			continue
		}

		if len(s.DaysOfWeek) == 0 {
			slog.Warn("skipping recurring schedule with empty weekday set", "schedule_id", s.ID)
			continue
		}
		if bad, ok := invalidWeekday(s.DaysOfWeek); ok {
			slog.Warn("skipping recurring schedule with out-of-range weekday",
				"schedule_id", s.ID, "weekday", bad)
			continue
		}
		// An absent recurrence end means the schedule runs indefinitely;
		// clamp it to the query range.
		recurrenceEnd := rangeEnd
		if s.RecurrenceEndDate != "" {
			recurrenceEnd, err = ParseDate(s.RecurrenceEndDate)
			if err != nil {
				slog.Warn("skipping recurring schedule with unparseable recurrence end",
					"schedule_id", s.ID, "recurrence_end_date", s.RecurrenceEndDate, "error", err)
				continue
			}
			if recurrenceEnd.Before(anchor) {
				slog.Warn("skipping recurring schedule whose recurrence ends before its anchor",
					"schedule_id", s.ID, "date", s.Date, "recurrence_end_date", s.RecurrenceEndDate)
				continue
			}
		}

		for d := range OccurrenceDates(anchor, rangeStart, rangeEnd, s.DaysOfWeek, recurrenceEnd) {
			// A missing override means the occurrence is still in its
			// default "scheduled" state, regardless of what the parent
			// record's top-level status has been mutated to.
			occurrences = append(occurrences, occurrenceFor(s, d.Format(models.DateLayout), models.StatusScheduled, true))
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		if occurrences[i].Date != occurrences[j].Date {
			return occurrences[i].Date < occurrences[j].Date
		}
		return occurrences[i].StartTime < occurrences[j].StartTime
	})
	return occurrences
}

func occurrenceFor(s *models.ClassSchedule, date string, defaultStatus models.ClassStatus, fromRecurrence bool) models.ClassOccurrence {
	eff := ResolveSession(date, s.Sessions, defaultStatus)
	if eff.Instructor == "" {
		eff.Instructor = s.ClassInstructor
	}
	return models.ClassOccurrence{
		Date:                       date,
		StartTime:                  s.StartTime,
		EndTime:                    s.EndTime,
		Instructor:                 eff.Instructor,
		Status:                     eff.Status,
		Notes:                      eff.Notes,
		ScheduleID:                 s.ID,
		ClassID:                    s.ClassID,
		ClassName:                  s.ClassName,
		MaterializedFromRecurrence: fromRecurrence,
	}
}

func invalidWeekday(days []int64) (int64, bool) {
	for _, d := range days {
		if d < 0 || d > 6 {
			return d, true
		}
	}
	return 0, false
}

// timeLayout is the wall-clock format for start and end times.
const timeLayout = "15:04"

// ValidateScheduleDefinition enforces the invariants a schedule must satisfy
// before it is written: parseable dates and times, end after start, and a
// coherent recurrence window when recurring.
func ValidateScheduleDefinition(s *models.ClassSchedule) error {
	anchor, err := ParseDate(s.Date)
	if err != nil {
		return validationf("invalid date %q, expected YYYY-MM-DD", s.Date)
	}
	start, err := time.Parse(timeLayout, s.StartTime)
	if err != nil {
		return validationf("invalid start time %q, expected HH:MM", s.StartTime)
	}
	end, err := time.Parse(timeLayout, s.EndTime)
	if err != nil {
		return validationf("invalid end time %q, expected HH:MM", s.EndTime)
	}
	if !end.After(start) {
		return validationf("end time %s must be after start time %s", s.EndTime, s.StartTime)
	}
	if s.Status != "" && !models.ValidClassStatus(string(s.Status)) {
		return validationf("invalid status %q", s.Status)
	}

	if !s.Recurring {
		return nil
	}
	if len(s.DaysOfWeek) == 0 {
		return validationf("recurring schedule needs at least one weekday")
	}
	if bad, ok := invalidWeekday(s.DaysOfWeek); ok {
		return validationf("weekday %d out of range, expected 0 (Sunday) to 6 (Saturday)", bad)
	}
	if s.RecurrenceEndDate != "" {
		recurrenceEnd, err := ParseDate(s.RecurrenceEndDate)
		if err != nil {
			return validationf("invalid recurrence end date %q, expected YYYY-MM-DD", s.RecurrenceEndDate)
		}
		if recurrenceEnd.Before(anchor) {
			return validationf("recurrence end date %s is before the first occurrence %s", s.RecurrenceEndDate, s.Date)
		}
	}
	return nil
}

// ExpandRange validates the query window, loads candidate schedules, and
// expands them into occurrences.
func ExpandRange(db *sql.DB, rangeStart, rangeEnd, classID string) ([]models.ClassOccurrence, error) {
	start, err := ParseDate(rangeStart)
	if err != nil {
		return nil, validationf("invalid start date %q, expected YYYY-MM-DD", rangeStart)
	}
	end, err := ParseDate(rangeEnd)
	if err != nil {
		return nil, validationf("invalid end date %q, expected YYYY-MM-DD", rangeEnd)
	}
	if start.After(end) {
		return nil, validationf("start date %s is after end date %s", rangeStart, rangeEnd)
	}
	if classID != "" && uuid.Validate(classID) != nil {
		return nil, validationf("invalid class id %q", classID)
	}

	schedules, err := database.FindExpansionCandidates(db, rangeStart, rangeEnd, classID)
	if err != nil {
		return nil, err
	}
	return ExpandSchedules(schedules, start, end), nil
}
