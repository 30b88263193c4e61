package models

import "time"

// DateLayout is the calendar-date format used on the wire and in date columns.
// All schedule dates are pure calendar dates in the school's local time zone.
const DateLayout = "2006-01-02"

// ClassSchedule is one authored schedule entry. A non-recurring schedule
// represents exactly one class meeting on Date; a recurring schedule expands
// into one meeting per matching weekday between Date and RecurrenceEndDate.
type ClassSchedule struct {
	ID                string            `json:"id" db:"id"`
	ClassID           string            `json:"class_id" db:"class_id" validate:"required,uuid"`
	Date              string            `json:"date" db:"date" validate:"required"`
	StartTime         string            `json:"start_time" db:"start_time" validate:"required"`
	EndTime           string            `json:"end_time" db:"end_time" validate:"required"`
	Recurring         bool              `json:"recurring" db:"recurring"`
	DaysOfWeek        []int64           `json:"days_of_week,omitempty" db:"days_of_week"`
	RecurrenceEndDate string            `json:"recurrence_end_date,omitempty" db:"recurrence_end_date"`
	Status            ClassStatus       `json:"status" db:"status"`
	Sessions          []SessionOverride `json:"sessions"`
	ClassName         string            `json:"class_name,omitempty"`
	ClassInstructor   string            `json:"class_instructor,omitempty"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// SessionOverride holds per-date facts that deviate from a schedule's
// defaults: the instructor who actually taught that occurrence, its lifecycle
// status, and any notes. At most one override exists per calendar date; it is
// owned by its parent schedule and never addressed independently.
type SessionOverride struct {
	Date       string      `json:"date" db:"date"`
	Instructor string      `json:"instructor" db:"instructor"`
	Status     ClassStatus `json:"status,omitempty" db:"status"` // empty means "use the schedule default"
	Notes      string      `json:"notes" db:"notes"`
}

// ClassOccurrence is the expanded, queryable view of one concrete class
// meeting. It is computed on every query and never stored; it is fully
// reproducible from the schedule, its session overrides, and the query window.
type ClassOccurrence struct {
	Date                       string      `json:"date"`
	StartTime                  string      `json:"start_time"`
	EndTime                    string      `json:"end_time"`
	Instructor                 string      `json:"instructor"`
	Status                     ClassStatus `json:"status"`
	Notes                      string      `json:"notes"`
	ScheduleID                 string      `json:"schedule_id"`
	ClassID                    string      `json:"class_id"`
	ClassName                  string      `json:"class_name,omitempty"`
	MaterializedFromRecurrence bool        `json:"materialized_from_recurrence"`
}

// ScheduleFilters narrows schedule queries by date range and class.
type ScheduleFilters struct {
	RangeStart string
	RangeEnd   string
	ClassID    string
}
