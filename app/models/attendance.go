package models

import "time"

// Attendance is one student's presence outcome for one class occurrence,
// unique per (student, schedule, date).
type Attendance struct {
	ID              string           `json:"id" db:"id"`
	StudentID       string           `json:"student_id" db:"student_id" validate:"required,uuid"`
	ClassScheduleID string           `json:"class_schedule_id" db:"class_schedule_id" validate:"required,uuid"`
	Date            string           `json:"date" db:"date" validate:"required"`
	Status          AttendanceStatus `json:"status" db:"status" validate:"required,oneof=present absent late"`
	Category        string           `json:"category" db:"category" validate:"required"`
	Notes           string           `json:"notes" db:"notes"`
	RecordedBy      string           `json:"recorded_by" db:"recorded_by"`
	RecordedAt      time.Time        `json:"recorded_at" db:"recorded_at"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`

	StudentName  string `json:"student_name,omitempty"`
	StudentEmail string `json:"student_email,omitempty"`
}

// AttendanceReportRow aggregates one student's attendance over a date range.
type AttendanceReportRow struct {
	StudentID            string  `json:"student_id"`
	StudentName          string  `json:"student_name"`
	Category             string  `json:"category"`
	TotalClasses         int     `json:"total_classes"`
	PresentCount         int     `json:"present"`
	AbsentCount          int     `json:"absent"`
	LateCount            int     `json:"late"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// DashboardStats summarizes the school for the dashboard landing page.
type DashboardStats struct {
	TotalStudents    int     `json:"total_students"`
	TotalClasses     int     `json:"total_classes"`
	ClassesToday     int     `json:"classes_today"`
	WeekAttendance   float64 `json:"week_attendance"`
	ActiveInstructor int     `json:"active_instructors"`
}
