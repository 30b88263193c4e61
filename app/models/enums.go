package models

// AttendanceStatus defines the possible status values for an attendance record.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
)

// ValidAttendanceStatus reports whether s is a known attendance status.
func ValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case Present, Absent, Late:
		return true
	}
	return false
}

// ClassStatus defines the lifecycle status of a class schedule or a single session.
type ClassStatus string

const (
	StatusScheduled  ClassStatus = "scheduled"
	StatusInProgress ClassStatus = "in_progress"
	StatusCompleted  ClassStatus = "completed"
	StatusCancelled  ClassStatus = "cancelled"
)

// ValidClassStatus reports whether s is a known class status.
func ValidClassStatus(s string) bool {
	switch ClassStatus(s) {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// StudentStatus defines the possible status values for a student.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// UserRole defines the possible roles for a user account.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
	RoleStaff      UserRole = "staff"
	RoleStudent    UserRole = "student"
)

// ValidUserRole reports whether r is a known user role.
func ValidUserRole(r string) bool {
	switch UserRole(r) {
	case RoleAdmin, RoleInstructor, RoleStaff, RoleStudent:
		return true
	}
	return false
}

// UserStatus defines the possible status values for a user account.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// ValidUserStatus reports whether s is a known user status.
func ValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case UserActive, UserInactive, UserSuspended:
		return true
	}
	return false
}
