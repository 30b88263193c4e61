package models

import "time"

type User struct {
	ID                string     `json:"id" db:"id"`
	Email             string     `json:"email" db:"email" validate:"required,email"`
	Password          string     `json:"-" db:"password"`
	Name              string     `json:"name" db:"name" validate:"required"`
	Role              UserRole   `json:"role" db:"role" validate:"required,oneof=admin instructor staff student"`
	Status            UserStatus `json:"status" db:"status"`
	CreatedBy         string     `json:"created_by" db:"created_by"`
	LastLogin         *time.Time `json:"last_login,omitempty" db:"last_login"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty" db:"password_changed_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
