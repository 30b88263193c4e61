package models

import "time"

// EmergencyContact is who to call when something happens during a class.
type EmergencyContact struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type Student struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name" validate:"required,min=2"`
	Email            string           `json:"email" db:"email" validate:"required,email"`
	Categories       []string         `json:"categories" db:"categories" validate:"required,min=1"`
	BeltLevel        string           `json:"belt_level" db:"belt_level" validate:"required"`
	RegistrationDate string           `json:"registration_date" db:"registration_date"`
	Phone            string           `json:"phone" db:"phone" validate:"required"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	Status           StudentStatus    `json:"status" db:"status"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}
