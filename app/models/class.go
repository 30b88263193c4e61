package models

import "time"

type Class struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" validate:"required,min=3"`
	Description     string    `json:"description" db:"description" validate:"required"`
	Categories      []string  `json:"categories" db:"categories" validate:"required,min=1"`
	Instructor      string    `json:"instructor" db:"instructor" validate:"required"`
	MaxCapacity     int       `json:"max_capacity" db:"max_capacity" validate:"required,min=1,max=100"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes" validate:"required,min=15,max=240"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
