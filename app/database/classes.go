package database

import (
	"database/sql"

	"github.com/lib/pq"

	"karate-attendance/app/models"
)

const classColumns = `id, name, description, categories, instructor, max_capacity, duration_minutes, created_at, updated_at`

func scanClass(row interface{ Scan(...any) error }) (*models.Class, error) {
	c := &models.Class{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, pq.Array(&c.Categories),
		&c.Instructor, &c.MaxCapacity, &c.DurationMinutes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func GetAllClasses(db *sql.DB) ([]*models.Class, error) {
	rows, err := db.Query(`SELECT ` + classColumns + ` FROM classes ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func GetClassByID(db *sql.DB, classID string) (*models.Class, error) {
	return scanClass(db.QueryRow(`SELECT `+classColumns+` FROM classes WHERE id = $1`, classID))
}

func CreateClass(db *sql.DB, c *models.Class) error {
	query := `INSERT INTO classes (name, description, categories, instructor, max_capacity, duration_minutes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		c.Name, c.Description, pq.Array(c.Categories), c.Instructor, c.MaxCapacity, c.DurationMinutes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func UpdateClass(db *sql.DB, c *models.Class) error {
	query := `UPDATE classes SET name = $1, description = $2, categories = $3,
				instructor = $4, max_capacity = $5, duration_minutes = $6, updated_at = NOW()
			  WHERE id = $7`
	res, err := db.Exec(query,
		c.Name, c.Description, pq.Array(c.Categories), c.Instructor, c.MaxCapacity, c.DurationMinutes, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteClass removes a class; schedules and attendance cascade at the
// database level.
func DeleteClass(db *sql.DB, classID string) error {
	res, err := db.Exec(`DELETE FROM classes WHERE id = $1`, classID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
