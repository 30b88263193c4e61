package database

import (
	"database/sql"

	"github.com/lib/pq"

	"karate-attendance/app/models"
)

const studentColumns = `id, name, email, categories, belt_level, registration_date::text,
	phone, emergency_contact_name, emergency_contact_phone, status, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, pq.Array(&s.Categories), &s.BeltLevel,
		&s.RegistrationDate, &s.Phone, &s.EmergencyContact.Name,
		&s.EmergencyContact.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name ASC`
	return queryStudents(db, query)
}

func GetStudentsByCategory(db *sql.DB, category string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  WHERE $1 = ANY(categories) AND status = 'active' ORDER BY name ASC`
	return queryStudents(db, query, category)
}

func queryStudents(db *sql.DB, query string, args ...any) ([]*models.Student, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(db.QueryRow(query, studentID))
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (name, email, categories, belt_level, phone,
				emergency_contact_name, emergency_contact_phone, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, registration_date::text, created_at, updated_at`
	return db.QueryRow(query,
		s.Name, s.Email, pq.Array(s.Categories), s.BeltLevel, s.Phone,
		s.EmergencyContact.Name, s.EmergencyContact.Phone, s.Status,
	).Scan(&s.ID, &s.RegistrationDate, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET name = $1, categories = $2, belt_level = $3,
				phone = $4, emergency_contact_name = $5, emergency_contact_phone = $6,
				status = $7, updated_at = NOW()
			  WHERE id = $8`
	res, err := db.Exec(query,
		s.Name, pq.Array(s.Categories), s.BeltLevel, s.Phone,
		s.EmergencyContact.Name, s.EmergencyContact.Phone, s.Status, s.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func DeleteStudent(db *sql.DB, studentID string) error {
	res, err := db.Exec(`DELETE FROM students WHERE id = $1`, studentID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
