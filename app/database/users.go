package database

import (
	"database/sql"
	"time"

	"karate-attendance/app/models"
)

const userColumns = `id, email, password, name, role, status, created_by, last_login, password_changed_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.Role,
		&user.Status, &user.CreatedBy, &user.LastLogin, &user.PasswordChangedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.QueryRow(query, email))
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRow(query, userID))
}

func GetAllUsers(db *sql.DB) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func CreateUser(db *sql.DB, user *models.User) error {
	query := `INSERT INTO users (email, password, name, role, status, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, user.Email, user.Password, user.Name, user.Role, user.Status, user.CreatedBy).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func UpdateUser(db *sql.DB, user *models.User) error {
	query := `UPDATE users SET name = $1, role = $2, status = $3, updated_at = NOW() WHERE id = $4`
	res, err := db.Exec(query, user.Name, user.Role, user.Status, user.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func UpdateUserName(db *sql.DB, userID string, name string) error {
	res, err := db.Exec(`UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`, name, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func UpdateUserStatus(db *sql.DB, userID string, status models.UserStatus) error {
	res, err := db.Exec(`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`, status, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, password_changed_at = NOW(), updated_at = NOW() WHERE id = $2`
	res, err := db.Exec(query, hashedPassword, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func UpdateUserLastLogin(db *sql.DB, userID string, at time.Time) error {
	_, err := db.Exec(`UPDATE users SET last_login = $1 WHERE id = $2`, at, userID)
	return err
}

func DeleteUser(db *sql.DB, userID string) error {
	res, err := db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts a zero-row update/delete into sql.ErrNoRows so callers
// can treat missing ids uniformly.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
