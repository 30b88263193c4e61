package users

import (
	"database/sql"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func GetUsersAPI(c *fiber.Ctx) error {
	users, err := database.GetAllUsers(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

func GetUserByIDAPI(c *fiber.Ctx) error {
	user, err := database.GetUserByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch user"})
	}
	return c.JSON(fiber.Map{"user": user})
}

func CreateUserAPI(c *fiber.Ctx) error {
	type CreateUserRequest struct {
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Name     string          `json:"name"`
		Role     models.UserRole `json:"role"`
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Password) < 8 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}
	if !models.ValidUserRole(string(req.Role)) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role: " + string(req.Role)})
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		Name:      req.Name,
		Role:      req.Role,
		Status:    models.UserActive,
		CreatedBy: c.Locals("user_id").(string),
	}
	if err := utils.ValidateStruct(user); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}

	if err := database.CreateUser(config.GetDB(), user); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "A user with this email already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(201).JSON(fiber.Map{"user": user})
}

func UpdateUserAPI(c *fiber.Ctx) error {
	type UpdateUserRequest struct {
		Name   string            `json:"name"`
		Role   models.UserRole   `json:"role"`
		Status models.UserStatus `json:"status"`
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.ValidUserRole(string(req.Role)) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role: " + string(req.Role)})
	}
	if !models.ValidUserStatus(string(req.Status)) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status: " + string(req.Status)})
	}

	user := &models.User{
		ID:     c.Params("id"),
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	}
	if err := database.UpdateUser(config.GetDB(), user); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"message": "User updated"})
}

func UpdateUserStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status models.UserStatus `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.ValidUserStatus(string(req.Status)) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status: " + string(req.Status)})
	}

	// An admin cannot deactivate their own account.
	if c.Params("id") == c.Locals("user_id").(string) && req.Status != models.UserActive {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot deactivate your own account"})
	}

	if err := database.UpdateUserStatus(config.GetDB(), c.Params("id"), req.Status); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"message": "Status updated"})
}

func ResetUserPasswordAPI(c *fiber.Ctx) error {
	type ResetRequest struct {
		NewPassword string `json:"new_password"`
	}

	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.UpdateUserPassword(config.GetDB(), c.Params("id"), hashedPassword); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reset password"})
	}

	return c.JSON(fiber.Map{"message": "Password reset"})
}

func DeleteUserAPI(c *fiber.Ctx) error {
	if c.Params("id") == c.Locals("user_id").(string) {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete your own account"})
	}

	if err := database.DeleteUser(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
