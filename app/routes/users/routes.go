package users

import (
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupUsersRoutes(app *fiber.App) {
	api := app.Group("/api/users")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin))
	requireID := utils.RequireUUIDParam("id")

	api.Get("/", GetUsersAPI)
	api.Get("/:id", requireID, GetUserByIDAPI)
	api.Post("/", CreateUserAPI)
	api.Put("/:id", requireID, UpdateUserAPI)
	api.Put("/:id/status", requireID, UpdateUserStatusAPI)
	api.Put("/:id/reset-password", requireID, ResetUserPasswordAPI)
	api.Delete("/:id", requireID, DeleteUserAPI)
}
