package classes

import (
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)
	requireID := utils.RequireUUIDParam("id")

	api.Get("/", GetClassesAPI)
	api.Get("/:id", requireID, GetClassByIDAPI)

	write := auth.RoleMiddleware(models.RoleAdmin, models.RoleStaff)
	api.Post("/", write, CreateClassAPI)
	api.Put("/:id", requireID, write, UpdateClassAPI)
	api.Delete("/:id", requireID, auth.RoleMiddleware(models.RoleAdmin), DeleteClassAPI)
}
