package students

import (
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	requireID := utils.RequireUUIDParam("id")

	api.Get("/", GetStudentsAPI)                             // Get all students (?category= filter)
	api.Get("/category/:category", GetStudentsByCategoryAPI) // Get students in one category
	api.Get("/:id", requireID, GetStudentByIDAPI)            // Get single student by ID

	// Writes are restricted to admin and staff
	write := auth.RoleMiddleware(models.RoleAdmin, models.RoleStaff)
	api.Post("/", write, CreateStudentAPI)
	api.Put("/:id", requireID, write, UpdateStudentAPI)
	api.Delete("/:id", requireID, auth.RoleMiddleware(models.RoleAdmin), DeleteStudentAPI)
}
