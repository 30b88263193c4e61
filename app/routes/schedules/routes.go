package schedules

import (
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupSchedulesRoutes(app *fiber.App) {
	api := app.Group("/api/schedules")
	api.Use(auth.AuthMiddleware)
	requireID := utils.RequireUUIDParam("id")

	api.Get("/", GetSchedulesAPI)              // Raw schedule definitions
	api.Get("/occurrences", GetOccurrencesAPI) // Expanded per-date view (?start_date&end_date&class_id)
	api.Get("/:id", requireID, GetScheduleByIDAPI)

	write := auth.RoleMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleInstructor)
	api.Post("/", write, CreateScheduleAPI)
	api.Put("/:id", requireID, write, UpdateScheduleAPI)
	api.Put("/:id/sessions", requireID, write, UpdateSessionAPI) // Record a single occurrence's outcome
	api.Delete("/:id", requireID, auth.RoleMiddleware(models.RoleAdmin), DeleteScheduleAPI)
}
