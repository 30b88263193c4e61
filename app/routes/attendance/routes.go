package attendance

import (
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	api.Get("/today", GetTodayClassesAPI)
	api.Get("/next-class", GetNextClassAPI)
	api.Get("/class/:scheduleId", utils.RequireUUIDParam("scheduleId"), GetClassAttendanceAPI) // ?date=&category=
	api.Get("/search", SearchPastClassesAPI)               // ?date=&instructor=&category=
	api.Get("/records", SearchAttendanceRecordsAPI)        // ?q=&date_from=&date_to=&status=&category=
	api.Get("/reports/:dateRange", GetAttendanceReportAPI) // week | month | quarter

	mark := auth.RoleMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleInstructor)
	api.Post("/mark", mark, MarkAttendanceAPI)
}
