package dashboard

import (
	"time"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", GetDashboardStatsAPI)
}

func GetDashboardStatsAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	now := time.Now()
	today, err := services.TodayClasses(db, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to expand today's classes"})
	}
	stats.ClassesToday = len(today)

	weekStart, _ := services.ReportRange("week", now)
	total, present, err := database.CountAttendanceSince(db, weekStart)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute week attendance"})
	}
	if total > 0 {
		stats.WeekAttendance = 100 * float64(present) / float64(total)
	}

	return c.JSON(fiber.Map{"stats": stats})
}
