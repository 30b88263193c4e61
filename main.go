package main

import (
	"log"
	"os"
	"time"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/routes/attendance"
	"karate-attendance/app/routes/auth"
	"karate-attendance/app/routes/classes"
	"karate-attendance/app/routes/dashboard"
	"karate-attendance/app/routes/schedules"
	"karate-attendance/app/routes/settings"
	"karate-attendance/app/routes/students"
	"karate-attendance/app/routes/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func main() {
	// All schedule dates are calendar dates in the school's local time zone.
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Invalid APP_TIMEZONE %q: %v", tz, err)
		}
		time.Local = loc
	}
	log.Printf("Application time zone: %s", time.Local.String())

	// Initialize database and system configuration
	config.InitDB()
	defer config.GetDB().Close()
	config.InitSystemConfig()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "karate-attendance",
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "degraded", "error": "database unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	settings.SetupSettingsRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	classes.SetupClassesRoutes(app)
	schedules.SetupSchedulesRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	users.SetupUsersRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
