package settings

import (
	"karate-attendance/app/config"

	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App) {
	// Public: the frontend needs categories and belt levels before login.
	app.Get("/api/config", GetConfigAPI)
}

// GetConfigAPI exposes the school's configured categories and belt levels.
func GetConfigAPI(c *fiber.Ctx) error {
	sys := config.GetSystem()
	return c.JSON(fiber.Map{
		"version":     sys.Version,
		"categories":  sys.Categories,
		"belt_levels": sys.BeltLevels,
	})
}
