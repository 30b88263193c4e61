package classes

import (
	"database/sql"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
)

func GetClassesAPI(c *fiber.Ctx) error {
	classes, err := database.GetAllClasses(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(fiber.Map{
		"classes": classes,
		"count":   len(classes),
	})
}

func GetClassByIDAPI(c *fiber.Ctx) error {
	class, err := database.GetClassByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch class"})
	}
	return c.JSON(fiber.Map{"class": class})
}

func CreateClassAPI(c *fiber.Ctx) error {
	var class models.Class
	if err := c.BodyParser(&class); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(&class); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}
	if bad, ok := unknownCategory(class.Categories); ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + bad})
	}

	if err := database.CreateClass(config.GetDB(), &class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(201).JSON(fiber.Map{"class": class})
}

func UpdateClassAPI(c *fiber.Ctx) error {
	var class models.Class
	if err := c.BodyParser(&class); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	class.ID = c.Params("id")
	if err := utils.ValidateStruct(&class); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}
	if bad, ok := unknownCategory(class.Categories); ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + bad})
	}

	if err := database.UpdateClass(config.GetDB(), &class); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update class"})
	}
	return c.JSON(fiber.Map{"class": class})
}

func DeleteClassAPI(c *fiber.Ctx) error {
	if err := database.DeleteClass(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete class"})
	}
	return c.JSON(fiber.Map{"message": "Class deleted"})
}

func unknownCategory(categories []string) (string, bool) {
	sys := config.GetSystem()
	for _, cat := range categories {
		if !sys.IsValidCategory(cat) {
			return cat, true
		}
	}
	return "", false
}
